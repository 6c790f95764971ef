// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/restage/cmd/restage/opts"
	"github.com/walteh/restage/pkg/locate"
	"github.com/walteh/restage/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewGatherCmd creates a new gather command
func NewGatherCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		ext   string
		files []string
	)

	cmd := &cobra.Command{
		Use:   "gather [ROOT]",
		Short: "Stage files into the scratch directory for conversion",
		Long: `Gather copies the selected files into the scratch directory as
{index}.{in_ext} and records their original paths in the manifest.
It will:
1. Select every matching file under ROOT, or exactly the --files list in order
2. Replace the manifest with the selection
3. Copy each file into the scratch directory

Point the converter at the scratch directory, then run restore.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if len(files) > 0 && len(args) > 0 {
				return errors.Errorf("use either ROOT or --files, not both")
			}
			if len(files) == 0 && len(args) == 0 {
				return errors.Errorf("nothing to gather: pass ROOT or --files")
			}

			sess, err := opts.SessionWith(ctx, ext, "")
			if err != nil {
				return err
			}

			if len(args) == 1 {
				found, err := locate.Search(ctx, opts.Fs, args[0], sess.InExt, locate.Options{Ignore: sess.Ignore})
				if err != nil {
					return errors.Errorf("searching: %w", err)
				}
				files = found.Files
			}

			op := operation.NewGatherOperation(operation.Options{
				Session: sess,
				Files:   files,
			})

			if _, err := runOperation(cmd, opts, op, sess.ScratchDir); err != nil {
				return errors.Errorf("gathering: %w", err)
			}

			opts.UserLogger.LogStateChange("Convert the files in " + sess.ScratchDir + " then run restore")
			return nil
		},
	}

	cmd.Flags().StringVar(&ext, "ext", "", "input extension (default from config in_ext)")
	cmd.Flags().StringSliceVar(&files, "files", nil, "explicit, ordered list of files to stage")

	return cmd
}
