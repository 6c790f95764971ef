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
	"github.com/walteh/restage/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// extFlags are the --in-ext/--out-ext overrides shared by the scratch commands
type extFlags struct {
	in  string
	out string
}

func (f *extFlags) add(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.in, "in-ext", "", "extension of staged inputs (default from config in_ext)")
	cmd.Flags().StringVar(&f.out, "out-ext", "", "extension the converter produces (default from config out_ext)")
}

// NewRestoreCmd creates a new restore command
func NewRestoreCmd(opts *opts.RootOpts) *cobra.Command {
	var ext extFlags

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Copy converted files back next to their originals",
		Long: `Restore walks the manifest and, for every entry whose converted file
exists in the scratch directory, copies it next to the original with the
extension swapped. It will:
1. Skip entries the converter has not produced yet
2. Never overwrite an existing destination
3. Remove the converted file and the staged input of every handled entry

Restore is safe to run again at any time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sess, err := opts.SessionWith(ctx, ext.in, ext.out)
			if err != nil {
				return err
			}

			res, err := runOperation(cmd, opts, operation.NewRestoreOperation(operation.Options{Session: sess}), sess.ScratchDir)
			if err != nil {
				return errors.Errorf("restoring: %w", err)
			}

			opts.UserLogger.LogPending(res.Pending, sess.ScratchDir)
			return nil
		},
	}

	ext.add(cmd)

	return cmd
}
