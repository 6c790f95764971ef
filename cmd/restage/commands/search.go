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
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/walteh/restage/cmd/restage/opts"
	"github.com/walteh/restage/pkg/locate"
	"gitlab.com/tozd/go/errors"
)

// NewSearchCmd creates a new search command
func NewSearchCmd(opts *opts.RootOpts) *cobra.Command {
	var ext string

	cmd := &cobra.Command{
		Use:   "search ROOT",
		Short: "List files with the input extension under ROOT",
		Long: `Search walks ROOT and lists every file whose name ends with the
input extension (case-insensitive), followed by their combined size.
Ignore globs from the config are applied relative to ROOT.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sess, err := opts.SessionWith(ctx, ext, "")
			if err != nil {
				return err
			}

			res, err := locate.Search(ctx, opts.Fs, args[0], sess.InExt, locate.Options{Ignore: sess.Ignore})
			if err != nil {
				return errors.Errorf("searching: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, file := range res.Files {
				fmt.Fprintln(out, file)
			}
			fmt.Fprintf(out, "%d file(s), %s\n", len(res.Files), humanize.Bytes(res.TotalSize))

			return nil
		},
	}

	cmd.Flags().StringVar(&ext, "ext", "", "extension to search for (default from config in_ext)")

	return cmd
}
