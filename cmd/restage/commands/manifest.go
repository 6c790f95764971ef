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
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/walteh/restage/cmd/restage/opts"
	"github.com/walteh/restage/pkg/manifest"
	"gitlab.com/tozd/go/errors"
)

// NewManifestCmd creates a new manifest command
func NewManifestCmd(opts *opts.RootOpts) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Print the staged entries",
		Long: `Manifest prints the staged entries as a table. With --plain it prints
one path per line, in index order, ready to feed back into gather --files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			entries, err := manifest.Read(ctx, opts.Fs, opts.Session.ManifestPath)
			if err != nil {
				return errors.Errorf("reading manifest: %w", err)
			}

			out := cmd.OutOrStdout()
			if plain {
				for _, path := range manifest.Paths(entries) {
					fmt.Fprintln(out, path)
				}
				return nil
			}

			if len(entries) == 0 {
				fmt.Fprintln(out, "manifest is empty")
				return nil
			}

			table := tablewriter.NewWriter(out)
			table.Header("Index", "Path")
			for _, e := range entries {
				if err := table.Append([]string{strconv.Itoa(e.Index), e.Path}); err != nil {
					return errors.Errorf("rendering entry %d: %w", e.Index, err)
				}
			}
			if err := table.Render(); err != nil {
				return errors.Errorf("rendering manifest: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print bare paths instead of a table")

	return cmd
}
