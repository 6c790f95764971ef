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

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/walteh/restage/cmd/restage/opts"
	"github.com/walteh/restage/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewStatusCmd creates a new status command
func NewStatusCmd(opts *opts.RootOpts) *cobra.Command {
	var ext extFlags

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show where each staged file is in the round trip",
		Long: `Status reads the manifest and the scratch directory and reports one
state per entry:
  staged     waiting on the converter
  converted  ready to restore
  conflict   ready, but the destination exists and will be kept
  restored   done
  missing    nothing staged and no destination`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sess, err := opts.SessionWith(ctx, ext.in, ext.out)
			if err != nil {
				return err
			}

			entries, err := operation.Inspect(ctx, sess)
			if err != nil {
				return errors.Errorf("checking status: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "nothing staged")
				return nil
			}

			counts := map[operation.State]int{}
			table := tablewriter.NewWriter(out)
			table.Header("Index", "State", "Size", "Destination")
			for _, e := range entries {
				counts[e.State]++
				size := ""
				if e.ArtifactSize > 0 {
					size = humanize.Bytes(uint64(e.ArtifactSize))
				}
				if err := table.Append([]string{strconv.Itoa(e.Index), string(e.State), size, e.Destination}); err != nil {
					return errors.Errorf("rendering entry %d: %w", e.Index, err)
				}
			}
			if err := table.Render(); err != nil {
				return errors.Errorf("rendering status: %w", err)
			}

			if waiting := counts[operation.StateStaged]; waiting > 0 {
				opts.UserLogger.LogPending(waiting, sess.ScratchDir)
			}
			if ready := counts[operation.StateConverted] + counts[operation.StateConflict]; ready > 0 {
				opts.UserLogger.LogStateChange(fmt.Sprintf("%d file(s) ready to restore", ready))
			}

			return nil
		},
	}

	ext.add(cmd)

	return cmd
}
