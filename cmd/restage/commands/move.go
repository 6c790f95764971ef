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

// NewMoveCmd creates a new move command
func NewMoveCmd(opts *opts.RootOpts) *cobra.Command {
	var ext, toExt string

	cmd := &cobra.Command{
		Use:   "move INPUT OUTPUT",
		Short: "Move matching files from INPUT into the same layout under OUTPUT",
		Long: `Move relocates every file with the extension under INPUT to the same
relative path under OUTPUT, optionally changing its extension.
Existing files under OUTPUT are never replaced, so an interrupted move can
simply be run again.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op := operation.NewMoveOperation(operation.Options{
				Session:    opts.Session,
				InputRoot:  args[0],
				OutputRoot: args[1],
				Ext:        ext,
				ToExt:      toExt,
			})

			if _, err := runOperation(cmd, opts, op, args[1]); err != nil {
				return errors.Errorf("moving: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ext, "ext", "", "extension to move (default from config in_ext)")
	cmd.Flags().StringVar(&toExt, "to-ext", "", "extension to give moved files")

	return cmd
}
