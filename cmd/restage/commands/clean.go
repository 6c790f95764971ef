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

// NewCleanCmd creates a new clean command
func NewCleanCmd(opts *opts.RootOpts) *cobra.Command {
	var ext extFlags

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Drop staged files that were never converted",
		Long: `Clean removes staged inputs whose converted counterpart never appeared.
It will:
1. Keep converted files that still wait for restore
2. Remove every other staged input
3. Remove the scratch directory and the manifest once nothing is left`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sess, err := opts.SessionWith(ctx, ext.in, ext.out)
			if err != nil {
				return err
			}

			if _, err := runOperation(cmd, opts, operation.NewCleanOperation(operation.Options{Session: sess}), sess.ScratchDir); err != nil {
				return errors.Errorf("cleaning: %w", err)
			}
			return nil
		},
	}

	ext.add(cmd)

	return cmd
}
