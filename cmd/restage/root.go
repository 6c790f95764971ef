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

package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/restage/cmd/restage/commands"
	"github.com/walteh/restage/cmd/restage/opts"
	"github.com/walteh/restage/pkg/config"
	"gitlab.com/tozd/go/errors"
)

const defaultConfigFile = ".restage.yaml"

// rootFlags are the persistent flags shared by every command
type rootFlags struct {
	configFile string
	debug      bool
	baseDir    string
	async      bool
}

// newRootCmd builds the command tree. Shared options are resolved once the
// flags are parsed, before any command runs.
func newRootCmd(fs afero.Fs) *cobra.Command {
	var flags rootFlags
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "restage",
		Short: "Stage files for an external converter and put the results back",
		Long: `restage copies files of one extension into a scratch directory under
numbered names so a batch converter can process them, then copies the
converted files back next to their originals with the new extension.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), flags.debug)
			cmd.SetContext(ctx)

			built, err := newRootOpts(ctx, fs, flags, cmd.Flags().Changed("config"), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			*rootOpts = *built
			return nil
		},
	}

	addRootFlags(cmd, &flags)

	cmd.AddCommand(
		commands.NewSearchCmd(rootOpts),
		commands.NewGatherCmd(rootOpts),
		commands.NewManifestCmd(rootOpts),
		commands.NewRestoreCmd(rootOpts),
		commands.NewMoveCmd(rootOpts),
		commands.NewStatusCmd(rootOpts),
		commands.NewCleanCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

// newRootOpts loads the config and resolves the session
func newRootOpts(ctx context.Context, fs afero.Fs, flags rootFlags, explicitConfig bool, console io.Writer) (*opts.RootOpts, error) {
	cfg, err := loadConfig(ctx, fs, flags.configFile, explicitConfig)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if flags.baseDir != "" {
		cfg.BaseDir = flags.baseDir
	}

	return opts.New(ctx, fs, cfg, console, flags.async)
}

// loadConfig reads path. A missing config at the default location means
// built-in defaults; a missing explicit one is an error.
func loadConfig(ctx context.Context, fs afero.Fs, path string, explicit bool) (*config.Config, error) {
	if !explicit {
		exists, err := afero.Exists(fs, path)
		if err != nil {
			return nil, errors.Errorf("checking %s: %w", path, err)
		}
		if !exists {
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
			return config.Default(), nil
		}
	}
	return config.Load(ctx, fs, path)
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", defaultConfigFile, "config file path (yaml, hcl or json)")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.baseDir, "base-dir", "", "directory holding the manifest and scratch directory (default: Desktop or home)")
	cmd.PersistentFlags().BoolVar(&flags.async, "async", false, "consume progress on a separate goroutine")
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context, debug bool) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log

	return log.WithContext(ctx)
}
