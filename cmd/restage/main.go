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
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/restage/pkg/log"
	"github.com/walteh/restage/pkg/operation"
	"github.com/walteh/restage/pkg/session"
	"gitlab.com/tozd/go/errors"
)

const (
	exitFailure       = 1
	exitSameDirectory = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd(afero.NewOsFs()).ExecuteContext(ctx)
	stop()

	if err == nil {
		return
	}

	if errors.Is(err, session.ErrNoBaseDir) {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("cannot locate restage state")
	}

	log.NewUserLogger(ctx).LogFailure("restage", err)
	os.Exit(exitCode(err))
}

// exitCode maps an error to the process exit status
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, operation.ErrSameDirectory):
		return exitSameDirectory
	default:
		return exitFailure
	}
}
