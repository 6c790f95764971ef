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

package opts

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/restage/pkg/config"
	"github.com/walteh/restage/pkg/log"
	"github.com/walteh/restage/pkg/session"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Fs         afero.Fs
	Config     *config.Config
	Session    *session.Session
	Console    *log.Logger
	UserLogger *log.UserLogger
	Async      bool // Consume progress on its own goroutine
}

// New resolves the session for cfg and wires the console loggers.
func New(ctx context.Context, fs afero.Fs, cfg *config.Config, console io.Writer, async bool) (*RootOpts, error) {
	sess, err := session.New(ctx, fs, cfg)
	if err != nil {
		return nil, errors.Errorf("creating session: %w", err)
	}

	return &RootOpts{
		Fs:         fs,
		Config:     cfg,
		Session:    sess,
		Console:    log.New(console, zerolog.Ctx(ctx).GetLevel()),
		UserLogger: log.NewUserLogger(ctx),
		Async:      async,
	}, nil
}

// SessionWith returns the session with the extension overrides applied.
// Empty overrides keep the configured values.
func (o *RootOpts) SessionWith(ctx context.Context, inExt, outExt string) (*session.Session, error) {
	if inExt == "" && outExt == "" {
		return o.Session, nil
	}

	cfg := *o.Config
	cfg.BaseDir = o.Session.BaseDir
	if inExt != "" {
		cfg.InExt = inExt
	}
	if outExt != "" {
		cfg.OutExt = outExt
	}

	sess, err := session.New(ctx, o.Fs, &cfg)
	if err != nil {
		return nil, errors.Errorf("applying extension flags: %w", err)
	}
	return sess, nil
}
