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

package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/restage/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// ErrNoBaseDir is returned when no base directory can be resolved.
var ErrNoBaseDir = errors.Base("base directory cannot be resolved")

// 🗂️ Session ties the persisted staging state to one base directory
type Session struct {
	Fs           afero.Fs
	BaseDir      string // Absolute directory holding the manifest and scratch dir
	ScratchDir   string // Absolute scratch directory
	ManifestPath string // Absolute manifest file path
	InExt        string // Normalized extension of staged inputs
	OutExt       string // Normalized extension the converter produces
	Ignore       []string
	Move         config.MoveArgs
}

// 🏭 New creates a session from a validated config. An empty base dir falls
// back to DefaultBaseDir.
func New(ctx context.Context, fs afero.Fs, cfg *config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	base := cfg.BaseDir
	if base == "" {
		var err error
		base, err = DefaultBaseDir(fs)
		if err != nil {
			return nil, err
		}
	}

	base, err := filepath.Abs(base)
	if err != nil {
		return nil, errors.Errorf("%w: %v", ErrNoBaseDir, err)
	}

	sess := &Session{
		Fs:           fs,
		BaseDir:      base,
		ScratchDir:   filepath.Join(base, cfg.ScratchDir),
		ManifestPath: filepath.Join(base, cfg.ManifestFile),
		InExt:        cfg.InExt,
		OutExt:       cfg.OutExt,
		Ignore:       cfg.Ignore,
		Move:         *cfg.Move,
	}

	zerolog.Ctx(ctx).Debug().
		Str("base_dir", sess.BaseDir).
		Str("scratch_dir", sess.ScratchDir).
		Str("manifest", sess.ManifestPath).
		Msg("session ready")

	return sess, nil
}

// StagedPath returns scratch/{index}.{ext}.
func (s *Session) StagedPath(index int, ext string) string {
	return filepath.Join(s.ScratchDir, fmt.Sprintf("%d.%s", index, ext))
}

// Lock guards the manifest and scratch dir of this session.
func (s *Session) Lock(ctx context.Context) (func(), error) {
	return Lock(ctx, s.BaseDir)
}

// DefaultBaseDir resolves the user's desktop, or the home directory when
// there is no desktop.
func DefaultBaseDir(fs afero.Fs) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Errorf("%w: %v", ErrNoBaseDir, err)
	}
	return ResolveBaseDir(fs, home)
}

// ResolveBaseDir picks home/Desktop when it is a directory and home otherwise.
func ResolveBaseDir(fs afero.Fs, home string) (string, error) {
	if home == "" {
		return "", errors.Errorf("%w: empty home directory", ErrNoBaseDir)
	}

	desktop := filepath.Join(home, "Desktop")
	ok, err := afero.DirExists(fs, desktop)
	if err != nil {
		return "", errors.Errorf("%w: checking %s: %v", ErrNoBaseDir, desktop, err)
	}
	if ok {
		return desktop, nil
	}
	return home, nil
}
