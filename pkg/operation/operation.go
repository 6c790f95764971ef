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

package operation

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/restage/pkg/session"
	"github.com/walteh/restage/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrSameDirectory is returned by move when both roots resolve to one directory.
	ErrSameDirectory = errors.Base("input and output directories are the same")

	// ErrRelativePath is returned when a path cannot be expressed relative to its root.
	ErrRelativePath = errors.Base("path is not inside root")
)

// 🎯 Operation is one long running, cancellable unit of work
type Operation interface {
	// Name identifies the operation in progress events and logs
	Name() string
	// Execute runs the operation, reporting progress after every entry. The
	// result is returned even when err is not nil.
	Execute(ctx context.Context, reporter status.Reporter) (*Result, error)
}

// 📊 Result counts what an operation did
type Result struct {
	Total     int `json:"total"`     // Entries the operation set out to process
	Processed int `json:"processed"` // Entries handled before returning
	Copied    int `json:"copied"`    // Files written to a destination
	Existing  int `json:"existing"`  // Destinations already present and left alone
	Pending   int `json:"pending"`   // Entries still waiting on the converter
	Removed   int `json:"removed"`   // Leftover artifacts deleted
}

// Complete reports whether every entry was handled.
func (r *Result) Complete() bool {
	return r.Processed == r.Total
}

// 🔧 Options contains the inputs shared by every operation
type Options struct {
	// Session locates the manifest and scratch directory
	Session *session.Session
	// Files is the ordered selection to stage
	Files []string
	// InputRoot and OutputRoot are the move roots
	InputRoot  string
	OutputRoot string
	// Ext selects move candidates; empty means the session input extension
	Ext string
	// ToExt optionally replaces Ext on moved files
	ToExt string
}

// 🏗️ BaseOperation holds what every operation shares
type BaseOperation struct {
	Options
}

// 🏭 NewBaseOperation creates a new base operation
func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{Options: opts}
}

func (op *BaseOperation) session() (*session.Session, error) {
	if op.Session == nil {
		return nil, errors.Errorf("session is required")
	}
	return op.Session, nil
}

// cancelled returns a wrapped ctx error once ctx is done.
func cancelled(ctx context.Context, name string, res *Result) error {
	if err := ctx.Err(); err != nil {
		zerolog.Ctx(ctx).Warn().
			Str("operation", name).
			Int("processed", res.Processed).
			Int("total", res.Total).
			Msg("operation cancelled")
		return errors.Errorf("%s cancelled after %d of %d: %w", name, res.Processed, res.Total, err)
	}
	return nil
}

// relativePath returns path relative to root, failing for paths outside root.
func relativePath(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", errors.Errorf("%w: %s under %s: %v", ErrRelativePath, path, root, err)
	}
	if rel == "." || rel == ".." || filepath.IsAbs(rel) || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("%w: %s under %s", ErrRelativePath, path, root)
	}
	return rel, nil
}
