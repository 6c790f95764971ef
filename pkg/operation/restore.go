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
	"github.com/walteh/restage/pkg/fileops"
	"github.com/walteh/restage/pkg/manifest"
	"github.com/walteh/restage/pkg/session"
	"github.com/walteh/restage/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ✨ NewRestoreOperation creates an operation that copies converted artifacts
// back next to their originals
func NewRestoreOperation(opts Options) Operation {
	return &restoreOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

type restoreOperation struct {
	BaseOperation
}

func (op *restoreOperation) Name() string { return "restore" }

// 🏃 Execute walks the manifest in order. Entries whose converted artifact is
// missing are left alone, so running it again only picks up new conversions.
func (op *restoreOperation) Execute(ctx context.Context, reporter status.Reporter) (*Result, error) {
	res := &Result{}

	sess, err := op.session()
	if err != nil {
		return res, err
	}

	unlock, err := sess.Lock(ctx)
	if err != nil {
		return res, errors.Errorf("locking %s: %w", sess.BaseDir, err)
	}
	defer unlock()

	entries, err := manifest.Read(ctx, sess.Fs, sess.ManifestPath)
	if err != nil {
		return res, errors.Errorf("reading manifest: %w", err)
	}
	res.Total = len(entries)

	tracker := status.NewTracker(op.Name(), len(entries), reporter)
	for _, entry := range entries {
		if err := cancelled(ctx, op.Name(), res); err != nil {
			return res, err
		}

		outcome, err := op.restoreEntry(ctx, sess, entry, res)
		if err != nil {
			return res, errors.Errorf("restoring entry %d (%s): %w", entry.Index, entry.Path, err)
		}

		res.Processed++
		tracker.Step(ctx, entry.Index, entry.Path, outcome)
	}

	zerolog.Ctx(ctx).Info().
		Int("restored", res.Copied).
		Int("existing", res.Existing).
		Int("pending", res.Pending).
		Msg("restore finished")

	return res, nil
}

func (op *restoreOperation) restoreEntry(ctx context.Context, sess *session.Session, entry manifest.Entry, res *Result) (status.Outcome, error) {
	logger := zerolog.Ctx(ctx).With().Int("index", entry.Index).Str("original", entry.Path).Logger()

	if entry.Path == "" {
		logger.Warn().Msg("skipping blank manifest entry")
		return status.OutcomeUnknown, nil
	}

	converted := sess.StagedPath(entry.Index, sess.OutExt)
	leftover := sess.StagedPath(entry.Index, sess.InExt)

	ok, err := fileops.Exists(sess.Fs, converted)
	if err != nil {
		return status.OutcomeUnknown, err
	}
	if !ok {
		res.Pending++
		logger.Debug().Str("converted", converted).Msg("not converted yet")
		return status.OutcomePending, nil
	}

	destination := RestorePath(entry.Path, sess.InExt, sess.OutExt)

	exists, err := fileops.Exists(sess.Fs, destination)
	if err != nil {
		return status.OutcomeUnknown, err
	}

	outcome := status.OutcomeExists
	if exists {
		res.Existing++
		logger.Info().Str("destination", destination).Msg("destination exists, discarding converted copy")
	} else {
		if err := fileops.MkdirAll(sess.Fs, filepath.Dir(destination)); err != nil {
			return status.OutcomeUnknown, err
		}
		if err := fileops.CopyFile(sess.Fs, converted, destination); err != nil {
			return status.OutcomeUnknown, err
		}
		res.Copied++
		outcome = status.OutcomeRestored
		logger.Debug().Str("destination", destination).Msg("restored file")
	}

	if _, err := fileops.RemoveIfExists(sess.Fs, converted); err != nil {
		return outcome, err
	}

	if leftover != converted {
		removed, err := fileops.RemoveIfExists(sess.Fs, leftover)
		if err != nil {
			return outcome, err
		}
		if removed {
			res.Removed++
		}
	}

	return outcome, nil
}

// RestorePath swaps a trailing ".{inExt}" on original for ".{outExt}". The
// suffix match ignores case; a path without it gets ".{outExt}" appended.
func RestorePath(original, inExt, outExt string) string {
	suffix := "." + inExt
	return trimExt(original, suffix) + "." + outExt
}

func trimExt(path, suffix string) string {
	if n := len(path) - len(suffix); n >= 0 && strings.EqualFold(path[n:], suffix) {
		return path[:n]
	}
	return path
}
