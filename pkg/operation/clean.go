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

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/restage/pkg/fileops"
	"github.com/walteh/restage/pkg/manifest"
	"github.com/walteh/restage/pkg/session"
	"github.com/walteh/restage/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🧹 NewCleanOperation creates a new clean operation
func NewCleanOperation(opts Options) Operation {
	return &cleanOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

// 🧹 cleanOperation removes staged inputs that never got converted
type cleanOperation struct {
	BaseOperation
}

func (op *cleanOperation) Name() string { return "clean" }

// 🏃 Execute runs the clean operation. Converted artifacts are kept for
// restore. Once the scratch directory is empty the session is reset.
func (op *cleanOperation) Execute(ctx context.Context, reporter status.Reporter) (*Result, error) {
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

	// Get list of staged entries
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

		outcome, err := op.cleanEntry(ctx, sess, entry, res)
		if err != nil {
			return res, errors.Errorf("cleaning entry %d: %w", entry.Index, err)
		}

		res.Processed++
		tracker.Step(ctx, entry.Index, entry.Path, outcome)
	}

	if err := op.reset(ctx, sess); err != nil {
		return res, errors.Errorf("resetting session: %w", err)
	}

	return res, nil
}

// 🗑️ cleanEntry removes the leftover input of one entry unless its converted
// counterpart is waiting
func (op *cleanOperation) cleanEntry(ctx context.Context, sess *session.Session, entry manifest.Entry, res *Result) (status.Outcome, error) {
	converted := sess.StagedPath(entry.Index, sess.OutExt)

	ok, err := fileops.Exists(sess.Fs, converted)
	if err != nil {
		return status.OutcomeUnknown, err
	}
	if ok {
		res.Pending++
		return status.OutcomePending, nil
	}

	leftover := sess.StagedPath(entry.Index, sess.InExt)
	removed, err := fileops.RemoveIfExists(sess.Fs, leftover)
	if err != nil {
		return status.OutcomeUnknown, err
	}
	if !removed {
		return status.OutcomeUnknown, nil
	}

	res.Removed++
	zerolog.Ctx(ctx).Debug().Str("leftover", leftover).Str("original", entry.Path).Msg("removed leftover input")
	return status.OutcomeRemoved, nil
}

// reset drops the scratch directory and the manifest once nothing is staged.
func (op *cleanOperation) reset(ctx context.Context, sess *session.Session) error {
	exists, err := fileops.Exists(sess.Fs, sess.ScratchDir)
	if err != nil {
		return err
	}

	if exists {
		empty, err := afero.IsEmpty(sess.Fs, sess.ScratchDir)
		if err != nil {
			return errors.Errorf("reading scratch directory: %w", err)
		}
		if !empty {
			zerolog.Ctx(ctx).Debug().Str("scratch_dir", sess.ScratchDir).Msg("scratch directory still in use")
			return nil
		}
		if _, err := fileops.RemoveIfExists(sess.Fs, sess.ScratchDir); err != nil {
			return err
		}
	}

	if err := manifest.Remove(ctx, sess.Fs, sess.ManifestPath); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Str("base_dir", sess.BaseDir).Msg("session reset")
	return nil
}
