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
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/restage/pkg/config"
	"github.com/walteh/restage/pkg/fileops"
	"github.com/walteh/restage/pkg/locate"
	"github.com/walteh/restage/pkg/session"
	"github.com/walteh/restage/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var removeBackoff = 200 * time.Millisecond

// 🚚 NewMoveOperation creates an operation that mirrors every matching file
// under opts.InputRoot into opts.OutputRoot
func NewMoveOperation(opts Options) Operation {
	return &moveOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

type moveOperation struct {
	BaseOperation
}

func (op *moveOperation) Name() string { return "move" }

type moveTarget struct {
	in, out    string
	ext, toExt string
}

// 🏃 Execute relocates candidates one at a time. A destination that already
// exists is never replaced, which makes an interrupted move safe to rerun.
// A crash between the copy and the delete leaves the file at both ends.
func (op *moveOperation) Execute(ctx context.Context, reporter status.Reporter) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	res := &Result{}

	sess, err := op.session()
	if err != nil {
		return res, err
	}

	target, err := op.target(sess)
	if err != nil {
		return res, err
	}

	unlock, err := session.Lock(ctx, target.out)
	if err != nil {
		return res, errors.Errorf("locking %s: %w", target.out, err)
	}
	defer unlock()

	found, err := locate.Search(ctx, sess.Fs, target.in, target.ext, locate.Options{Ignore: sess.Ignore})
	if err != nil {
		return res, errors.Errorf("searching %s: %w", target.in, err)
	}

	candidates := make([]string, 0, len(found.Files))
	for _, file := range found.Files {
		// output nested inside input: never pick up what an earlier run moved
		if isWithin(target.out, file) {
			continue
		}
		candidates = append(candidates, file)
	}
	res.Total = len(candidates)

	logger.Info().
		Str("input", target.in).
		Str("output", target.out).
		Int("files", len(candidates)).
		Msg("moving files")

	tracker := status.NewTracker(op.Name(), len(candidates), reporter)
	for i, file := range candidates {
		if err := cancelled(ctx, op.Name(), res); err != nil {
			return res, err
		}

		outcome, err := op.moveFile(ctx, sess, target, file, res)
		if err != nil {
			return res, errors.Errorf("moving %s: %w", file, err)
		}

		res.Processed++
		tracker.Step(ctx, i, file, outcome)
	}

	return res, nil
}

func (op *moveOperation) target(sess *session.Session) (*moveTarget, error) {
	in, err := filepath.Abs(op.InputRoot)
	if err != nil {
		return nil, errors.Errorf("resolving input root %s: %w", op.InputRoot, err)
	}
	out, err := filepath.Abs(op.OutputRoot)
	if err != nil {
		return nil, errors.Errorf("resolving output root %s: %w", op.OutputRoot, err)
	}
	if in == out {
		return nil, errors.Errorf("%w: %s", ErrSameDirectory, in)
	}

	t := &moveTarget{in: in, out: out}

	ext := op.Ext
	if ext == "" {
		ext = sess.InExt
	}
	if t.ext, err = config.NormalizeExt(ext); err != nil {
		return nil, errors.Errorf("move extension: %w", err)
	}
	if op.ToExt != "" {
		if t.toExt, err = config.NormalizeExt(op.ToExt); err != nil {
			return nil, errors.Errorf("move target extension: %w", err)
		}
	}

	return t, nil
}

func (op *moveOperation) moveFile(ctx context.Context, sess *session.Session, t *moveTarget, file string, res *Result) (status.Outcome, error) {
	logger := zerolog.Ctx(ctx).With().Str("source", file).Logger()

	rel, err := relativePath(t.in, file)
	if err != nil {
		return status.OutcomeUnknown, err
	}

	destination := filepath.Join(t.out, rel)
	if t.toExt != "" {
		destination = trimExt(destination, "."+t.ext) + "." + t.toExt
	}

	exists, err := fileops.Exists(sess.Fs, destination)
	if err != nil {
		return status.OutcomeUnknown, err
	}
	if exists {
		res.Existing++
		logger.Debug().Str("destination", destination).Msg("destination exists, skipping")
		return status.OutcomeExists, nil
	}

	if err := fileops.MkdirAll(sess.Fs, filepath.Dir(destination)); err != nil {
		return status.OutcomeUnknown, err
	}

	if sess.Move.PreferRename {
		err := sess.Fs.Rename(file, destination)
		if err == nil {
			res.Copied++
			logger.Debug().Str("destination", destination).Msg("renamed file")
			return status.OutcomeMoved, nil
		}
		logger.Debug().Err(err).Msg("rename failed, falling back to copy")
	}

	if err := fileops.CopyFile(sess.Fs, file, destination); err != nil {
		return status.OutcomeUnknown, err
	}
	res.Copied++

	if err := fileops.RemoveWithRetry(ctx, sess.Fs, file, sess.Move.RemoveAttempts, removeBackoff); err != nil {
		logger.Error().Err(err).Str("destination", destination).Msg("copied but could not remove source")
		return status.OutcomeMoved, errors.Errorf("removing source after copy: %w", err)
	}

	logger.Debug().Str("destination", destination).Msg("moved file")
	return status.OutcomeMoved, nil
}

func isWithin(root, path string) bool {
	if path == root {
		return true
	}
	if !strings.HasSuffix(root, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}
	return strings.HasPrefix(path, root)
}
