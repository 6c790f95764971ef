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

	"github.com/rs/zerolog"
	"github.com/walteh/restage/pkg/fileops"
	"github.com/walteh/restage/pkg/manifest"
	"github.com/walteh/restage/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📥 NewGatherOperation creates an operation that stages opts.Files into the
// scratch directory as {index}.{in_ext} and replaces the manifest
func NewGatherOperation(opts Options) Operation {
	return &gatherOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

type gatherOperation struct {
	BaseOperation
}

func (op *gatherOperation) Name() string { return "gather" }

// 🏃 Execute writes the manifest first, then copies every file in order. A
// failed copy aborts; staging again with the same files is safe.
func (op *gatherOperation) Execute(ctx context.Context, reporter status.Reporter) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	res := &Result{Total: len(op.Files)}

	sess, err := op.session()
	if err != nil {
		return res, err
	}

	unlock, err := sess.Lock(ctx)
	if err != nil {
		return res, errors.Errorf("locking %s: %w", sess.BaseDir, err)
	}
	defer unlock()

	files := make([]string, len(op.Files))
	for i, f := range op.Files {
		if files[i], err = filepath.Abs(f); err != nil {
			return res, errors.Errorf("resolving %s: %w", f, err)
		}
	}

	if err := fileops.MkdirAll(sess.Fs, sess.BaseDir); err != nil {
		return res, errors.Errorf("creating base directory: %w", err)
	}

	if err := manifest.Write(ctx, sess.Fs, sess.ManifestPath, files); err != nil {
		return res, errors.Errorf("writing manifest: %w", err)
	}

	if err := fileops.MkdirAll(sess.Fs, sess.ScratchDir); err != nil {
		return res, errors.Errorf("creating scratch directory: %w", err)
	}

	logger.Info().
		Int("files", len(files)).
		Str("scratch_dir", sess.ScratchDir).
		Msg("staging files")

	tracker := status.NewTracker(op.Name(), len(files), reporter)
	for i, file := range files {
		if err := cancelled(ctx, op.Name(), res); err != nil {
			return res, err
		}

		staged := sess.StagedPath(i, sess.InExt)
		if err := fileops.CopyFile(sess.Fs, file, staged); err != nil {
			return res, errors.Errorf("staging %s: %w", file, err)
		}

		res.Processed++
		res.Copied++
		logger.Debug().Str("file", file).Str("staged", staged).Msg("staged file")
		tracker.Step(ctx, i, file, status.OutcomeStaged)
	}

	return res, nil
}
