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

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/restage/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 OperationRunner executes operations
type OperationRunner struct {
	logger   *zerolog.Logger
	async    bool
	reporter status.Reporter
	buffer   int
}

// 🏗️ NewRunner creates a new runner. In async mode the operation and the
// reporter run on separate goroutines joined by a channel.
func NewRunner(logger *zerolog.Logger, async bool, reporter status.Reporter) *OperationRunner {
	if reporter == nil {
		reporter = status.Discard
	}
	return &OperationRunner{
		logger:   logger,
		async:    async,
		reporter: reporter,
		buffer:   16,
	}
}

// 🏃 Run executes an operation with a run id stamped on its logger
func (r *OperationRunner) Run(ctx context.Context, op Operation) (*Result, error) {
	runID := uuid.NewString()
	logger := r.logger.With().Str("run_id", runID).Str("operation", op.Name()).Logger()
	ctx = logger.WithContext(ctx)

	logger.Debug().Bool("async", r.async).Msg("starting operation")

	var (
		res *Result
		err error
	)
	if r.async {
		res, err = r.runAsync(ctx, op)
	} else {
		res, err = r.runSync(ctx, op)
	}

	event := logger.Debug()
	if err != nil {
		event = logger.Error().Err(err)
	}
	if res != nil {
		event = event.Int("processed", res.Processed).Int("total", res.Total)
	}
	event.Msg("operation finished")

	return res, err
}

// 🔄 runSync runs an operation synchronously
func (r *OperationRunner) runSync(ctx context.Context, op Operation) (*Result, error) {
	return op.Execute(ctx, r.reporter)
}

// ⚡ runAsync runs an operation asynchronously
func (r *OperationRunner) runAsync(ctx context.Context, op Operation) (*Result, error) {
	events := status.NewChannelReporter(r.buffer)
	group, gctx := errgroup.WithContext(ctx)

	var res *Result
	group.Go(func() error {
		defer events.Close()
		var err error
		res, err = op.Execute(gctx, events)
		if err != nil {
			return errors.Errorf("executing %s: %w", op.Name(), err)
		}
		return nil
	})

	group.Go(func() error {
		for p := range events.Events() {
			r.reporter.Report(ctx, p)
		}
		return nil
	})

	err := group.Wait()
	return res, err
}
