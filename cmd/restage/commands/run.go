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

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/restage/cmd/restage/opts"
	"github.com/walteh/restage/pkg/log"
	"github.com/walteh/restage/pkg/operation"
	"github.com/walteh/restage/pkg/status"
)

// runOperation runs op with a progress bar on stderr and a line per file on
// the console, then prints how the run ended.
func runOperation(cmd *cobra.Command, o *opts.RootOpts, op operation.Operation, target string) (*operation.Result, error) {
	ctx := cmd.Context()

	bar := log.NewProgressBar(cmd.ErrOrStderr(), op.Name())
	defer bar.Stop()

	o.Console.StartRun(ctx, log.Run{Operation: op.Name(), Target: target})

	reporter := status.Tee(o.Console, bar, status.NewLogReporter(nil))
	runner := operation.NewRunner(zerolog.Ctx(ctx), o.Async, reporter)

	res, err := runner.Run(ctx, op)

	o.Console.EndRun(ctx)
	if res != nil {
		o.UserLogger.LogCompletion(op.Name(), res.Processed, res.Total, res.Complete(), err)
	}

	return res, err
}
