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

package log

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about the staging session
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📊 LogStateChange logs a change to the persisted session
func (u *UserLogger) LogStateChange(description string) {
	printer := pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"})
	printer.Println(description)
	u.log.Info().Msg(description)
}

// 🏁 LogCompletion reports how a run ended
func (u *UserLogger) LogCompletion(operation string, processed, total int, complete bool, err error) {
	msg := fmt.Sprintf("%s: %d/%d entries", operation, processed, total)
	switch {
	case err != nil:
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(msg)
		pterm.Error.Println(err)
		u.log.Error().Err(err).Msg(msg)
	case !complete:
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(msg)
		u.log.Warn().Msg(msg)
	default:
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(msg)
		u.log.Info().Msg(msg)
	}
}

// ⏳ LogPending tells the user how many entries still wait on the converter
func (u *UserLogger) LogPending(count int, scratchDir string) {
	if count == 0 {
		return
	}
	msg := fmt.Sprintf("%d file(s) still waiting on conversion in %s", count, scratchDir)
	pterm.Warning.WithPrefix(pterm.Prefix{Text: "⏳"}).Println(msg)
	u.log.Warn().Int("pending", count).Str("scratch_dir", scratchDir).Msg("entries pending")
}

// 💥 LogFailure reports the error that ended a command
func (u *UserLogger) LogFailure(description string, err error) {
	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
	pterm.Error.Println(err)
	u.log.Error().Err(err).Msg(description)
}
