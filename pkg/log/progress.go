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
	"io"
	"sync"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/restage/pkg/status"
)

// 📊 ProgressBar draws a pterm progress bar from progress events
type ProgressBar struct {
	writer io.Writer
	title  string

	mu  sync.Mutex
	bar *pterm.ProgressbarPrinter
}

// NewProgressBar creates a bar that starts on the first event it receives.
func NewProgressBar(writer io.Writer, title string) *ProgressBar {
	return &ProgressBar{writer: writer, title: title}
}

func (b *ProgressBar) Report(ctx context.Context, p status.Progress) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bar == nil {
		bar, err := pterm.DefaultProgressbar.
			WithTotal(p.Total).
			WithTitle(b.title).
			WithWriter(b.writer).
			WithRemoveWhenDone(true).
			Start()
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Msg("starting progress bar")
			return
		}
		b.bar = bar
	}

	b.bar.Increment()

	if p.Done() {
		b.stop()
	}
}

// Stop clears the bar of a run that ended early. It is a no-op once the bar finished.
func (b *ProgressBar) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stop()
}

func (b *ProgressBar) stop() {
	if b.bar == nil {
		return
	}
	_, _ = b.bar.Stop()
	b.bar = nil
}
