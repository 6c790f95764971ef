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

package status

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// 📬 ChannelReporter forwards events to a channel for an asynchronous consumer
type ChannelReporter struct {
	ch chan Progress
}

// NewChannelReporter creates a reporter backed by a channel of the given buffer.
func NewChannelReporter(buffer int) *ChannelReporter {
	return &ChannelReporter{ch: make(chan Progress, buffer)}
}

// Report blocks until the event is buffered or ctx is done.
func (c *ChannelReporter) Report(ctx context.Context, p Progress) {
	select {
	case c.ch <- p:
	case <-ctx.Done():
	}
}

// Events is the channel consumers read from.
func (c *ChannelReporter) Events() <-chan Progress {
	return c.ch
}

// Close ends the stream. Report must not be called afterwards.
func (c *ChannelReporter) Close() {
	close(c.ch)
}

// 📼 Recorder keeps every event it receives
type Recorder struct {
	mu     sync.Mutex
	events []Progress
}

func (r *Recorder) Report(_ context.Context, p Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, p)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Progress(nil), r.events...)
}

// Fractions returns the recorded fractions in order.
func (r *Recorder) Fractions() []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float32, len(r.events))
	for i, e := range r.events {
		out[i] = e.Fraction
	}
	return out
}

// Outcomes returns the recorded outcomes in order.
func (r *Recorder) Outcomes() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Outcome, len(r.events))
	for i, e := range r.events {
		out[i] = e.Outcome
	}
	return out
}

// 📝 LogReporter writes each event to the context logger
type LogReporter struct {
	formatter FileFormatter
}

// NewLogReporter creates a LogReporter; a nil formatter uses the default one.
func NewLogReporter(formatter FileFormatter) *LogReporter {
	if formatter == nil {
		formatter = NewDefaultFileFormatter()
	}
	return &LogReporter{formatter: formatter}
}

func (l *LogReporter) Report(ctx context.Context, p Progress) {
	zerolog.Ctx(ctx).Debug().
		Str("operation", p.Operation).
		Str("path", p.Path).
		Str("outcome", p.Outcome.String()).
		Int("processed", p.Index+1).
		Int("total", p.Total).
		Float32("fraction", p.Fraction).
		Msg(l.formatter.FormatOutcome(p.Path, p.Outcome))

	if p.Done() {
		zerolog.Ctx(ctx).Info().
			Str("operation", p.Operation).
			Int("total", p.Total).
			Msg(l.formatter.FormatProgress(p.Index+1, p.Total))
	}
}
