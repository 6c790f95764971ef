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
)

// 📊 Outcome is what happened to one entry of a long running operation
type Outcome int

const (
	OutcomeUnknown  Outcome = iota
	OutcomeStaged           // Copied into the scratch directory
	OutcomeRestored         // Converted artifact copied to its original location
	OutcomeMoved            // Source relocated under the output root
	OutcomeExists           // Destination already present, left untouched
	OutcomePending          // Converted artifact not produced yet
	OutcomeRemoved          // Leftover artifact deleted
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeStaged:
		return "staged"
	case OutcomeRestored:
		return "restored"
	case OutcomeMoved:
		return "moved"
	case OutcomeExists:
		return "exists"
	case OutcomePending:
		return "pending"
	case OutcomeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// 📈 Progress is one fractional-completion event
type Progress struct {
	Operation string  // Name of the running operation
	Index     int     // Zero based position of the entry just processed
	Total     int     // Number of entries in the run
	Fraction  float32 // (Index+1)/Total
	Path      string  // Original or source path of the entry
	Outcome   Outcome // What happened to the entry
}

// Done reports whether this event completes its run.
func (p Progress) Done() bool {
	return p.Index+1 >= p.Total
}

// 📡 Reporter receives progress events. Implementations must not block the
// operation longer than ctx allows.
type Reporter interface {
	Report(ctx context.Context, p Progress)
}

// ReporterFunc adapts a function to a Reporter.
type ReporterFunc func(ctx context.Context, p Progress)

func (f ReporterFunc) Report(ctx context.Context, p Progress) {
	f(ctx, p)
}

// Discard drops every event.
var Discard Reporter = ReporterFunc(func(context.Context, Progress) {})

// Tee fans each event out to every reporter in order.
func Tee(reporters ...Reporter) Reporter {
	return ReporterFunc(func(ctx context.Context, p Progress) {
		for _, r := range reporters {
			r.Report(ctx, p)
		}
	})
}

// 🧮 Tracker turns per-entry steps into Progress events
type Tracker struct {
	reporter  Reporter
	operation string

	mu        sync.Mutex
	total     int
	processed int
}

// 🏭 NewTracker creates a tracker for a run of total entries
func NewTracker(operation string, total int, reporter Reporter) *Tracker {
	if reporter == nil {
		reporter = Discard
	}
	return &Tracker{
		reporter:  reporter,
		operation: operation,
		total:     total,
	}
}

// Step records that the entry at index finished with outcome.
func (t *Tracker) Step(ctx context.Context, index int, path string, outcome Outcome) {
	t.mu.Lock()
	t.processed = index + 1
	p := Progress{
		Operation: t.operation,
		Index:     index,
		Total:     t.total,
		Fraction:  float32(index+1) / float32(t.total),
		Path:      path,
		Outcome:   outcome,
	}
	t.mu.Unlock()

	t.reporter.Report(ctx, p)
}
