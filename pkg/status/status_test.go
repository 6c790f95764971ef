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
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	rec := &Recorder{}
	tracker := NewTracker("restore", 4, rec)

	tracker.Step(ctx, 0, "/a.indd", OutcomeRestored)
	tracker.Step(ctx, 1, "/b.indd", OutcomePending)
	tracker.Step(ctx, 2, "/c.indd", OutcomeExists)
	tracker.Step(ctx, 3, "/d.indd", OutcomeRestored)

	assert.Equal(t, []float32{0.25, 0.5, 0.75, 1.0}, rec.Fractions())
	assert.Equal(t, []Outcome{OutcomeRestored, OutcomePending, OutcomeExists, OutcomeRestored}, rec.Outcomes())
	assert.Equal(t, 4, tracker.processed)

	events := rec.Events()
	require.Len(t, events, 4)
	assert.Equal(t, "restore", events[0].Operation)
	assert.Equal(t, "/b.indd", events[1].Path)
	assert.False(t, events[2].Done())
	assert.True(t, events[3].Done())
}

func TestTrackerNilReporter(t *testing.T) {
	tracker := NewTracker("move", 1, nil)
	tracker.Step(context.Background(), 0, "/x", OutcomeMoved)
	assert.Equal(t, 1, tracker.processed)
}

func TestTee(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	r := Tee(a, b, Discard)

	r.Report(context.Background(), Progress{Index: 0, Total: 2, Fraction: 0.5})
	r.Report(context.Background(), Progress{Index: 1, Total: 2, Fraction: 1})

	assert.Equal(t, []float32{0.5, 1}, a.Fractions())
	assert.Equal(t, a.Events(), b.Events())
}

func TestChannelReporter(t *testing.T) {
	t.Run("delivers_in_order", func(t *testing.T) {
		r := NewChannelReporter(0)
		ctx := context.Background()

		go func() {
			defer r.Close()
			tracker := NewTracker("gather", 3, r)
			for i := 0; i < 3; i++ {
				tracker.Step(ctx, i, "f", OutcomeStaged)
			}
		}()

		var got []int
		for p := range r.Events() {
			got = append(got, p.Index)
		}
		assert.Equal(t, []int{0, 1, 2}, got)
	})

	t.Run("unblocks_on_cancel", func(t *testing.T) {
		r := NewChannelReporter(0)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		done := make(chan struct{})
		go func() {
			r.Report(ctx, Progress{Total: 1})
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("report blocked after cancellation")
		}
	})
}

func TestLogReporter(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	r := NewLogReporter(nil)
	tracker := NewTracker("clean", 2, r)
	tracker.Step(ctx, 0, "/scratch/0.indd", OutcomeRemoved)
	tracker.Step(ctx, 1, "/scratch/1.indd", OutcomePending)
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeUnknown, "unknown"},
		{OutcomeStaged, "staged"},
		{OutcomeRestored, "restored"},
		{OutcomeMoved, "moved"},
		{OutcomeExists, "exists"},
		{OutcomePending, "pending"},
		{OutcomeRemoved, "removed"},
		{Outcome(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outcome.String())
		})
	}
}
