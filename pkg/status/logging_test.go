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
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
)

func TestDefaultFileFormatter(t *testing.T) {
	formatter := NewDefaultFileFormatter()

	outcomes := []struct {
		name    string
		path    string
		outcome Outcome
		want    string
	}{
		{name: "staged", path: "a.indd", outcome: OutcomeStaged, want: "📥 Staged a.indd"},
		{name: "restored", path: "a.idml", outcome: OutcomeRestored, want: "✨ Restored a.idml"},
		{name: "moved", path: "b/c.indd", outcome: OutcomeMoved, want: "🚚 Moved b/c.indd"},
		{name: "exists", path: "a.idml", outcome: OutcomeExists, want: "👍 Kept existing a.idml"},
		{name: "pending", path: "a.indd", outcome: OutcomePending, want: "⏳ Waiting on a.indd"},
		{name: "removed", path: "0.indd", outcome: OutcomeRemoved, want: "🗑️  Removed 0.indd"},
		{name: "unknown", path: "x", outcome: OutcomeUnknown, want: "❔ Unknown x"},
	}

	for _, tt := range outcomes {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatter.FormatOutcome(tt.path, tt.outcome))
		})
	}

	t.Run("progress", func(t *testing.T) {
		assert.Equal(t, "⏳ Progress: 1/4 (25%)", formatter.FormatProgress(1, 4))
		assert.Equal(t, "✅ Progress: 4/4 (100%)", formatter.FormatProgress(4, 4))
		assert.Equal(t, "✅ Progress: 0/0 (0%)", formatter.FormatProgress(0, 0))
	})

	t.Run("error", func(t *testing.T) {
		assert.Equal(t, "❌ Error: boom", formatter.FormatError(errors.New("boom")))
		assert.Empty(t, formatter.FormatError(nil))
	})
}
