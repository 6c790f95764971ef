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
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/restage/pkg/status"
	"github.com/walteh/restage/pkg/testutils"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name         string
		converted    map[int]bool // index -> keep the staged input next to the conversion
		wantResult   *Result
		wantOutcomes []status.Outcome
		wantScratch  []string
		wantManifest bool
	}{
		{
			name:         "nothing_converted",
			wantResult:   &Result{Total: 2, Processed: 2, Removed: 2},
			wantOutcomes: []status.Outcome{status.OutcomeRemoved, status.OutcomeRemoved},
			wantScratch:  nil,
			wantManifest: false,
		},
		{
			name:         "converted_artifact_waiting",
			converted:    map[int]bool{1: false},
			wantResult:   &Result{Total: 2, Processed: 2, Pending: 1, Removed: 1},
			wantOutcomes: []status.Outcome{status.OutcomeRemoved, status.OutcomePending},
			wantScratch:  []string{"1.idml"},
			wantManifest: true,
		},
		{
			name:         "input_kept_while_conversion_waits",
			converted:    map[int]bool{0: true},
			wantResult:   &Result{Total: 2, Processed: 2, Pending: 1, Removed: 1},
			wantOutcomes: []status.Outcome{status.OutcomePending, status.OutcomeRemoved},
			wantScratch:  []string{"0.idml", "0.indd"},
			wantManifest: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutils.Context(t)
			fs := afero.NewMemMapFs()
			sess := newTestSession(t, fs)
			stage(t, sess, map[string]string{
				"/docs/a.indd": "a",
				"/docs/b.indd": "b",
			}, []string{"/docs/a.indd", "/docs/b.indd"})

			for index, keepInput := range tt.converted {
				convert(t, sess, index, "converted", keepInput)
			}

			rec := &status.Recorder{}
			res, err := NewCleanOperation(Options{Session: sess}).Execute(ctx, rec)
			require.NoError(t, err)

			assert.Equal(t, tt.wantResult, res)
			assert.Equal(t, tt.wantOutcomes, rec.Outcomes())
			assert.Equal(t, tt.wantScratch, testutils.Names(t, fs, sess.ScratchDir))

			exists, err := afero.Exists(fs, sess.ManifestPath)
			require.NoError(t, err)
			assert.Equal(t, tt.wantManifest, exists)

			// originals are never touched
			assert.Equal(t, map[string]string{"/docs/a.indd": "a", "/docs/b.indd": "b"}, testutils.Tree(t, fs, "/docs"))
		})
	}
}

func TestCleanAfterRestore(t *testing.T) {
	ctx := testutils.Context(t)
	fs := afero.NewMemMapFs()
	sess := newTestSession(t, fs)
	stage(t, sess, map[string]string{"/docs/a.indd": "a"}, []string{"/docs/a.indd"})
	convert(t, sess, 0, "A", false)

	_, err := NewRestoreOperation(Options{Session: sess}).Execute(ctx, nil)
	require.NoError(t, err)

	res, err := NewCleanOperation(Options{Session: sess}).Execute(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Removed)

	exists, err := afero.Exists(fs, sess.ScratchDir)
	require.NoError(t, err)
	assert.False(t, exists, "empty scratch directory is removed")

	exists, err = afero.Exists(fs, sess.ManifestPath)
	require.NoError(t, err)
	assert.False(t, exists, "manifest is removed with it")
}

func TestCleanWithoutSession(t *testing.T) {
	ctx := testutils.Context(t)
	res, err := NewCleanOperation(Options{}).Execute(ctx, nil)
	require.Error(t, err)
	assert.Equal(t, &Result{}, res)
}
