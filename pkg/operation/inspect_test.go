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
	"github.com/walteh/restage/pkg/testutils"
)

func TestInspect(t *testing.T) {
	ctx := testutils.Context(t)
	fs := afero.NewMemMapFs()
	sess := newTestSession(t, fs)

	stage(t, sess, map[string]string{
		"/docs/staged.indd":    "s",
		"/docs/converted.indd": "c",
		"/docs/conflict.indd":  "x",
		"/docs/conflict.idml":  "edited",
		"/docs/restored.indd":  "r",
		"/docs/missing.indd":   "m",
	}, []string{
		"/docs/staged.indd",
		"/docs/converted.indd",
		"/docs/conflict.indd",
		"/docs/restored.indd",
		"/docs/missing.indd",
	})

	convert(t, sess, 1, "converted!", false)
	convert(t, sess, 2, "conflict", true)
	require.NoError(t, fs.Remove(sess.StagedPath(3, sess.InExt)))
	testutils.WriteFiles(t, fs, map[string]string{"/docs/restored.idml": "R"})
	require.NoError(t, fs.Remove(sess.StagedPath(4, sess.InExt)))

	before := testutils.Tree(t, fs, "/")

	got, err := Inspect(ctx, sess)
	require.NoError(t, err)
	require.Len(t, got, 5)

	states := make([]State, len(got))
	for i, st := range got {
		states[i] = st.State
		assert.Equal(t, i, st.Index)
	}
	assert.Equal(t, []State{StateStaged, StateConverted, StateConflict, StateRestored, StateMissing}, states)

	assert.Equal(t, "/docs/converted.idml", got[1].Destination)
	assert.Equal(t, int64(len("converted!")), got[1].ArtifactSize)
	assert.Equal(t, int64(1), got[0].ArtifactSize)
	assert.Zero(t, got[3].ArtifactSize)

	assert.Equal(t, before, testutils.Tree(t, fs, "/"), "inspection is read only")
}

func TestInspectNoManifest(t *testing.T) {
	got, err := Inspect(testutils.Context(t), newTestSession(t, afero.NewMemMapFs()))
	require.NoError(t, err)
	assert.Empty(t, got)
}
