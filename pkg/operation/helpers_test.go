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
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/walteh/restage/pkg/config"
	"github.com/walteh/restage/pkg/session"
	"github.com/walteh/restage/pkg/testutils"
)

const baseDir = "/base"

func newTestSession(t *testing.T, fs afero.Fs, mutate ...func(*config.Config)) *session.Session {
	t.Helper()
	cfg := &config.Config{BaseDir: baseDir}
	for _, m := range mutate {
		m(cfg)
	}
	sess, err := session.New(testutils.Context(t), fs, cfg)
	require.NoError(t, err)
	return sess
}

// convert plays the external converter for entry index: it writes the
// converted artifact and, unless keepInput is set, drops the staged input.
func convert(t *testing.T, sess *session.Session, index int, content string, keepInput bool) {
	t.Helper()
	in := sess.StagedPath(index, sess.InExt)
	out := sess.StagedPath(index, sess.OutExt)
	require.NoError(t, afero.WriteFile(sess.Fs, out, []byte(content), 0o644))
	if !keepInput {
		require.NoError(t, sess.Fs.Remove(in))
	}
}

func scratch(name string) string {
	return filepath.Join(baseDir, config.DefaultScratchDir, name)
}
