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

package locate_test

import (
	"context"
	"syscall"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/restage/pkg/locate"
	"github.com/walteh/restage/pkg/testutils"
	"gitlab.com/tozd/go/errors"
)

func TestSearch(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		dirs      []string
		ext       string
		opts      locate.Options
		wantFiles []string
		wantSize  uint64
	}{
		{
			name: "case_insensitive_suffix",
			files: map[string]string{
				"/src/A.TXT":         "12345",
				"/src/b.txt":         "12",
				"/src/c.Txt":         "1",
				"/src/notes.md":      "ignored",
				"/src/txt":           "no dot",
				"/src/sub/d.txt":     "123",
				"/src/sub/e.txtx":    "no",
				"/src/sub/f.old.txt": "",
			},
			ext: "txt",
			wantFiles: []string{
				"/src/A.TXT",
				"/src/b.txt",
				"/src/c.Txt",
				"/src/sub/d.txt",
				"/src/sub/f.old.txt",
			},
			wantSize: 11,
		},
		{
			name: "uppercase_extension_argument",
			files: map[string]string{
				"/src/a.indd": "abc",
			},
			ext:       "INDD",
			wantFiles: []string{"/src/a.indd"},
			wantSize:  3,
		},
		{
			name: "directories_are_not_results",
			files: map[string]string{
				"/src/book.txt/inner.md": "x",
				"/src/real.txt":          "xy",
			},
			dirs:      []string{"/src/empty.txt"},
			ext:       "txt",
			wantFiles: []string{"/src/real.txt"},
			wantSize:  2,
		},
		{
			name: "ignore_patterns",
			files: map[string]string{
				"/src/keep.txt":           "1",
				"/src/.git/objects/x.txt": "22",
				"/src/tmp/a.txt":          "333",
				"/src/sub/skip.bak.txt":   "4444",
			},
			ext: "txt",
			opts: locate.Options{
				Ignore: []string{".git", "tmp/**", "**/*.bak.txt"},
			},
			wantFiles: []string{"/src/keep.txt"},
			wantSize:  1,
		},
		{
			name:      "missing_root",
			files:     map[string]string{"/other/a.txt": "1"},
			ext:       "txt",
			wantFiles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutils.Context(t)
			fs := afero.NewMemMapFs()
			testutils.WriteFiles(t, fs, tt.files)
			for _, d := range tt.dirs {
				require.NoError(t, fs.MkdirAll(d, 0o755))
			}

			res, err := locate.Search(ctx, fs, "/src", tt.ext, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFiles, res.Files)
			assert.Equal(t, tt.wantSize, res.TotalSize)
		})
	}
}

func TestSearchSkipsUnreadableEntries(t *testing.T) {
	ctx := testutils.Context(t)
	mfs := afero.NewMemMapFs()
	testutils.WriteFiles(t, mfs, map[string]string{
		"/src/a.txt":        "1",
		"/src/bad.txt":      "22",
		"/src/locked/c.txt": "333",
	})

	ffs := testutils.NewFaultFs(mfs)
	ffs.Fail("stat", "/src/bad.txt", syscall.EACCES)
	ffs.Fail("open", "/src/locked", syscall.EACCES)

	res, err := locate.Search(ctx, ffs, "/src", "txt", locate.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"/src/a.txt"}, res.Files)
	assert.Equal(t, uint64(1), res.TotalSize)
}

func TestSearchInvalidPattern(t *testing.T) {
	ctx := testutils.Context(t)

	_, err := locate.Search(ctx, afero.NewMemMapFs(), "/src", "txt", locate.Options{Ignore: []string{"[a-"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ignore pattern")
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(testutils.Context(t))
	cancel()

	fs := afero.NewMemMapFs()
	testutils.WriteFiles(t, fs, map[string]string{"/src/a.txt": "1"})

	_, err := locate.Search(ctx, fs, "/src", "txt", locate.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestHasExt(t *testing.T) {
	assert.True(t, locate.HasExt("/a/A.TXT", "txt"))
	assert.True(t, locate.HasExt("/a/b.txt", "TXT"))
	assert.False(t, locate.HasExt("/a/btxt", "txt"))
	assert.False(t, locate.HasExt("/a/b.txt.bak", "txt"))
}
