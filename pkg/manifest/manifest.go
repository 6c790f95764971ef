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

// Package manifest persists the ordered list of staged originals. Line i of the
// manifest file names the original path of the artifact staged as index i.
package manifest

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/restage/pkg/fileops"
	"gitlab.com/tozd/go/errors"
)

// 📄 Entry pairs a staging index with the original absolute path
type Entry struct {
	Index int    `json:"index"`
	Path  string `json:"path"`
}

// Paths returns the original paths in index order.
func Paths(entries []Entry) []string {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths
}

// 📝 Write replaces the manifest at path with paths. The previous manifest is
// never appended to or partially overwritten.
func Write(ctx context.Context, fs afero.Fs, path string, paths []string) error {
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("entries", len(paths)).Msg("writing manifest")

	for i, p := range paths {
		if strings.ContainsAny(p, "\r\n") {
			return errors.Errorf("entry %d: path %q contains a line break", i, p)
		}
	}

	if err := fileops.WriteFileAtomic(fs, path, []byte(strings.Join(paths, "\n"))); err != nil {
		return errors.Errorf("writing manifest: %w", err)
	}
	return nil
}

// 📖 Read loads the manifest at path. A missing manifest is an empty one.
func Read(ctx context.Context, fs afero.Fs, path string) ([]Entry, error) {
	data, err := afero.ReadFile(fs, path)
	if os.IsNotExist(err) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no manifest")
		return []Entry{}, nil
	}
	if err != nil {
		return nil, errors.Errorf("reading manifest: %w", err)
	}

	return Parse(string(data)), nil
}

// Parse splits manifest content into entries. A single trailing newline is
// ignored; blank lines in the middle keep their index.
func Parse(content string) []Entry {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return []Entry{}
	}

	lines := strings.Split(content, "\n")
	entries := make([]Entry, len(lines))
	for i, line := range lines {
		entries[i] = Entry{Index: i, Path: strings.TrimSuffix(line, "\r")}
	}
	return entries
}

// 🗑️ Remove deletes the manifest if present.
func Remove(ctx context.Context, fs afero.Fs, path string) error {
	removed, err := fileops.RemoveIfExists(fs, path)
	if err != nil {
		return errors.Errorf("removing manifest: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Bool("removed", removed).Msg("removed manifest")
	return nil
}
