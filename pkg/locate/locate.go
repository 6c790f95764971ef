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

// Package locate finds the files under a root that carry a given extension.
package locate

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// 🔎 Result is the outcome of a search
type Result struct {
	// Files are absolute paths in walk order (lexical within each directory).
	Files []string `json:"file_names" yaml:"file_names"`
	// TotalSize sums the sizes of Files; unreadable sizes count as 0.
	TotalSize uint64 `json:"total_size" yaml:"total_size"`
}

// 🔧 Options tunes a search
type Options struct {
	// Ignore holds doublestar globs matched against the slash separated path
	// relative to the root. Matching directories are not descended into.
	Ignore []string
}

// HasExt reports whether path ends with "."+ext, ignoring case.
func HasExt(path, ext string) bool {
	return strings.HasSuffix(strings.ToLower(path), "."+strings.ToLower(ext))
}

// 🔍 Search walks root and collects every non-directory entry whose name ends
// with "."+ext. Entries that cannot be read are skipped, never failing the scan.
func Search(ctx context.Context, fs afero.Fs, root, ext string, opts Options) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	for _, pattern := range opts.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Errorf("resolving root %s: %w", root, err)
	}

	res := &Result{Files: []string{}}

	walkErr := afero.Walk(fs, absRoot, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			return nil
		}

		if path != absRoot && isIgnored(logger, absRoot, path, opts.Ignore) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() || !HasExt(path, ext) {
			return nil
		}

		res.Files = append(res.Files, path)
		if size := info.Size(); size > 0 {
			res.TotalSize += uint64(size)
		}
		return nil
	})
	if walkErr != nil {
		return nil, errors.Errorf("walking %s: %w", absRoot, walkErr)
	}

	logger.Debug().
		Str("root", absRoot).
		Str("ext", ext).
		Int("files", len(res.Files)).
		Uint64("total_size", res.TotalSize).
		Msg("search complete")

	return res, nil
}

func isIgnored(logger *zerolog.Logger, root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			logger.Debug().Str("path", rel).Str("pattern", pattern).Msg("path ignored by pattern")
			return true
		}
	}

	return false
}
