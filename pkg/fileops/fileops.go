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

// Package fileops holds the crash-safe file primitives shared by the staging,
// restore and move operations. Every function works against an afero.Fs.
package fileops

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// 💥 IOError reports a failed filesystem call and the path it was made on
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func ioError(op, path string, err error) error {
	return errors.WithStack(&IOError{Op: op, Path: path, Err: err})
}

// 🔍 Exists reports whether path exists. Only a definite "not exist" is false.
func Exists(fs afero.Fs, path string) (bool, error) {
	_, err := fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, ioError("stat", path, err)
}

// 📁 MkdirAll creates dir and any missing parents
func MkdirAll(fs afero.Fs, dir string) error {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return ioError("mkdir", dir, err)
	}
	return nil
}

// 📋 CopyFile copies src to dst through a temporary sibling of dst that is
// renamed into place once fully written, so dst is either absent or complete.
// An existing dst is replaced. The parent of dst must exist.
func CopyFile(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return ioError("open", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return ioError("stat", src, err)
	}

	tmp, err := afero.TempFile(fs, filepath.Dir(dst), "."+filepath.Base(dst)+".restage-*")
	if err != nil {
		return ioError("create", dst, err)
	}
	tmpPath := tmp.Name()

	if err := writeAndClose(tmp, in); err != nil {
		fs.Remove(tmpPath)
		return ioError("copy", src, err)
	}

	if err := fs.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		fs.Remove(tmpPath)
		return ioError("chmod", tmpPath, err)
	}

	if err := fs.Rename(tmpPath, dst); err != nil {
		fs.Remove(tmpPath)
		return ioError("rename", dst, err)
	}

	return nil
}

func writeAndClose(f afero.File, r io.Reader) error {
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// 💾 WriteFileAtomic replaces path with content in a single rename
func WriteFileAtomic(fs afero.Fs, path string, content []byte) error {
	tempPath := path + ".tmp"

	if err := afero.WriteFile(fs, tempPath, content, 0o644); err != nil {
		return ioError("write", tempPath, err)
	}

	if err := fs.Rename(tempPath, path); err != nil {
		fs.Remove(tempPath)
		return ioError("rename", path, err)
	}

	return nil
}

// 🗑️ RemoveIfExists deletes path, treating an already missing file as done
func RemoveIfExists(fs afero.Fs, path string) (bool, error) {
	err := fs.Remove(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, ioError("remove", path, err)
}

// 🔁 RemoveWithRetry deletes path, retrying up to attempts times with a
// linear backoff. The last failure is returned.
func RemoveWithRetry(ctx context.Context, fs afero.Fs, path string, attempts int, backoff time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if _, err = RemoveIfExists(fs, path); err == nil {
			return nil
		}

		zerolog.Ctx(ctx).Debug().Err(err).Str("path", path).Int("attempt", attempt).Msg("removing file failed")

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return errors.Errorf("removing %s: %w", path, ctx.Err())
		case <-time.After(time.Duration(attempt) * backoff):
		}
	}

	return err
}
