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

// Package testutils holds helpers shared by the package tests.
package testutils

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// Context returns a context carrying a logger that writes to the test log.
func Context(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

// WriteFiles creates every file in files (path -> content), including parents.
func WriteFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755), "creating parent of %s", path)
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644), "writing %s", path)
	}
}

// Tree returns every regular file below root with its content.
func Tree(t *testing.T, fs afero.Fs, root string) map[string]string {
	t.Helper()
	tree := map[string]string{}
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return err
		}
		tree[path] = string(data)
		return nil
	})
	require.NoError(t, err, "walking %s", root)
	return tree
}

// Names returns the sorted base names of the entries in dir.
func Names(t *testing.T, fs afero.Fs, dir string) []string {
	t.Helper()
	infos, err := afero.ReadDir(fs, dir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err, "reading %s", dir)
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	sort.Strings(names)
	return names
}

// 💥 FaultFs wraps an afero.Fs and fails selected calls on selected paths.
type FaultFs struct {
	afero.Fs

	mu     sync.Mutex
	faults map[string]error
	calls  map[string]int
}

// NewFaultFs wraps base.
func NewFaultFs(base afero.Fs) *FaultFs {
	return &FaultFs{
		Fs:     base,
		faults: map[string]error{},
		calls:  map[string]int{},
	}
}

func faultKey(op, path string) string {
	return op + " " + filepath.Clean(path)
}

// Fail makes every op ("remove", "rename", "open", "stat", "mkdir") on path return err.
// For rename the old name is matched.
func (f *FaultFs) Fail(op, path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[faultKey(op, path)] = err
}

// Clear removes every injected fault.
func (f *FaultFs) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults = map[string]error{}
}

// Calls returns how many times op was attempted on path.
func (f *FaultFs) Calls(op, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[faultKey(op, path)]
}

func (f *FaultFs) check(op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := faultKey(op, path)
	f.calls[key]++
	if err, ok := f.faults[key]; ok {
		return &os.PathError{Op: op, Path: path, Err: err}
	}
	return nil
}

func (f *FaultFs) Remove(name string) error {
	if err := f.check("remove", name); err != nil {
		return err
	}
	return f.Fs.Remove(name)
}

func (f *FaultFs) Rename(oldname, newname string) error {
	if err := f.check("rename", oldname); err != nil {
		return err
	}
	return f.Fs.Rename(oldname, newname)
}

func (f *FaultFs) MkdirAll(path string, perm os.FileMode) error {
	if err := f.check("mkdir", path); err != nil {
		return err
	}
	return f.Fs.MkdirAll(path, perm)
}

func (f *FaultFs) Open(name string) (afero.File, error) {
	if err := f.check("open", name); err != nil {
		return nil, err
	}
	return f.Fs.Open(name)
}

func (f *FaultFs) Stat(name string) (os.FileInfo, error) {
	if err := f.check("stat", name); err != nil {
		return nil, err
	}
	return f.Fs.Stat(name)
}
