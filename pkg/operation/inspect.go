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
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/restage/pkg/fileops"
	"github.com/walteh/restage/pkg/manifest"
	"github.com/walteh/restage/pkg/session"
	"gitlab.com/tozd/go/errors"
)

// 🏷️ State describes where one manifest entry is in the round trip
type State string

const (
	StateStaged    State = "staged"    // Waiting on the converter
	StateConverted State = "converted" // Ready to restore
	StateConflict  State = "conflict"  // Ready, but restore will keep the existing destination
	StateRestored  State = "restored"  // Nothing staged, destination present
	StateMissing   State = "missing"   // Nothing staged and no destination
)

// 📋 EntryStatus is the inspected state of one manifest entry
type EntryStatus struct {
	manifest.Entry
	Destination  string `json:"destination"`
	State        State  `json:"state"`
	ArtifactSize int64  `json:"artifact_size"` // Size of the staged or converted artifact
}

// 🔍 Inspect reports the state of every manifest entry without changing anything
func Inspect(ctx context.Context, sess *session.Session) ([]EntryStatus, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("manifest", sess.ManifestPath).Msg("inspecting scratch directory")

	entries, err := manifest.Read(ctx, sess.Fs, sess.ManifestPath)
	if err != nil {
		return nil, errors.Errorf("reading manifest: %w", err)
	}

	out := make([]EntryStatus, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return out, errors.Errorf("inspecting: %w", err)
		}

		st, err := inspectEntry(sess, entry)
		if err != nil {
			return out, errors.Errorf("inspecting entry %d: %w", entry.Index, err)
		}
		out = append(out, st)
	}

	return out, nil
}

func inspectEntry(sess *session.Session, entry manifest.Entry) (EntryStatus, error) {
	st := EntryStatus{
		Entry:       entry,
		Destination: RestorePath(entry.Path, sess.InExt, sess.OutExt),
	}

	converted, convertedSize, err := statArtifact(sess, sess.StagedPath(entry.Index, sess.OutExt))
	if err != nil {
		return st, err
	}
	leftover, leftoverSize, err := statArtifact(sess, sess.StagedPath(entry.Index, sess.InExt))
	if err != nil {
		return st, err
	}

	destination := false
	if entry.Path != "" {
		if destination, err = fileops.Exists(sess.Fs, st.Destination); err != nil {
			return st, err
		}
	}

	switch {
	case converted && destination:
		st.State, st.ArtifactSize = StateConflict, convertedSize
	case converted:
		st.State, st.ArtifactSize = StateConverted, convertedSize
	case leftover:
		st.State, st.ArtifactSize = StateStaged, leftoverSize
	case destination:
		st.State = StateRestored
	default:
		st.State = StateMissing
	}

	return st, nil
}

func statArtifact(sess *session.Session, path string) (bool, int64, error) {
	info, err := sess.Fs.Stat(path)
	if os.IsNotExist(err) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, errors.Errorf("stat %s: %w", path, err)
	}
	return true, info.Size(), nil
}
