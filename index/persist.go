// Copyright 2025 Poiesic Systems
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


package index

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/corpusqa/ai"
)

const (
	indexExt = ".idx"
	lockExt  = ".idx.lock"
	tmpExt   = ".idx.tmp"
)

func indexPath(dir, name string) string {
	return filepath.Join(dir, name+indexExt)
}

// Save persists the index under dir as <name>.idx. The write goes
// through a temp file and a rename, so a reader never observes a
// partial artifact. A <name>.idx.lock file serializes writers; a held
// lock yields ErrLocked.
func (ix *Index) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	lockPath := filepath.Join(dir, ix.name+lockExt)
	lock, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", ErrLocked, lockPath)
		}
		return fmt.Errorf("acquiring index lock: %w", err)
	}
	lock.Close()
	defer os.Remove(lockPath)

	tmpPath := filepath.Join(dir, ix.name+tmpExt)
	if err := os.WriteFile(tmpPath, marshalEntries(ix.entries), 0o644); err != nil {
		return fmt.Errorf("writing index artifact: %w", err)
	}
	if err := os.Rename(tmpPath, indexPath(dir, ix.name)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("publishing index artifact: %w", err)
	}

	ix.logger.Info("saved index", "dir", dir, "entries", len(ix.entries))
	return nil
}

// Load reads a previously saved index from dir. The embedder must be
// the same embedding function the index was built with; a persisted
// vector whose dimensionality disagrees with the rest fails the load.
// A missing artifact yields ErrNotFound.
func Load(dir, name string, embedder ai.Embedder) (*Index, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	data, err := os.ReadFile(indexPath(dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q in %s", ErrNotFound, name, dir)
		}
		return nil, fmt.Errorf("reading index artifact: %w", err)
	}

	entries, err := unmarshalEntries(data)
	if err != nil {
		return nil, fmt.Errorf("decoding index artifact: %w", err)
	}

	dim := 0
	for i, entry := range entries {
		if dim == 0 {
			dim = len(entry.Vector)
		}
		if len(entry.Vector) != dim {
			return nil, fmt.Errorf("%w: entry %d has dimension %d, index has %d",
				ErrDimensionMismatch, i, len(entry.Vector), dim)
		}
	}

	logger := slog.Default().With("component", "index", "index", name)
	logger.Info("loaded index", "dir", dir, "entries", len(entries), "dimension", dim)

	return &Index{
		name:     name,
		dim:      dim,
		entries:  entries,
		embedder: embedder,
		logger:   logger,
	}, nil
}
