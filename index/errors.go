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

import "errors"

var (
	// ErrNotFound indicates that no persisted index exists under the
	// requested path and name. Surfaced to the caller; the index is
	// never rebuilt implicitly.
	ErrNotFound = errors.New("index not found")

	// ErrDimensionMismatch indicates embedding dimensionality differs
	// between index entries and a query, or between entries of one
	// index. This is a fatal configuration error, never a silent
	// truncation.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrLengthMismatch indicates texts and metadatas of different
	// lengths were supplied at build time.
	ErrLengthMismatch = errors.New("texts and metadatas length mismatch")

	// ErrInvalidK indicates a non-positive k was requested.
	ErrInvalidK = errors.New("k must be at least 1")

	// ErrLocked indicates another writer holds the index name. Builds
	// against one name are single-writer at a time.
	ErrLocked = errors.New("index is locked by another writer")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")
)
