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


package splitter

import "errors"

var (
	// ErrInvalidChunkSize is returned when the chunk token budget is not positive.
	ErrInvalidChunkSize = errors.New("chunk size must be positive")

	// ErrInvalidChunkOverlap is returned when the overlap token count is negative.
	ErrInvalidChunkOverlap = errors.New("chunk overlap cannot be negative")

	// ErrOverlapExceedsSize is returned when the overlap is not smaller
	// than the chunk size; splitting could never terminate.
	ErrOverlapExceedsSize = errors.New("chunk overlap must be smaller than chunk size")
)
