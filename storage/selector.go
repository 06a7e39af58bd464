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


package storage

import "strings"

// DefaultCollection is the collection used when a selector names none.
const DefaultCollection = "corpus"

// Collection is a resolved handle onto one named collection of
// documents. Handles are cheap values; resolving a name twice yields
// equal handles.
type Collection struct {
	name string
}

// Name returns the collection name.
func (c Collection) Name() string {
	return c.name
}

// Selector designates a collection either by name or by an already
// resolved handle. The zero Selector resolves to DefaultCollection.
// Resolution happens once, at the storage boundary.
type Selector struct {
	name   string
	handle *Collection
}

// ByName selects a collection by its name.
func ByName(name string) Selector {
	return Selector{name: name}
}

// ByHandle selects a collection through a resolved handle.
func ByHandle(c Collection) Selector {
	return Selector{handle: &c}
}

// Resolve turns the selector into a collection handle.
func (s Selector) Resolve() (Collection, error) {
	if s.handle != nil {
		return *s.handle, nil
	}
	name := strings.TrimSpace(s.name)
	if name == "" {
		name = DefaultCollection
	}
	if strings.Contains(name, keySeparator) {
		return Collection{}, ErrInvalidCollection
	}
	return Collection{name: name}, nil
}

// keySeparator is reserved for storage key construction and therefore
// disallowed in collection names.
const keySeparator = ":"
