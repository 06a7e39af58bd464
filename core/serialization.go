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


package core

import (
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
)

// MUS serializers for the persisted domain types. Assembled from the
// ord/raw combinators; strings are length-prefixed, IDs fixed-width.
var (
	IDMUS          mus.Serializer[ID]          = idMUS{}
	DocMetadataMUS mus.Serializer[DocMetadata] = docMetadataMUS{}
	DocumentMUS    mus.Serializer[Document]    = documentMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return raw.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := raw.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return raw.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return raw.Uint64.Skip(bs)
}

type docMetadataMUS struct{}

func (docMetadataMUS) Marshal(v DocMetadata, bs []byte) (n int) {
	n = ord.String.Marshal(v.Source, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.ChapterTitle, bs[n:])
	n += ord.String.Marshal(v.FullTitle, bs[n:])
	return n
}

func (docMetadataMUS) Unmarshal(bs []byte) (v DocMetadata, n int, err error) {
	var n1 int
	if v.Source, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.ChapterTitle, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.FullTitle, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (docMetadataMUS) Size(v DocMetadata) (size int) {
	size = ord.String.Size(v.Source)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.ChapterTitle)
	size += ord.String.Size(v.FullTitle)
	return size
}

func (docMetadataMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 4; i++ {
		if n1, err = ord.String.Skip(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	return
}

type documentMUS struct{}

func (documentMUS) Marshal(v Document, bs []byte) (n int) {
	n = IDMUS.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.Text, bs[n:])
	n += DocMetadataMUS.Marshal(v.Metadata, bs[n:])
	return n
}

func (documentMUS) Unmarshal(bs []byte) (v Document, n int, err error) {
	var n1 int
	if v.ID, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Metadata, n1, err = DocMetadataMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (documentMUS) Size(v Document) (size int) {
	size = IDMUS.Size(v.ID)
	size += ord.String.Size(v.Text)
	size += DocMetadataMUS.Size(v.Metadata)
	return size
}

func (documentMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = IDMUS.Skip(bs); err != nil {
		return
	}
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	if n1, err = DocMetadataMUS.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}
