package index

import (
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"

	"github.com/poiesic/corpusqa/core"
)

// Persisted format: a MUS-encoded slice of entries. Vectors use raw
// fixed-width float32 encoding; strings use the ord length-prefixed
// encoding.
var (
	vectorMUS  = ord.NewSliceSer[float32](raw.Float32)
	entriesMUS = ord.NewSliceSer[Entry](entryMUS{})
)

// entryMUS serializes one index Entry.
type entryMUS struct{}

var _ mus.Serializer[Entry] = entryMUS{}

func (entryMUS) Marshal(v Entry, bs []byte) (n int) {
	n = vectorMUS.Marshal(v.Vector, bs)
	n += ord.String.Marshal(v.Text, bs[n:])
	n += core.DocMetadataMUS.Marshal(v.Metadata, bs[n:])
	return n
}

func (entryMUS) Unmarshal(bs []byte) (v Entry, n int, err error) {
	var n1 int
	if v.Vector, n, err = vectorMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Metadata, n1, err = core.DocMetadataMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (entryMUS) Size(v Entry) (size int) {
	size = vectorMUS.Size(v.Vector)
	size += ord.String.Size(v.Text)
	size += core.DocMetadataMUS.Size(v.Metadata)
	return size
}

func (entryMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = vectorMUS.Skip(bs); err != nil {
		return
	}
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	if n1, err = core.DocMetadataMUS.Skip(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

// marshalEntries serializes index entries to bytes.
func marshalEntries(entries []Entry) []byte {
	buf := make([]byte, entriesMUS.Size(entries))
	entriesMUS.Marshal(entries, buf)
	return buf
}

// unmarshalEntries deserializes index entries from bytes.
func unmarshalEntries(data []byte) ([]Entry, error) {
	entries, _, err := entriesMUS.Unmarshal(data)
	return entries, err
}
