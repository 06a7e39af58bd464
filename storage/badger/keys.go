package badger

import (
	"encoding/binary"
	"fmt"
)

// Key prefixes for different data types
const (
	documentPrefix = "docrec"
	documentPosSeq = "docrecseq"
)

// makeDocumentKey generates a key for a document at an insertion
// position within a collection. Positions are written in BigEndian
// order so lexicographic iteration yields insertion order.
func makeDocumentKey(collection string, position uint64) []byte {
	prefix := makeCollectionPrefix(collection)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], position)
	return buf
}

// makeCollectionPrefix generates the key prefix shared by all documents
// of one collection.
// Format: prefix:collection:
func makeCollectionPrefix(collection string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", documentPrefix, collection))
}

// documentSeqName generates the name of the insertion-position sequence
// for a collection.
func documentSeqName(collection string) string {
	return fmt.Sprintf("%s:%s", documentPosSeq, collection)
}
