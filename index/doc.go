// Package index provides an in-memory vector index over embedded text
// chunks, with nearest-neighbor search and single-file persistence.
//
// An index is built once from chunk texts and their metadata, is
// immutable afterwards, and may be shared freely across goroutines.
// Search embeds the query with the same embedding function used at
// build time and ranks entries by squared Euclidean distance.
package index
