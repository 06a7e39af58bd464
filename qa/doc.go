// Package qa synthesizes sourced answers to natural-language questions
// over a vector index of transcript chunks. Retrieval supplies the
// evidence, a strict-format prompt carries it verbatim to the
// completion service, and the returned Answer pairs the completion
// text with the provenance URLs of the retrieved chunks.
package qa
