// Package mock provides deterministic test doubles for the ai package
// interfaces. The mock embedder derives vectors from an FNV hash of the
// input text, so tests get stable similarity orderings without any
// network access. The mock completer records prompts and replays a
// canned response.
package mock
