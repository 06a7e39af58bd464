// Package etl extracts chaptered documents from raw transcript sources.
//
// The extraction pipeline has two fan-out stages, both driven by the
// Orchestrator over a shared worker pool:
//   - container identifiers are expanded into source items (ListAll)
//   - source items are extracted into per-chapter documents (ExtractAll)
//
// Each item is retried with exponential backoff; an item that exhausts
// its retries is dropped rather than failing the batch, and the dropped
// count is reported to the caller. Flattened results preserve submission
// order so downstream processing is deterministic.
package etl
