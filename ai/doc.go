// Package ai defines the interfaces for external AI services used by the
// retrieval pipeline: text embedding and prompt completion.
//
// Implementations live in subpackages: openai provides clients for
// OpenAI-compatible APIs, mock provides deterministic test doubles.
// Both embedding and completion calls are blocking I/O boundaries;
// callers must tolerate latency and transient failure at each one.
package ai
