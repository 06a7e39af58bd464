// Package openai implements the ai package interfaces against
// OpenAI-compatible HTTP APIs via langchaingo. Both the hosted OpenAI
// service and local servers (Ollama, LocalAI, vLLM) are supported; the
// latter accept any token.
package openai
