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


package mock

import "context"

// MockCompleter is a test double for ai.Completer.
// It records every prompt it receives and returns a canned response.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	// If nil, Response is returned for every prompt.
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	// Response is the canned completion returned when CompleteFunc is nil.
	Response string

	prompts []string
}

// NewMockCompleter creates a mock completer returning the given canned response.
func NewMockCompleter(response string) *MockCompleter {
	return &MockCompleter{Response: response}
}

// Complete records the prompt and returns the configured response.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return m.Response, nil
}

// Prompts returns all prompts received so far, in call order.
func (m *MockCompleter) Prompts() []string {
	return m.prompts
}

// LastPrompt returns the most recent prompt, or "" if none were received.
func (m *MockCompleter) LastPrompt() string {
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// Reset clears recorded prompts and injected behavior.
func (m *MockCompleter) Reset() {
	m.prompts = nil
	m.CompleteFunc = nil
}
