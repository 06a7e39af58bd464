package qa

import (
	"fmt"
	"strings"

	"github.com/poiesic/corpusqa/core"
)

// RefusalSentinel is the fixed string the completion must return when
// none of the supplied passages support an answer. Answer sources are
// cleared when the completion equals this string.
const RefusalSentinel = "No relevant sources found"

// CapabilityStatement is the fixed response to questions about what the
// system can do, regardless of retrieved passages.
const CapabilityStatement = "This question-answering system uses content from a corpus of instructional transcripts to provide sourced answers about the material they cover."

// separator divides question, passages, and answer inside the prompt.
// Nine equals signs, referenced as such in the instructions.
const separator = "========="

const promptInstructions = `This is a question-answering system over a corpus of long-form instructional transcripts. The documents are chapters of lesson recordings, each carrying the URL of its source.

Given a question and contents from multiple documents, create an answer to the question that references those documents as "SOURCES". Question, documents and final answer are separated by nine equals signs.

- Answer only from the supplied documents.
- If the question asks about the system's capabilities, respond with: "` + CapabilityStatement + `". That answer does not need to include sources.
- If the answer cannot be determined from the documents or from these instructions, do not answer the question. Return exactly "` + RefusalSentinel + `".
- Documents are not guaranteed to be relevant to the question.
- End the answer with a SOURCES line enumerating the Source URL of every document actually used, each exactly once.

QUESTION: How do I pick a team for a new project?
` + separator + `
Content: when you're putting a team together for a new effort start from the skills the work actually needs rather than from whoever happens to be free a small group that covers the necessary ground will outperform a larger group assembled by availability
Source: https://example.com/watch?v=abc123&t=1234s
` + separator + `
FINAL ANSWER: Choose the team by starting from the skills the work requires rather than from availability; a small group covering the necessary ground outperforms a larger one assembled by who is free.
SOURCES: https://example.com/watch?v=abc123&t=1234s

QUESTION: %s
` + separator + `
%s
` + separator + `
FINAL ANSWER:`

// buildPrompt assembles the completion prompt: each retrieved chunk's
// text and source URL verbatim, then the question, in the strict
// separator format above.
func buildPrompt(question string, chunks []core.Chunk) string {
	blocks := make([]string, len(chunks))
	for i, chunk := range chunks {
		blocks[i] = "Content: " + chunk.Text + "\nSource: " + chunk.Metadata.Source
	}
	return fmt.Sprintf(promptInstructions, question, strings.Join(blocks, "\n\n"))
}
