// Package prompt assembles the single text payload sent to the generative
// model from the ranked history, the retrieved document context, the selected
// passage and the question.
package prompt

import (
	"strings"

	"github.com/synerge/synergereader/relevance"
)

// instruction is the fixed trailing request appended to every prompt.
const instruction = "Please provide a comprehensive answer based on the context provided."

// section is one optional labeled part of the prompt. Sections whose body is
// empty are omitted entirely, label included.
type section struct {
	label string
	body  string
}

// Compose renders the prompt. Section order is fixed: relevant history,
// document context, selected text, question, then the trailing instruction.
// Present sections are separated by blank lines. The composer never reorders
// or truncates its inputs; fitting a model's context window is the caller's
// concern.
func Compose(q relevance.Query, contextChunks []string, ranked []relevance.RankedRecord) string {
	sections := []section{
		{label: "Relevant History", body: renderHistory(ranked)},
		{label: "Document Context", body: strings.Join(contextChunks, "\n\n")},
		{label: "Selected Text", body: q.SelectedText},
		{label: "Question", body: q.Question},
	}
	var parts []string
	for _, s := range sections {
		if s.body == "" {
			continue
		}
		parts = append(parts, s.label+":\n"+s.body)
	}
	return strings.Join(parts, "\n\n") + "\n\n" + instruction
}

func renderHistory(ranked []relevance.RankedRecord) string {
	var sb strings.Builder
	for i, r := range ranked {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Previous Q: ")
		sb.WriteString(r.Question)
		sb.WriteString("\nPrevious A: ")
		sb.WriteString(r.Answer)
	}
	return sb.String()
}
