package rag

import (
	"fmt"
	"strings"

	"github.com/akolanti/DocQueryAPI/internal/domain/docmodel"
)

const groundingInstruction = `You are a careful assistant answering questions about uploaded PDF documents.
Answer using ONLY the numbered context passages below. If the passages do not contain the answer, say that you could not find it in the documents.
When you use a passage, mention its source filename and page number naturally in your answer.`

// BuildGroundingPrompt assembles the single completion request: instruction
// header, one labelled block per retrieved chunk, then the question.
func BuildGroundingPrompt(question string, sources []docmodel.RetrievedSource) string {
	var b strings.Builder

	b.WriteString(groundingInstruction)
	b.WriteString("\n\nContext passages:\n")

	for i, src := range sources {
		fmt.Fprintf(&b, "\n[%d] chunk %s | page %d | source %s\n%s\n",
			i+1, src.ChunkId, src.PageNumber, src.Filename, src.Text)
	}

	fmt.Fprintf(&b, "\nQuestion: %s\n", question)
	return b.String()
}
