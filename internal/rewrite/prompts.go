package rewrite

import (
	"fmt"
	"strings"
)

const systemPromptBase = `You are a careful document editor. You receive a document and an
editing instruction, and you reply with a complete rewrite of the document.

Rules:
- Return the ENTIRE document, not just the changed parts.
- Preserve content the instruction does not touch, byte for byte where possible.
- Do not add commentary, explanations, or notes outside the required format.

Reply format, exactly:

Summary: <one line describing the change set>
` + "```markdown" + `
<the complete rewritten document>
` + "```"

// buildSystemPrompt appends the user's standing style guide, if any.
func buildSystemPrompt(styleGuide string) string {
	if strings.TrimSpace(styleGuide) == "" {
		return systemPromptBase
	}
	return systemPromptBase + "\n\nHouse style, always in effect:\n" + styleGuide
}

// buildUserMessage packages the document and the instruction.
func buildUserMessage(content, instruction string) string {
	return fmt.Sprintf("Instruction: %s\n\nDocument:\n```markdown\n%s\n```", instruction, content)
}
