package ai

import (
	"strings"

	"github.com/misssam/tutor-backend/internal/model/chat"
)

// AssemblePrompt flattens the persona instruction and the full conversation
// into the single text blob the completion boundary accepts. The instruction
// comes first, then for each pair index the user turn followed by the
// assistant turn at that position, newline-joined. A trailing user turn
// without a reply yet (the question being answered) is included last.
// Identical conversation state always yields an identical prompt.
func AssemblePrompt(users, assistants []chat.Turn) string {
	length := len(users)
	if len(assistants) > length {
		length = len(assistants)
	}

	lines := make([]string, 0, len(users)+len(assistants))
	for i := 0; i < length; i++ {
		if i < len(users) {
			lines = append(lines, users[i].Text)
		}
		if i < len(assistants) {
			lines = append(lines, assistants[i].Text)
		}
	}

	var b strings.Builder
	b.WriteString(personaInstruction)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}
