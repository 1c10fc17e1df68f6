package prompt

import (
	"fmt"
	"strings"

	"github.com/paddockai/paddock/internal/services/chat/models"
)

const systemTemplate = `You are an AI assistant who knows everything about Formula One.
Use the below context to augment what you know about Formula One racing.
The context will provide you with the most recent page data from Wikipedia,
the official F1 website and others. If the context doesn't include the
information you need, answer based on your existing knowledge and don't
mention the source of your information or what the context does or does
not include. Format responses using markdown where applicable and don't
return images.
-------------
START CONTEXT BLOCK
%s
END OF CONTEXT BLOCK
-------------
QUESTION: %s
-------------`

// Assemble builds a provider-ready message list: exactly one synthesized
// system message carrying the persona instruction, the retrieved context
// and the restated question, followed by the original conversation in
// order. Pure function, no I/O.
func Assemble(contextBlob, question string, history []models.ChatMessage) []models.PromptMessage {
	messages := make([]models.PromptMessage, 0, len(history)+1)
	messages = append(messages, models.PromptMessage{
		Role:    "system",
		Content: fmt.Sprintf(systemTemplate, contextBlob, question),
	})

	for _, msg := range history {
		role := msg.Role
		if role == "" {
			role = "user"
		}
		messages = append(messages, models.PromptMessage{
			Role:    role,
			Content: msg.Text(),
		})
	}

	return messages
}

// Flatten renders an assembled prompt as a single text block for
// providers that take raw inputs instead of a message list.
func Flatten(messages []models.PromptMessage) string {
	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(msg.Role)
		b.WriteString(": ")
		b.WriteString(msg.Content)
	}
	return b.String()
}
