// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"text/template"
)

// systemPrompt instructs the model to answer with a JSON object holding a
// "cards" array. The worked examples pin the expected shape for single-fact
// and multi-fact notes.
const systemPrompt = `You are a flashcard generation bot. Given a piece of text, you will generate a flashcard as a JSON object with the following format:
{
    "cards": [
        {
            "front": "Front of the flashcard",
            "back": "Back of the flashcard"
        }
    ]
}

For example, given the text:
The capital of France is Paris.

You would generate the flashcard:
{
    "cards": [
        {
            "front": "What is the capital of France?",
            "back": "Paris"
        }
    ]
}

If multiple flashcards can be generated from the text, you should generate all of them.
For example, given the text:
The capital of France is Paris. The capital of Spain is Madrid.

You would generate the flashcards:
{
    "cards": [
        {
            "front": "What is the capital of France?",
            "back": "Paris"
        },
        {
            "front": "What is the capital of Spain?",
            "back": "Madrid"
        }
    ]
}

NB: Return a valid JSON object.`

// userPromptTmpl wraps the literal note content with the generation
// instruction and the valid-JSON reminder.
var userPromptTmpl = template.Must(template.New("user").Parse(`Create a flashcard from the following content:
{{.Content}}
NB: Return a valid JSON object.`))

// renderUserPrompt executes the user prompt template with the note content.
func renderUserPrompt(content string) (string, error) {
	var buf bytes.Buffer
	if err := userPromptTmpl.Execute(&buf, struct{ Content string }{Content: content}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
