// Package generate turns note content into flashcards by delegating to a
// chat-completion API and decoding the structured reply.
package generate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Lawrence-Godfrey/flashcard-generator/pkg/logger"
	"github.com/Lawrence-Godfrey/flashcard-generator/pkg/types"
)

// Backend abstracts the chat-completion API so tests can supply a mock.
// Implementations send one system and one user message and return the
// completion text with the provider's reported token usage.
type Backend interface {
	Complete(ctx context.Context, system, user string) (Completion, error)
}

// Completion is the raw result of one chat-completion call.
type Completion struct {
	// Text is the completion body. The prompt constrains it to a JSON
	// object carrying a "cards" array.
	Text string

	// TotalTokens is the token count the provider reported for the call.
	TotalTokens int
}

// Result holds the cards decoded from one completion.
type Result struct {
	Cards  []types.Flashcard
	Tokens int
}

// cardsEnvelope is the JSON object the prompt instructs the model to return.
type cardsEnvelope struct {
	Cards json.RawMessage `json:"cards"`
}

// GenerateCards sends note content to the backend and decodes the reply
// into flashcards. The decoded payload is shape-checked before it is
// returned: a reply that is not the promised envelope fails with
// ErrGeneration, a cards value of the wrong shape with ErrInvalidCards.
// Card order is the model's output order. Token usage is reported for
// observability only; it drives no control flow.
func GenerateCards(ctx context.Context, backend Backend, content string, log *logger.Logger) (Result, error) {
	user, err := renderUserPrompt(content)
	if err != nil {
		return Result{}, fmt.Errorf("%w: rendering prompt: %v", ErrGeneration, err)
	}

	completion, err := backend.Complete(ctx, systemPrompt, user)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	log.Trace("model reply: %s", completion.Text)

	var envelope cardsEnvelope
	if err := json.Unmarshal([]byte(completion.Text), &envelope); err != nil {
		return Result{}, fmt.Errorf("%w: reply is not valid JSON: %v", ErrGeneration, err)
	}
	if envelope.Cards == nil {
		return Result{}, fmt.Errorf("%w: reply has no %q field", ErrGeneration, "cards")
	}

	var payload any
	if err := json.Unmarshal(envelope.Cards, &payload); err != nil {
		return Result{}, fmt.Errorf("%w: decoding cards: %v", ErrGeneration, err)
	}
	if err := ValidateCards(payload); err != nil {
		return Result{}, err
	}

	var cards []types.Flashcard
	if err := json.Unmarshal(envelope.Cards, &cards); err != nil {
		return Result{}, fmt.Errorf("%w: decoding cards: %v", ErrGeneration, err)
	}

	log.Debug("generated flashcards: %+v", cards)
	log.Info("Generated %d flashcards. Used %d tokens.", len(cards), completion.TotalTokens)

	return Result{Cards: cards, Tokens: completion.TotalTokens}, nil
}
