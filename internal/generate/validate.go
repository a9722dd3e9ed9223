// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import "fmt"

// ValidateCards shape-checks a decoded cards payload: it must be a list of
// objects, each carrying string "front" and "back" values. The first broken
// constraint is reported as an ErrInvalidCards wrap. Presence and type are
// checked here; empty strings pass and are dropped later by the formatter.
func ValidateCards(cards any) error {
	list, ok := cards.([]any)
	if !ok {
		return fmt.Errorf("%w: flashcards must be a list", ErrInvalidCards)
	}

	for i, elem := range list {
		record, ok := elem.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: card %d: each flashcard must be a JSON object", ErrInvalidCards, i)
		}

		front, hasFront := record["front"]
		back, hasBack := record["back"]
		if !hasFront || !hasBack {
			return fmt.Errorf("%w: card %d: each flashcard must have a 'front' and 'back' key", ErrInvalidCards, i)
		}

		if _, ok := front.(string); !ok {
			return fmt.Errorf("%w: card %d: the 'front' and 'back' values must be strings", ErrInvalidCards, i)
		}
		if _, ok := back.(string); !ok {
			return fmt.Errorf("%w: card %d: the 'front' and 'back' values must be strings", ErrInvalidCards, i)
		}
	}

	return nil
}
