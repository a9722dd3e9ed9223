// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the flashcard pipeline.
package types

// Flashcard holds one question-answer pair produced by the model.
// Cards keep the order the model emitted them in; that order survives
// formatting unchanged.
type Flashcard struct {
	// Front is the question side of the card.
	Front string `json:"front" yaml:"front"`

	// Back is the answer side of the card.
	Back string `json:"back" yaml:"back"`
}

// Complete reports whether both sides of the card are non-empty. The
// formatter drops incomplete cards instead of failing on them.
func (f Flashcard) Complete() bool {
	return f.Front != "" && f.Back != ""
}
