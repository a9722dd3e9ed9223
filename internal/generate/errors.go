// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import "errors"

// Sentinel errors for the generation stage. Callers match with errors.Is;
// the wrapped message names the specific cause.
var (
	// ErrInvalidConfig is returned when the generator configuration is
	// unusable (missing model or API key).
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrGeneration is returned when the completion call fails or the
	// reply is not the promised JSON envelope.
	ErrGeneration = errors.New("card generation failed")

	// ErrInvalidCards is returned when the decoded cards payload has the
	// wrong shape.
	ErrInvalidCards = errors.New("invalid flashcards")
)
