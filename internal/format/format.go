// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format renders flashcards into plugin-specific deck text.
package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Lawrence-Godfrey/flashcard-generator/pkg/logger"
	"github.com/Lawrence-Godfrey/flashcard-generator/pkg/types"
)

// ErrUnsupportedFormat is returned for a style Render does not recognize.
var ErrUnsupportedFormat = errors.New("unsupported flashcard format")

// ParseStyle maps a style name from the CLI or config onto a CardStyle.
func ParseStyle(name string) (types.CardStyle, error) {
	switch types.CardStyle(name) {
	case types.StyleObsidianSpacedRepetition:
		return types.StyleObsidianSpacedRepetition, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Render produces the text form of cards in the configured style. An
// unknown style yields ErrUnsupportedFormat and no output.
func Render(cards []types.Flashcard, cfg types.FormatConfig, log *logger.Logger) (string, error) {
	switch cfg.Style {
	case types.StyleObsidianSpacedRepetition:
		return renderObsidian(cards, cfg.IncludeTag, log), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, cfg.Style)
	}
}

// renderObsidian emits the Obsidian Spaced Repetition deck syntax: an
// optional #flashcards tag line, then a front / ? / back block per card,
// each followed by a blank line. Cards missing either side are dropped
// with a debug log, never an error.
func renderObsidian(cards []types.Flashcard, includeTag bool, log *logger.Logger) string {
	var b strings.Builder

	if includeTag {
		b.WriteString("#flashcards\n\n")
	}

	for _, card := range cards {
		if !card.Complete() {
			log.Debug("skipping invalid flashcard: %+v", card)
			continue
		}
		fmt.Fprintf(&b, "%s\n?\n%s\n\n", card.Front, card.Back)
	}

	return b.String()
}
