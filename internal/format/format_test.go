// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"errors"
	"strings"
	"testing"

	"github.com/Lawrence-Godfrey/flashcard-generator/pkg/logger"
	"github.com/Lawrence-Godfrey/flashcard-generator/pkg/types"
)

func obsidianConfig(includeTag bool) types.FormatConfig {
	return types.FormatConfig{
		Style:      types.StyleObsidianSpacedRepetition,
		IncludeTag: includeTag,
	}
}

func verboseLogger(buf *strings.Builder) *logger.Logger {
	l := logger.New(logger.WithOutput(buf), logger.WithFlags(0))
	l.SetVerbose(true)
	return l
}

func TestRenderObsidianGolden(t *testing.T) {
	cards := []types.Flashcard{
		{Front: "Capital of France?", Back: "Paris"},
	}

	var buf strings.Builder
	got, err := Render(cards, obsidianConfig(true), verboseLogger(&buf))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "#flashcards\n\nCapital of France?\n?\nParis\n\n"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderTagPlacement(t *testing.T) {
	cards := []types.Flashcard{
		{Front: "Q1", Back: "A1"},
		{Front: "Q2", Back: "A2"},
	}

	var buf strings.Builder
	withTag, err := Render(cards, obsidianConfig(true), verboseLogger(&buf))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(withTag, "#flashcards\n\n") {
		t.Errorf("tagged output should start with the tag line: %q", withTag)
	}

	withoutTag, err := Render(cards, obsidianConfig(false), verboseLogger(&buf))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(withoutTag, "#flashcards") {
		t.Errorf("untagged output should not contain the tag: %q", withoutTag)
	}
	if !strings.HasPrefix(withoutTag, "Q1\n?\nA1\n\n") {
		t.Errorf("untagged output should start with the first card: %q", withoutTag)
	}
}

func TestRenderSkipsIncompleteCards(t *testing.T) {
	cards := []types.Flashcard{
		{Front: "Q1", Back: "A1"},
		{Front: "", Back: "orphan answer"},
		{Front: "orphan question", Back: ""},
		{Front: "Q2", Back: "A2"},
	}

	var buf strings.Builder
	got, err := Render(cards, obsidianConfig(false), verboseLogger(&buf))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "Q1\n?\nA1\n\nQ2\n?\nA2\n\n"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
	if !strings.Contains(buf.String(), "skipping invalid flashcard") {
		t.Errorf("skipped cards should be logged: %q", buf.String())
	}
}

func TestRenderEmptySet(t *testing.T) {
	var buf strings.Builder

	got, err := Render(nil, obsidianConfig(false), verboseLogger(&buf))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "" {
		t.Errorf("empty set without tag should render empty, got %q", got)
	}

	got, err = Render(nil, obsidianConfig(true), verboseLogger(&buf))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "#flashcards\n\n" {
		t.Errorf("empty set with tag should render just the tag, got %q", got)
	}
}

func TestRenderUnsupportedStyle(t *testing.T) {
	var buf strings.Builder
	cfg := types.FormatConfig{Style: "anki-tsv", IncludeTag: true}

	got, err := Render([]types.Flashcard{{Front: "Q", Back: "A"}}, cfg, verboseLogger(&buf))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
	if got != "" {
		t.Errorf("unsupported style should produce no output, got %q", got)
	}
}

func TestParseStyle(t *testing.T) {
	style, err := ParseStyle("obsidian-spaced-repetition")
	if err != nil {
		t.Fatalf("ParseStyle: %v", err)
	}
	if style != types.StyleObsidianSpacedRepetition {
		t.Errorf("style = %q", style)
	}

	_, err = ParseStyle("markdown-table")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}
