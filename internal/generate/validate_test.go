// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// decodePayload unmarshals raw JSON into the dynamic shape ValidateCards
// inspects, the same way the generator decodes a model reply.
func decodePayload(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	return v
}

func TestValidateCards(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		errMsg  string // empty means valid
	}{
		{
			name:    "valid cards",
			payload: `[{"front":"Capital of France?","back":"Paris"},{"front":"Capital of Spain?","back":"Madrid"}]`,
		},
		{
			name:    "empty list is valid",
			payload: `[]`,
		},
		{
			name:    "empty strings pass the shape check",
			payload: `[{"front":"","back":""}]`,
		},
		{
			name:    "object instead of list",
			payload: `{"front":"Capital of France?","back":"Paris"}`,
			errMsg:  "flashcards must be a list",
		},
		{
			name:    "scalar instead of list",
			payload: `"Paris"`,
			errMsg:  "flashcards must be a list",
		},
		{
			name:    "null instead of list",
			payload: `null`,
			errMsg:  "flashcards must be a list",
		},
		{
			name:    "non-object element",
			payload: `[{"front":"q","back":"a"},"not a card"]`,
			errMsg:  "each flashcard must be a JSON object",
		},
		{
			name:    "missing back key",
			payload: `[{"front":"Capital of France?"}]`,
			errMsg:  "each flashcard must have a 'front' and 'back' key",
		},
		{
			name:    "missing front key",
			payload: `[{"back":"Paris"}]`,
			errMsg:  "each flashcard must have a 'front' and 'back' key",
		},
		{
			name:    "numeric front",
			payload: `[{"front":42,"back":"Paris"}]`,
			errMsg:  "the 'front' and 'back' values must be strings",
		},
		{
			name:    "boolean back",
			payload: `[{"front":"Capital of France?","back":true}]`,
			errMsg:  "the 'front' and 'back' values must be strings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCards(decodePayload(t, tt.payload))
			if tt.errMsg == "" {
				if err != nil {
					t.Fatalf("ValidateCards: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidCards) {
				t.Errorf("err = %v, want ErrInvalidCards", err)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("err = %q, want it to contain %q", err.Error(), tt.errMsg)
			}
		})
	}
}
