package triage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is returned when the incident text is empty after trimming.
// It is the only error the engine produces; callers own the user messaging.
var ErrInvalidInput = errors.New("invalid input")

// Normalize trims the raw incident text and rejects empty input.
func Normalize(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Errorf("%w: incident text is empty", ErrInvalidInput)
	}
	return text, nil
}
