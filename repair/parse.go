package repair

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SyntaxError is a strict-parse failure. Offset is the byte index of the
// offending character, or the input length when the input ended early.
type SyntaxError struct {
	Msg    string
	Offset int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Msg, e.Offset)
}

// Valid reports whether s is a complete, syntactically valid JSON document.
func Valid(s string) bool {
	return json.Valid([]byte(s))
}

// strictParse checks s and returns a *SyntaxError describing the first problem.
func strictParse(s string) error {
	if json.Valid([]byte(s)) {
		return nil
	}
	// RawMessage skips value conversion; only the syntax check runs.
	err := json.Unmarshal([]byte(s), new(json.RawMessage))
	if err == nil {
		return &SyntaxError{Msg: "invalid JSON", Offset: len(s)}
	}

	var syn *json.SyntaxError
	if !errors.As(err, &syn) {
		return &SyntaxError{Msg: err.Error(), Offset: len(s)}
	}

	// encoding/json counts the offending byte as read.
	offset := int(syn.Offset)
	if strings.HasPrefix(syn.Error(), "invalid character") && offset > 0 {
		offset--
	}
	return &SyntaxError{Msg: syn.Error(), Offset: offset}
}
