package ai

import "errors"

var (
	// ErrInvalidConfig indicates a Config failed validation.
	ErrInvalidConfig = errors.New("ai config")

	// ErrEmptyResume indicates there was no resume text to analyze.
	ErrEmptyResume = errors.New("resume text is empty")

	// ErrNoChoices indicates the model returned no completion.
	ErrNoChoices = errors.New("model returned no choices")
)
