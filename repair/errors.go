package repair

import "errors"

var (
	// ErrEmptyShape is returned when a Shape declares no top-level fields.
	ErrEmptyShape = errors.New("shape has no fields")

	// ErrInvalidField is returned when a Shape field has no name or an unknown kind.
	ErrInvalidField = errors.New("invalid shape field")

	// ErrUnknownAnchor is returned when the anchor is not one of the shape's fields.
	ErrUnknownAnchor = errors.New("anchor is not a shape field")

	// ErrMissingNote is returned when a Shape does not say where or what the
	// fallback diagnostic is.
	ErrMissingNote = errors.New("shape has no diagnostic note")

	// ErrNoteCollision is returned when the note field reuses a field name.
	ErrNoteCollision = errors.New("note field collides with a shape field")
)
