// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package repair

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind is the container type of a top-level field.
type Kind int

const (
	// Object fields fall back to {}.
	Object Kind = iota
	// Array fields fall back to [].
	Array
)

func (k Kind) empty() string {
	if k == Array {
		return "[]"
	}
	return "{}"
}

// Field is a required top-level key of the expected document.
type Field struct {
	Name string
	Kind Kind
}

// Shape describes the document the model was asked to produce. It drives
// the profile salvage stage and the fallback skeleton.
type Shape struct {
	// Fields are the required top-level keys in the order the model emits them.
	Fields []Field

	// Anchor is the field most likely to be complete in a truncated response.
	// The profile stage keeps this section and drops the rest. Empty disables it.
	Anchor string

	// NoteField and NoteList locate the diagnostic: the skeleton carries
	// {NoteField: {NoteList: [Note]}} so callers can detect a failed recovery.
	NoteField string
	NoteList  string
	Note      string
}

// DefaultShape returns the career analysis document shape.
func DefaultShape() Shape {
	return Shape{
		Fields: []Field{
			{Name: "candidateProfile", Kind: Object},
			{Name: "jobRecommendations", Kind: Array},
			{Name: "overallEvaluation", Kind: Object},
		},
		Anchor:    "candidateProfile",
		NoteField: "resumeImprovement",
		NoteList:  "missingElements",
		Note:      "JSON parsing failed - please try again",
	}
}

// Validate checks that the shape can produce a well-formed skeleton that
// carries the diagnostic note.
func (s Shape) Validate() error {
	if len(s.Fields) == 0 {
		return ErrEmptyShape
	}
	anchored := s.Anchor == ""
	for i, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: field %d has no name", ErrInvalidField, i)
		}
		if f.Kind != Object && f.Kind != Array {
			return fmt.Errorf("%w: field %q has kind %d", ErrInvalidField, f.Name, f.Kind)
		}
		if f.Name == s.Anchor {
			anchored = true
		}
		if f.Name == s.NoteField {
			return fmt.Errorf("%w: %q", ErrNoteCollision, f.Name)
		}
	}
	if !anchored {
		return fmt.Errorf("%w: %q", ErrUnknownAnchor, s.Anchor)
	}
	if s.NoteField == "" || s.NoteList == "" || s.Note == "" {
		return ErrMissingNote
	}
	return nil
}

// skeleton renders the fallback document.
func (s Shape) skeleton() string {
	var b strings.Builder
	b.WriteByte('{')
	s.writeMembers(&b, "", false)
	b.WriteByte('}')
	return b.String()
}

// composite wraps an already serialized member with the remaining fields.
func (s Shape) composite(member string) string {
	var b strings.Builder
	b.WriteByte('{')
	b.WriteString(member)
	s.writeMembers(&b, s.Anchor, true)
	b.WriteByte('}')
	return b.String()
}

// writeMembers writes every field except skip as an empty container,
// followed by the diagnostic note.
func (s Shape) writeMembers(b *strings.Builder, skip string, leadingComma bool) {
	sep := func() {
		if leadingComma {
			b.WriteByte(',')
		}
		leadingComma = true
	}
	for _, f := range s.Fields {
		if f.Name == skip {
			continue
		}
		sep()
		b.WriteString(quote(f.Name))
		b.WriteByte(':')
		b.WriteString(f.Kind.empty())
	}
	sep()
	b.WriteString(quote(s.NoteField))
	b.WriteString(":{")
	b.WriteString(quote(s.NoteList))
	b.WriteString(":[")
	b.WriteString(quote(s.Note))
	b.WriteString("]}")
}

// quote renders v as a JSON string literal.
func quote(v string) string {
	out, err := json.Marshal(v)
	if err != nil {
		return `""`
	}
	return string(out)
}
