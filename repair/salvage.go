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

import "strings"

// salvage drops everything after the last '}' or ']' that precedes offset
// and closes whatever is still open, the root included.
func salvage(s string, offset int) string {
	if offset <= 0 {
		return s
	}
	valid := s[:min(offset, len(s))]
	last := max(strings.LastIndexByte(valid, '}'), strings.LastIndexByte(valid, ']'))
	if last <= 0 {
		return s
	}
	return closeOpen(valid[:last+1])
}

// extractAnchor slices the anchor member ("anchor": {...}) out of raw,
// ending at the next known top-level key or the end of the text, and closes
// it if it was cut off. Returns false if raw does not look like the shape or
// the member cannot be made to parse.
func (s Shape) extractAnchor(raw string) (string, bool) {
	if s.Anchor == "" {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "{") {
		return "", false
	}
	key := quote(s.Anchor)
	start := strings.Index(raw, key)
	if start < 0 {
		return "", false
	}

	end := len(raw)
	from := start + len(key)
	for _, f := range s.Fields {
		if f.Name == s.Anchor {
			continue
		}
		if i := strings.Index(raw[from:], quote(f.Name)); i >= 0 {
			end = min(end, from+i)
		}
	}

	member := strings.TrimRight(raw[start:end], "}], \t\r\n")
	member = closeOpen(patchTail(member))
	if strictParse("{"+member+"}") != nil {
		return "", false
	}
	return member, true
}
