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

// balance evens out the counts of open and close. A deficit of closers is
// appended, a deficit of openers is prepended. Counting is purely textual.
func balance(s string, open, close byte) string {
	opens := strings.Count(s, string(open))
	closes := strings.Count(s, string(close))
	switch {
	case opens > closes:
		return s + strings.Repeat(string(close), opens-closes)
	case closes > opens:
		return strings.Repeat(string(open), closes-opens) + s
	}
	return s
}

func balanceBraces(s string) string {
	return balance(s, '{', '}')
}

func balanceBrackets(s string) string {
	return balance(s, '[', ']')
}

// structure is the open-container state at the end of a text.
type structure struct {
	closers     []byte // pending closers, innermost last
	inString    bool
	escaped     bool // text ends with an unpaired backslash inside a string
	stringStart int  // index of the quote that opened the unterminated string
}

// scan walks s honouring string literals and escapes. Closers that do not
// match the innermost open container are ignored.
func scan(s string) structure {
	var st structure
	for i := 0; i < len(s); i++ {
		c := s[i]
		if st.inString {
			switch {
			case st.escaped:
				st.escaped = false
			case c == '\\':
				st.escaped = true
			case c == '"':
				st.inString = false
			}
			continue
		}
		switch c {
		case '"':
			st.inString = true
			st.stringStart = i
		case '{':
			st.closers = append(st.closers, '}')
		case '[':
			st.closers = append(st.closers, ']')
		case '}', ']':
			if n := len(st.closers); n > 0 && st.closers[n-1] == c {
				st.closers = st.closers[:n-1]
			}
		}
	}
	return st
}

// inKey reports whether the unterminated string sits where an object key belongs.
func (st structure) inKey(s string) bool {
	return st.inString && st.keyPosition(s)
}

// keyPosition reports whether the last string opened in s, terminated or
// not, sits where an object key belongs.
func (st structure) keyPosition(s string) bool {
	if len(st.closers) == 0 || st.closers[len(st.closers)-1] != '}' {
		return false
	}
	before := strings.TrimRight(s[:st.stringStart], " \t\r\n")
	return strings.HasSuffix(before, "{") || strings.HasSuffix(before, ",")
}

// closeOpen terminates an open string and closes every open container
// in the right order.
func closeOpen(s string) string {
	st := scan(s)
	var b strings.Builder
	b.Grow(len(s) + len(st.closers) + 2)
	b.WriteString(s)
	if st.inString {
		if st.escaped {
			b.WriteByte('\\')
		}
		b.WriteByte('"')
	}
	for i := len(st.closers) - 1; i >= 0; i-- {
		b.WriteByte(st.closers[i])
	}
	return b.String()
}

// peel strips the trailing run of closers and whitespace, which after the
// lexical pass are usually the balancer's own additions.
func peel(s string) string {
	return strings.TrimRight(s, "}] \t\r\n")
}

// innermostIsArray scans backwards from the end of s and reports whether the
// first container to open without being closed again is an array.
func innermostIsArray(s string) bool {
	depth := 0
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case '}', ']':
			depth++
		case '{':
			depth--
			if depth < 0 {
				return false
			}
		case '[':
			depth--
			if depth < 0 {
				return true
			}
		}
	}
	return false
}
