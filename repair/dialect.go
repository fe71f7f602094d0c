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
	"regexp"
	"strconv"
	"strings"
)

// Dialect interprets the message text of a JSON parse error.
// Implementations must be stateless and safe for concurrent use.
type Dialect interface {
	// Offset extracts the byte offset the message points at.
	// Returns false if the message carries no position.
	Offset(message string) (int, bool)

	// Truncated reports whether the message says the input ended
	// before the document was structurally complete.
	Truncated(message string) bool
}

// DefaultDialect understands ECMAScript engine messages
// ("Unexpected end of JSON input", "Expected ',' or '}' ... at position 12",
// "Unterminated string in JSON at position 40") as well as the messages of
// the engine's own strict parser, which are encoding/json syntax errors
// rendered as "<message> at position N".
var DefaultDialect Dialect = ecmaDialect{}

var positionPattern = regexp.MustCompile(`position\s+(\d+)`)

type ecmaDialect struct{}

func (ecmaDialect) Offset(message string) (int, bool) {
	m := positionPattern.FindStringSubmatch(message)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func (ecmaDialect) Truncated(message string) bool {
	// "Expected" and "Unterminated" are matched case-sensitively: a lowercase
	// match would also hit "unexpected token", which is not a truncation.
	return strings.Contains(strings.ToLower(message), "unexpected end of json input") ||
		strings.Contains(message, "Expected") ||
		strings.Contains(message, "Unterminated")
}

// message returns the text of err, or "" for a nil error.
func message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
