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
	"strings"
)

var (
	missingColon = regexp.MustCompile(`"([^"]+)"\s+("[^"]+"|\{|\[|true|false|null|-?\d+\.?\d*)`)
	// halfQuotedKey matches a key that lost its opening quote: `, type":`.
	halfQuotedKey = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_ ]*)":`)
)

// validEscapes lists the characters that may follow a backslash in JSON.
const validEscapes = `"\/bfnrtu`

// fixAggressive applies the broader rewrites used once the targeted ones
// have failed.
func fixAggressive(s string) string {
	s = halfQuotedKey.ReplaceAllStringFunc(s, func(m string) string {
		g := halfQuotedKey.FindStringSubmatch(m)
		return g[1] + `"` + strings.TrimSpace(g[2]) + `":`
	})
	s = missingColon.ReplaceAllString(s, `"${1}": ${2}`)
	s = fixEscapes(s)
	s = balanceBrackets(balanceBraces(s))
	return closeDanglingQuote(s)
}

// fixEscapes doubles every backslash that does not start a valid escape.
func fixEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(s) && strings.IndexByte(validEscapes, s[i+1]) >= 0 {
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteString(`\\`)
	}
	return b.String()
}

// closeDanglingQuote appends a quote when s ends with one that sits right
// next to the previous quote, which points at a string opened but never closed.
func closeDanglingQuote(s string) string {
	if !strings.HasSuffix(s, `"`) {
		return s
	}
	last := len(s) - 1
	prev := strings.LastIndex(s[:last], `"`)
	if last-prev <= 1 {
		return s + `"`
	}
	return s
}
