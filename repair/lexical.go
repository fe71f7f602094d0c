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
	commaBeforeCloser   = regexp.MustCompile(`,(\s*[\]}])`)
	adjacentObjects     = regexp.MustCompile(`\}(\s*\{)`)
	objectThenToken     = regexp.MustCompile(`\}([^,}\]])`)
	bareKey             = regexp.MustCompile(`(\{|,)\s*([a-zA-Z0-9_]+)\s*:`)
	singleQuotedKey     = regexp.MustCompile(`([{,]\s*)'([^']*)'(\s*:)`)
	singleQuotedValue   = regexp.MustCompile(`(\w+|"[^"]*")\s*:\s*'([^']*)'`)
	bareWordValue       = regexp.MustCompile(`:\s*([a-zA-Z][a-zA-Z0-9_\s]*[a-zA-Z0-9_])(\s*[,}])`)
	repeatedCommas      = regexp.MustCompile(`,{2,}`)
	trailingObjectComma = regexp.MustCompile(`,\s*\}`)
	trailingArrayComma  = regexp.MustCompile(`,\s*\]`)
)

// fixLexical applies the ordered textual rewrites. None of them look at
// nesting depth; each runs over the whole string.
func fixLexical(s string) string {
	s = commaBeforeCloser.ReplaceAllString(s, "${1}")
	s = balanceBraces(s)
	s = adjacentObjects.ReplaceAllString(s, "},${1}")
	s = objectThenToken.ReplaceAllString(s, "},${1}")
	s = balanceBrackets(s)
	s = bareKey.ReplaceAllString(s, `${1}"${2}":`)
	s = requoteSingle(s)
	s = quoteBareWords(s)
	s = repeatedCommas.ReplaceAllString(s, ",")
	return stripTrailingCommas(s)
}

// requoteSingle converts 'key': and key:'value' to double quotes.
func requoteSingle(s string) string {
	s = singleQuotedKey.ReplaceAllStringFunc(s, func(m string) string {
		g := singleQuotedKey.FindStringSubmatch(m)
		return g[1] + `"` + escapeQuotes(g[2]) + `"` + g[3]
	})
	return singleQuotedValue.ReplaceAllStringFunc(s, func(m string) string {
		g := singleQuotedValue.FindStringSubmatch(m)
		return g[1] + `:"` + escapeQuotes(g[2]) + `"`
	})
}

// quoteBareWords wraps unquoted word values in double quotes.
// JSON literals are left alone; numbers never match.
func quoteBareWords(s string) string {
	return bareWordValue.ReplaceAllStringFunc(s, func(m string) string {
		g := bareWordValue.FindStringSubmatch(m)
		word := strings.Join(strings.Fields(g[1]), " ")
		switch word {
		case "true", "false", "null":
			return m
		}
		// Raw line breaks are not allowed inside JSON strings.
		return `:"` + word + `"` + g[2]
	})
}

func stripTrailingCommas(s string) string {
	s = trailingObjectComma.ReplaceAllString(s, "}")
	return trailingArrayComma.ReplaceAllString(s, "]")
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
