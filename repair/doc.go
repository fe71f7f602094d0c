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

// Package repair turns malformed LLM output into syntactically valid JSON.
//
// Models asked for JSON routinely return text that a strict parser rejects:
// trailing commas, unquoted keys, single quotes, responses cut off by a token
// limit. The Engine runs a fixed, ordered pipeline of repair stages over a
// working copy of the text and stops at the first stage whose output parses:
//
//  1. lexical     - textual rewrites (commas, quoting, bracket balance)
//  2. truncation  - close an interrupted string, value or element
//  3. positional  - patch the neighbourhood of the reported error offset
//  4. aggressive  - missing colons, broken escapes, rebalancing
//  5. library     - optional pass through github.com/kaptinlin/jsonrepair
//  6. salvage     - cut back to the last complete container
//  7. profile     - keep only the anchor section of a known document shape
//  8. fallback    - a constant skeleton document carrying a diagnostic note
//
// Stages 2 and 3 only run when the parse error says the input ended early.
// The output of Repair always parses. It is a pure function of its inputs and
// is safe for concurrent use.
//
// # Usage
//
//	fixed := repair.Repair(text, err)
//
//	engine, err := repair.NewEngine(repair.WithShape(shape))
//	result := engine.Diagnose(text, parseErr)
//	if result.Degraded {
//	    // content was dropped; surface a partial result
//	}
//
// Only the message text of the supplied error is consulted. Message formats
// differ between parsers, so the interpretation is delegated to a Dialect.
package repair
