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

// placeholderMember completes an object that was cut off right after a comma.
const placeholderMember = `"property":"value"`

// completeTail repairs text that ends mid-structure: it drops the closers
// appended by the balancer, patches the interrupted token, then closes all
// open containers in nesting order.
func completeTail(s string) string {
	return closeOpen(patchTail(peel(s)))
}

// patchTail applies a single local patch to the end of s, chosen by the
// token class that was interrupted:
//
//   - an unterminated string is closed; a dangling key also gets ":null"
//   - a finished key with nothing after it gets ":null"
//   - a trailing ':' gets an empty string value
//   - a trailing ',' gets null inside arrays and a placeholder member
//     inside objects
func patchTail(s string) string {
	st := scan(s)
	if st.inString {
		closed := s
		if st.escaped {
			closed += `\`
		}
		closed += `"`
		if st.inKey(s) {
			closed += ":null"
		}
		return closed
	}

	trimmed := strings.TrimRight(s, " \t\r\n")
	switch {
	case strings.HasSuffix(trimmed, `"`) && st.keyPosition(s):
		return trimmed + ":null"
	case strings.HasSuffix(trimmed, ":"):
		return trimmed + `""`
	case strings.HasSuffix(trimmed, ","):
		if innermostIsArray(trimmed) {
			return trimmed + "null"
		}
		return trimmed + placeholderMember
	}
	return s
}
