package repair

import (
	"sort"
	"strings"
)

// positionWindow is how many bytes before the error offset are inspected.
const positionWindow = 20

type insertion struct {
	at   int
	text string
}

// patchAtOffset inspects the bytes leading up to offset and applies the
// targeted patches whose pattern shows up there:
//
//   - `":` with no value following: insert ""
//   - `,}` or `, }`: strip trailing commas before '}'
//   - `,[` or `, [`: insert null as the first element of the array opened
//     after the comma, when that element is missing
func patchAtOffset(s string, offset int) string {
	if offset < 0 {
		return s
	}
	end := min(len(s), offset+1)
	start := min(max(0, offset-positionWindow), end)
	window := s[start:end]

	var inserts []insertion
	if strings.Contains(window, `":`) && !strings.Contains(window, `":"`) {
		at := start + strings.LastIndex(window, `":`) + 2
		if valueMissing(s[at:]) {
			inserts = append(inserts, insertion{at: at, text: `""`})
		}
	}
	if i := lastIndexOfAny(window, ",[", ", ["); i >= 0 {
		at := start + i + strings.IndexByte(window[i:], '[') + 1
		if elementMissing(s[at:]) {
			inserts = append(inserts, insertion{at: at, text: "null"})
		}
	}

	// Apply right to left so earlier offsets stay valid.
	sort.Slice(inserts, func(i, j int) bool { return inserts[i].at > inserts[j].at })
	for _, ins := range inserts {
		s = s[:ins.at] + ins.text + s[ins.at:]
	}

	if strings.Contains(window, ",}") || strings.Contains(window, ", }") {
		s = trailingObjectComma.ReplaceAllString(s, "}")
	}
	return s
}

// valueMissing reports whether rest starts, after whitespace, with something
// that cannot begin a value.
func valueMissing(rest string) bool {
	rest = strings.TrimLeft(rest, " \t\r\n")
	return rest == "" || rest[0] == ',' || rest[0] == '}' || rest[0] == ']'
}

// elementMissing reports whether rest, the text after an array opener, starts
// with a separator where the first element should be.
func elementMissing(rest string) bool {
	rest = strings.TrimLeft(rest, " \t\r\n")
	return rest == "" || rest[0] == ','
}

func lastIndexOfAny(s string, subs ...string) int {
	idx := -1
	for _, sub := range subs {
		idx = max(idx, strings.LastIndex(s, sub))
	}
	return idx
}
