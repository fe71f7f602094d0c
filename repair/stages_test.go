package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalance(t *testing.T) {
	assert.Equal(t, `{{}}`, balanceBraces(`{{}`))
	assert.Equal(t, `{}`, balanceBraces(`}`))
	assert.Equal(t, `[[]]`, balanceBrackets(`[[]`))
	assert.Equal(t, `[1]`, balanceBrackets(`[1]`))
}

func TestCloseOpen(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":["b`, `{"a":["b"]}`},
		{`{"a":{"b":[1,2`, `{"a":{"b":[1,2]}}`},
		{`{"a":"}"`, `{"a":"}"}`},
		{`{"a":"x\`, `{"a":"x\\"}`},
		{`{"a":1}`, `{"a":1}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, closeOpen(tt.in), "input %q", tt.in)
	}
}

func TestScanKeyPosition(t *testing.T) {
	s := `{"a":1,"b`
	assert.True(t, scan(s).inKey(s))

	s = `{"a":"b`
	assert.False(t, scan(s).inKey(s))

	s = `["a","b`
	assert.False(t, scan(s).inKey(s))

	s = `{"a":1,"b"`
	assert.False(t, scan(s).inKey(s))
	assert.True(t, scan(s).keyPosition(s))

	s = `{"a":"b"`
	assert.False(t, scan(s).keyPosition(s))
}

func TestFixLexical(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trailing object comma", `{"a":1,}`, `{"a":1}`},
		{"trailing array comma", `[1,2,]`, `[1,2]`},
		{"adjacent objects", `[{"a":1}{"b":2}]`, `[{"a":1},{"b":2}]`},
		{"repeated commas", `{"a":1,,"b":2}`, `{"a":1,"b":2}`},
		{"bare key", `{name: "Ada"}`, `{"name": "Ada"}`},
		{"single quotes", `{'a': 'b'}`, `{"a":"b"}`},
		{"bare word", `{"level": senior engineer}`, `{"level":"senior engineer"}`},
		{"literals untouched", `{"ok": true}`, `{"ok": true}`},
		{"missing brace", `{"a":[1,2]`, `{"a":[1,2]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fixLexical(tt.in))
		})
	}
}

func TestPatchTail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":`, `{"a":""`},
		{`{"a":1,`, `{"a":1,"property":"value"`},
		{`[1,`, `[1,null`},
		{`{"a":[1,`, `{"a":[1,null`},
		{`{"a":"x`, `{"a":"x"`},
		{`{"a":1,"b`, `{"a":1,"b":null`},
		{`{"a":1,"b"`, `{"a":1,"b":null`},
		{`{"b" `, `{"b":null`},
		{`{"a":"x"`, `{"a":"x"`},
		{`["a","b"`, `["a","b"`},
		{`{"a":1`, `{"a":1`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, patchTail(tt.in), "input %q", tt.in)
	}
}

func TestCompleteTail(t *testing.T) {
	assert.Equal(t, `{"a":[1,2]}`, completeTail(`{"a":[1,2`))
	assert.Equal(t, `{"a":[1,null]}`, completeTail(`{"a":[1,]}`))
	assert.Equal(t, `{"a":{"b":""}}`, completeTail(`{"a":{"b":`))
	assert.True(t, Valid(completeTail(`{"a":1,`)))
}

func TestPatchAtOffset(t *testing.T) {
	t.Run("missing value", func(t *testing.T) {
		assert.Equal(t, `{"a":"","b":1}`, patchAtOffset(`{"a":,"b":1}`, 5))
	})

	t.Run("trailing comma in window", func(t *testing.T) {
		assert.Equal(t, `{"a":1}`, patchAtOffset(`{"a":1,}`, 7))
	})

	t.Run("array after comma missing its first element", func(t *testing.T) {
		assert.Equal(t, `[1,[null,2]]`, patchAtOffset(`[1,[,2]]`, 4))
		assert.Equal(t, `[1, [null`, patchAtOffset(`[1, [`, 4))
	})

	t.Run("well-formed array after comma untouched", func(t *testing.T) {
		assert.Equal(t, `[1,[2]]`, patchAtOffset(`[1,[2]]`, 3))
		assert.Equal(t, `[1, [2]]`, patchAtOffset(`[1, [2]]`, 4))
		assert.Equal(t, `[1,[]]`, patchAtOffset(`[1,[]]`, 3))
	})

	t.Run("negative offset", func(t *testing.T) {
		assert.Equal(t, `{"a":`, patchAtOffset(`{"a":`, -1))
	})

	t.Run("value missing at end", func(t *testing.T) {
		assert.Equal(t, `{"a":""`, patchAtOffset(`{"a":`, 4))
	})

	t.Run("offset past end", func(t *testing.T) {
		assert.Equal(t, `{"a":`, patchAtOffset(`{"a":`, 100))
	})
}

func TestFixAggressive(t *testing.T) {
	assert.Equal(t, `{"a": "b"}`, fixAggressive(`{"a" "b"}`))
	assert.Equal(t, `{"n": 1}`, fixAggressive(`{"n" 1}`))
	assert.Equal(t, `{"p":"C:\\data"}`, fixAggressive(`{"p":"C:\data"}`))
	assert.Equal(t, `{"a":1}`, fixAggressive(`{"a":1`))
	assert.Equal(t, `{"a":1, "type":"x"}`, fixAggressive(`{"a":1, type":"x"}`))
}

func TestFixEscapes(t *testing.T) {
	assert.Equal(t, `a\\qb`, fixEscapes(`a\qb`))
	assert.Equal(t, `a\nb\u0041\"`, fixEscapes(`a\nb\u0041\"`))
	assert.Equal(t, `end\\`, fixEscapes(`end\`))
	assert.Equal(t, `plain`, fixEscapes(`plain`))
}

func TestSalvage(t *testing.T) {
	assert.Equal(t, `{"a":[1,2]}`, salvage(`{"a":[1,2] junk`, 11))
	assert.Equal(t, `{"a":{"b":1}}`, salvage(`{"a":{"b":1},"c":?}`, 17))
	assert.Equal(t, `junk`, salvage(`junk`, 2))
	assert.Equal(t, `{"a"`, salvage(`{"a"`, 0))
}

func TestExtractAnchor(t *testing.T) {
	shape := DefaultShape()

	t.Run("complete anchor", func(t *testing.T) {
		member, ok := shape.extractAnchor(`{"candidateProfile":{"name":"Ada","skills":["go"]},"jobRecommendations":[{"x" ???`)
		require.True(t, ok)
		assert.Equal(t, `"candidateProfile":{"name":"Ada","skills":["go"]}`, member)
	})

	t.Run("truncated anchor", func(t *testing.T) {
		member, ok := shape.extractAnchor(`{"candidateProfile":{"name":"Ada","skills":["go","ru`)
		require.True(t, ok)
		assert.Equal(t, `"candidateProfile":{"name":"Ada","skills":["go","ru"]}`, member)
	})

	t.Run("missing anchor", func(t *testing.T) {
		_, ok := shape.extractAnchor(`{"jobRecommendations":[]}`)
		assert.False(t, ok)
	})

	t.Run("not an object", func(t *testing.T) {
		_, ok := shape.extractAnchor(`"candidateProfile"`)
		assert.False(t, ok)
	})
}
