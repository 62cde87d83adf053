package luapat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPattern_FindAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		pattern   string
		subject   string
		init      int
		wantOK    bool
		wantStart int
		wantEnd   int
	}{
		{name: "greedy plus", pattern: "b+", subject: "aabbbc", wantOK: true, wantStart: 2, wantEnd: 5},
		{name: "anchor fails", pattern: "^a", subject: "ba"},
		{name: "anchor holds at init", pattern: "^a", subject: "ba", init: 1, wantOK: true, wantStart: 1, wantEnd: 2},
		{name: "end anchor", pattern: "%d+$", subject: "ab12", wantOK: true, wantStart: 2, wantEnd: 4},
		{name: "literal dollar mid pattern", pattern: "a$b", subject: "xa$b", wantOK: true, wantStart: 1, wantEnd: 4},
		{name: "lazy", pattern: "a-b", subject: "aaab", wantOK: true, wantStart: 0, wantEnd: 4},
		{name: "optional", pattern: "a?b", subject: "b", wantOK: true, wantStart: 0, wantEnd: 1},
		{name: "balanced", pattern: "%b()", subject: "f(a(b)c)d", wantOK: true, wantStart: 1, wantEnd: 8},
		{name: "frontier", pattern: "%f[%w]%w+", subject: "  hello", wantOK: true, wantStart: 2, wantEnd: 7},
		{name: "negated set", pattern: "[^%s]+", subject: " ab ", wantOK: true, wantStart: 1, wantEnd: 3},
		{name: "range", pattern: "[a-c]+", subject: "xxabcd", wantOK: true, wantStart: 2, wantEnd: 5},
		{name: "escaped bracket in set", pattern: "[%]]", subject: "a]", wantOK: true, wantStart: 1, wantEnd: 2},
		{name: "escaped dot", pattern: "%.", subject: "a.b", wantOK: true, wantStart: 1, wantEnd: 2},
		{name: "empty match on empty subject", pattern: "x*", subject: "", wantOK: true},
		{name: "init past end", pattern: "a", subject: "a", init: 5},
		{name: "negative init clamps", pattern: "a", subject: "a", init: -3, wantOK: true, wantEnd: 1},
		{name: "back reference", pattern: "(a)%1", subject: "baab", wantOK: true, wantStart: 1, wantEnd: 3},
		{name: "upper class negates", pattern: "%S+", subject: "  ab", wantOK: true, wantStart: 2, wantEnd: 4},
		{name: "no match", pattern: "z", subject: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := Compile(tt.pattern)
			require.NoError(t, err)

			m, ok, err := p.FindAt(tt.subject, tt.init)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantStart, m.Start)
				assert.Equal(t, tt.wantEnd, m.End)
			}
		})
	}
}

func TestPattern_Captures(t *testing.T) {
	t.Parallel()

	subject := "k=12"
	m, ok, err := MustCompile("(%a+)=(%d+)").Find(subject)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, m.Captures, 2)

	key, ok := m.Capture(0)
	require.True(t, ok)
	assert.Equal(t, "k", key.Text(subject))

	val, ok := m.Capture(1)
	require.True(t, ok)
	assert.Equal(t, "12", val.Text(subject))

	_, ok = m.Capture(2)
	assert.False(t, ok)

	pos, ok, err := MustCompile("()ab").Find("xab")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []Capture{{Start: 1, End: 1, Position: true}}, pos.Captures)
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		want    error
	}{
		{name: "unclosed set", pattern: "[a", want: ErrMalformed},
		{name: "trailing escape", pattern: "a%", want: ErrMalformed},
		{name: "balance missing arguments", pattern: "%b(", want: ErrMalformed},
		{name: "frontier without set", pattern: "%fa", want: ErrMalformed},
		{name: "too many captures", pattern: strings.Repeat("()", MaxCaptures+1), want: ErrTooManyCaptures},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := Compile(tt.pattern)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, p)
			assert.Contains(t, err.Error(), tt.pattern)
		})
	}
}

func TestFindAt_RuntimeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		subject string
		want    error
	}{
		{name: "unfinished capture", pattern: "(a", subject: "a", want: ErrInvalidCapture},
		{name: "unknown back reference", pattern: "%1", subject: "a", want: ErrInvalidCapture},
		{name: "unbalanced close", pattern: "a)", subject: "a", want: ErrInvalidCapture},
		{
			name:    "recursion ceiling",
			pattern: strings.Repeat("a?", maxCalls+50),
			subject: strings.Repeat("a", maxCalls+50),
			want:    ErrTooComplex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, ok, err := MustCompile(tt.pattern).Find(tt.subject)
			require.ErrorIs(t, err, tt.want)
			assert.False(t, ok)
		})
	}
}

func TestFind_Helpers(t *testing.T) {
	t.Parallel()

	m, ok := Find("hello world", "o%s")
	require.True(t, ok)
	assert.Equal(t, 4, m.Start)
	assert.Equal(t, 2, m.Len())

	m, ok = FindAt("abab", "ab", 1)
	require.True(t, ok)
	assert.Equal(t, 2, m.Start)

	assert.Panics(t, func() { Find("x", "[") })
	assert.Equal(t, "^a+", MustCompile("^a+").String())
}

func BenchmarkFindAt(b *testing.B) {
	p := MustCompile("^%[([^%]]*)%]%(([^)]*)%)")
	subject := strings.Repeat("plain words ", 20) + "[label](https://example.com/path)"
	start := strings.IndexByte(subject, '[')
	b.ResetTimer()
	for range b.N {
		if _, ok, err := p.FindAt(subject, start); !ok || err != nil {
			b.Fatal("no match")
		}
	}
}
