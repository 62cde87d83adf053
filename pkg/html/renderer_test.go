package html

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojot/pkg/jotast"
	"github.com/yaklabco/gojot/pkg/parser/jot"
)

// goldenCase is one fenced example from a testdata/*.test file: the input,
// a line holding a single ".", then the expected HTML.
type goldenCase struct {
	name     string
	input    string
	expected string
}

func loadGolden(t *testing.T, path string) []goldenCase {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var (
		cases   []goldenCase
		fence   string
		title   string
		section int // 0 outside, 1 input, 2 expected
		in, out strings.Builder
	)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		switch section {
		case 0:
			if strings.HasPrefix(text, "```") && strings.Trim(text, "`") == "" {
				fence = text
				section = 1
				in.Reset()
				out.Reset()
				if title == "" {
					title = filepath.Base(path) + ":" + strconv.Itoa(line)
				}
				continue
			}
			if strings.TrimSpace(text) != "" {
				title = strings.TrimSpace(text)
			}
		case 1:
			if text == "." {
				section = 2
				continue
			}
			in.WriteString(text + "\n")
		case 2:
			if text == fence {
				cases = append(cases, goldenCase{name: title, input: in.String(), expected: out.String()})
				section = 0
				title = ""
				continue
			}
			out.WriteString(text + "\n")
		}
	}
	require.NoError(t, scanner.Err())
	require.Zero(t, section, "%s: unterminated example", path)
	return cases
}

func TestRender_Golden(t *testing.T) {
	t.Parallel()

	files, err := filepath.Glob(filepath.Join("testdata", "*.test"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		for _, tc := range loadGolden(t, file) {
			t.Run(filepath.Base(file)+"/"+tc.name, func(t *testing.T) {
				t.Parallel()

				doc := jot.Parse(tc.input, jot.Options{})
				assert.Equal(t, tc.expected, Render(doc, Options{}))
			})
		}
	}
}

func query(t *testing.T, fragment string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)
	return doc
}

func TestRender_Structure(t *testing.T) {
	t.Parallel()

	input := "See [the docs][docs] and ![logo](/l.png){.small}.\n\n" +
		"*Bold* text{#t}.\n\n" +
		"[docs]: https://example.com/a?b=1&c=2\n"
	out := Render(jot.Parse(input, jot.Options{}), Options{})
	doc := query(t, out)

	assert.Equal(t, 2, doc.Find("p").Length())

	link := doc.Find("a").First()
	href, ok := link.Attr("href")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/a?b=1&c=2", href)
	assert.Equal(t, "the docs", link.Text())
	assert.Contains(t, out, "&amp;c=2")

	img := doc.Find("img")
	require.Equal(t, 1, img.Length())
	assert.Equal(t, "logo", img.AttrOr("alt", ""))
	assert.Equal(t, "/l.png", img.AttrOr("src", ""))
	assert.Equal(t, "small", img.AttrOr("class", ""))

	assert.Equal(t, "Bold", doc.Find("strong").Text())
	assert.Equal(t, "text", doc.Find("span#t").Text())
}

func TestRender_AttributeValuesAreEscaped(t *testing.T) {
	t.Parallel()

	out := Render(jot.Parse(`[x]{title="a<b"}`, jot.Options{}), Options{})
	assert.Contains(t, out, `title="a&lt;b"`)
	assert.Equal(t, "a<b", query(t, out).Find("span").AttrOr("title", ""))
}

func TestRender_FailedAttributesStayLiteral(t *testing.T) {
	t.Parallel()

	out := Render(jot.Parse("a{b c} x{.d}", jot.Options{}), Options{})
	assert.True(t, strings.HasPrefix(out, "<p>a{b c} "), out)
	assert.Equal(t, "x", query(t, out).Find("span.d").Text())
}

func TestRender_InlineTextIsStable(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"plain words",
		"Several words, with commas; and a full stop.",
		"numbers 1 2 3 and a question?",
	} {
		first := Render(jot.Parse(text, jot.Options{}), Options{})
		inner := strings.TrimSuffix(strings.TrimPrefix(first, "<p>"), "</p>\n")
		again := Render(jot.Parse(inner, jot.Options{}), Options{})
		assert.Equal(t, first, again, text)
	}
}

func TestRender_PunctuationInPlainText(t *testing.T) {
	t.Parallel()

	out := Render(jot.Parse("![a -- b...](x.png) [c -- d][]\n\n[c -- d]: /cd\n", jot.Options{}), Options{})
	doc := query(t, out)
	assert.Equal(t, "a -- b...", doc.Find("img").AttrOr("alt", ""))
	assert.Equal(t, "/cd", doc.Find("a").AttrOr("href", ""))
}

func TestRender_SymbolAttributes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "a...{.x}", want: "<p>a<span class=\"x\">&hellip;</span></p>\n"},
		{input: ":tada:{#t}", want: "<p><span id=\"t\">🎉</span></p>\n"},
		{input: "a\n{.x}", want: "<p>a\n</p>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Render(jot.Parse(tt.input, jot.Options{}), Options{}))
		})
	}
}

func TestRender_DetectLanguage(t *testing.T) {
	t.Parallel()

	input := "```\npackage main\n\nfunc main() {}\n```\n"
	doc := jot.Parse(input, jot.Options{})

	plain := query(t, Render(doc, Options{}))
	_, ok := plain.Find("code").Attr("class")
	assert.False(t, ok)

	detected := query(t, Render(doc, Options{DetectLanguage: true}))
	assert.Equal(t, "language-go", detected.Find("pre > code").AttrOr("class", ""))
}

func TestRender_HeadingLevels(t *testing.T) {
	t.Parallel()

	doc := jotast.NewDocument()
	for _, level := range []int{0, 2, 9} {
		h := jotast.NewNode(jotast.NodeHeading)
		h.Level = level
		jotast.AppendChild(h, jotast.NewText("t"))
		jotast.AppendChild(doc.Root, h)
	}

	assert.Equal(t, "<h1>t</h1>\n<h2>t</h2>\n<h6>t</h6>\n", Render(doc, Options{}))
}

func TestRenderer_Write(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewRenderer(Options{})
	require.NoError(t, r.Write(&buf, jot.Parse("hello", jot.Options{})))
	assert.Equal(t, "<p>hello</p>\n", buf.String())
}

func TestEmoji(t *testing.T) {
	t.Parallel()

	glyph, ok := Emoji("rocket")
	assert.True(t, ok)
	assert.Equal(t, "🚀", glyph)

	_, ok = Emoji("not-an-emoji")
	assert.False(t, ok)
}

func BenchmarkRender(b *testing.B) {
	doc := jot.Parse(strings.Repeat("Some *strong* and _emphasised_ [text](/x){.c}.\n\n", 50), jot.Options{})
	b.ResetTimer()
	for range b.N {
		Render(doc, Options{})
	}
}
