package jot

import (
	"strings"
	"testing"
)

const benchDocument = "# Heading with *strong* text{.title}\n\n" +
	"A paragraph with _emphasis_, `verbatim`, a [link][ref], an ![image](/i.png)\n" +
	"and some {+inserted+} and {-deleted-} text... \"quoted\" -- done.\n\n" +
	"```go\nfunc main() {}\n```\n\n" +
	"[ref]: https://example.com\n\n"

func BenchmarkTokenize(b *testing.B) {
	text := strings.Repeat(benchDocument, 20)
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for range b.N {
		Tokenize(text)
	}
}

func BenchmarkParse(b *testing.B) {
	text := strings.Repeat(benchDocument, 20)
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for range b.N {
		Parse(text, Options{})
	}
}
