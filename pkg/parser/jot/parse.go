// Package jot parses djot-style lightweight markup into a jotast.Document.
//
// Parsing runs in two passes over the source text. A block tokenizer walks
// the text line by line, keeping a stack of open containers and feeding
// paragraph lines to an inline tokenizer. Together they produce a flat,
// offset-ordered stream of annot.Match values that a tree builder folds
// into the document tree and its reference table.
//
// Malformed markup is never an error: every construct falls back to literal
// text. The only failure is an internal invariant violation, which Parse
// raises as a panic carrying *InvariantError.
package jot

import (
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/gojot/internal/logging"
	"github.com/yaklabco/gojot/pkg/annot"
	"github.com/yaklabco/gojot/pkg/jotast"
)

// Options configures a parse.
type Options struct {
	// DebugMatches stores a dump of the match stream in Document.Debug.
	DebugMatches bool
}

// InvariantError reports a malformed match stream or tree. It indicates a
// bug in the parser, not in the input.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "jot: invariant violation: " + e.Msg
}

func invariantf(format string, args ...any) *InvariantError {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}

// Parse converts text into a document.
func Parse(text string, opts Options) *jotast.Document {
	b := newBlockTokenizer(text)
	matches := b.parse()
	doc := buildTree(b.subject, matches)
	if opts.DebugMatches {
		doc.Debug = annot.FormatAll(matches, b.subject)
	}
	return doc
}

// Subject returns text as the tokenizer sees it: terminated by a line
// ending. Match offsets index into this string.
func Subject(text string) string {
	if !strings.HasSuffix(text, "\n") && !strings.HasSuffix(text, "\r") {
		return text + "\n"
	}
	return text
}

// Tokenize returns the match stream for text without building a tree.
func Tokenize(text string) []annot.Match {
	return newBlockTokenizer(text).parse()
}

// Parser parses files for callers that deal in bytes, contexts, and errors.
type Parser struct {
	opts Options
}

// New creates a parser with the given options.
func New(opts Options) *Parser {
	return &Parser{opts: opts}
}

// Parse parses content read from path. An invariant violation is returned as
// *InvariantError instead of panicking.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (doc *jotast.Document, err error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		ie, ok := r.(*InvariantError)
		if !ok {
			panic(r)
		}
		logging.FromContext(ctx).Debug("parser invariant violated",
			logging.FieldPath, path,
			logging.FieldError, ie)
		doc, err = nil, ie
	}()

	doc = Parse(string(content), p.opts)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}
	return doc, nil
}
