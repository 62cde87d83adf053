package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/gojot/internal/logging"
	"github.com/yaklabco/gojot/pkg/config"
	"github.com/yaklabco/gojot/pkg/html"
	"github.com/yaklabco/gojot/pkg/jotast"
	"github.com/yaklabco/gojot/pkg/jsonast"
	"github.com/yaklabco/gojot/pkg/parser/jot"
)

// converter parses sources and renders them in the configured format.
type converter struct {
	format   config.OutputFormat
	indent   bool
	debug    bool
	parser   *jot.Parser
	renderer *html.Renderer
}

func newConverter(cfg *config.Config) *converter {
	debug := config.Enabled(cfg.DebugMatches)
	return &converter{
		format:   cfg.Format,
		indent:   config.Enabled(cfg.Indent),
		debug:    debug,
		parser:   jot.New(jot.Options{DebugMatches: debug}),
		renderer: html.NewRenderer(html.Options{DetectLanguage: config.Enabled(cfg.DetectLanguage)}),
	}
}

func (c *converter) parse(ctx context.Context, path string, content []byte) (*jotast.Document, error) {
	doc, err := c.parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.debug {
		logging.FromContext(ctx).Debug("match stream", logging.FieldPath, path, "matches", "\n"+doc.Debug)
	}
	return doc, nil
}

// Convert implements runner.ConvertFunc.
func (c *converter) Convert(ctx context.Context, path string, content []byte) ([]byte, error) {
	doc, err := c.parse(ctx, path, content)
	if err != nil {
		return nil, err
	}

	if c.format == config.FormatJSON {
		data, err := jsonast.Marshal(doc, c.indent)
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}

	var buf bytes.Buffer
	if err := c.renderer.Write(&buf, doc); err != nil {
		return nil, fmt.Errorf("render %s: %w", path, err)
	}
	return buf.Bytes(), nil
}

// write renders one document to w.
func (c *converter) write(ctx context.Context, w io.Writer, path string, content []byte) error {
	out, err := c.Convert(ctx, path, content)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
