// Package output provides output formatting for cst.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"

	"github.com/arjunmahishi/cst/syntax"
	"github.com/arjunmahishi/cst/types"
)

// Format selects how values are rendered.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	Tree Format = "tree"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case JSON, YAML, Tree:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want json, yaml or tree)", s)
}

// Writer handles structured output.
type Writer struct {
	out     io.Writer
	format  Format
	compact bool
	colors  *palette
}

// Config holds output configuration.
type Config struct {
	Format  Format
	Compact bool
	// Color forces colored tree output on or off. If nil, color is used when
	// Output is a terminal.
	Color  *bool
	Output io.Writer
}

// New creates a new output Writer.
func New(cfg Config) *Writer {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Format == "" {
		cfg.Format = JSON
	}

	useColor := isTerminal(cfg.Output)
	if cfg.Color != nil {
		useColor = *cfg.Color
	}

	return &Writer{
		out:     cfg.Output,
		format:  cfg.Format,
		compact: cfg.Compact,
		colors:  newPalette(useColor),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Write outputs a value in the configured format. The tree format only
// applies to elements; other values fall back to YAML.
func (w *Writer) Write(v any) error {
	switch w.format {
	case YAML:
		return w.writeYAML(v)
	case Tree:
		if e, ok := v.(types.Element); ok {
			return w.writeTree(e, 0)
		}
		return w.writeYAML(v)
	}
	return w.writeJSON(v)
}

// WriteText writes pre-rendered text unchanged.
func (w *Writer) WriteText(s string) error {
	_, err := io.WriteString(w.out, s)
	return err
}

func (w *Writer) writeJSON(v any) error {
	enc := json.NewEncoder(w.out)
	enc.SetEscapeHTML(false)
	if !w.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func (w *Writer) writeYAML(v any) error {
	opts := []yaml.EncodeOption{yaml.Indent(2)}
	if w.compact {
		opts = append(opts, yaml.Flow(true))
	}
	data, err := yaml.MarshalWithOptions(v, opts...)
	if err != nil {
		return err
	}
	_, err = w.out.Write(data)
	return err
}

func (w *Writer) writeTree(e types.Element, depth int) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))

	kind := w.colors.node
	switch {
	case e.Kind == "ERROR" || e.Kind == "Error":
		kind = w.colors.err
	case e.Trivia:
		kind = w.colors.trivia
	case e.Token:
		kind = w.colors.token
	}
	b.WriteString(kind("%s", syntax.QuoteKindName(e.Kind)))
	b.WriteString(w.colors.span("@%d..%d", e.Range.Start.Offset, e.Range.End.Offset))
	if e.Token {
		b.WriteByte(' ')
		b.WriteString(w.colors.text("%s", strconv.Quote(e.Text)))
	}
	b.WriteByte('\n')

	if _, err := io.WriteString(w.out, b.String()); err != nil {
		return err
	}
	for _, c := range e.Children {
		if err := w.writeTree(c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

type palette struct {
	node, token, trivia, err, span, text func(string, ...any) string
}

func newPalette(enabled bool) *palette {
	if !enabled {
		plain := fmt.Sprintf
		return &palette{plain, plain, plain, plain, plain, plain}
	}
	return &palette{
		node:   forced(color.New(color.FgBlue, color.Bold)),
		token:  forced(color.New(color.FgCyan)),
		trivia: forced(color.New(color.FgHiBlack)),
		err:    forced(color.New(color.FgRed, color.Bold)),
		span:   forced(color.RGB(96, 96, 96)),
		text:   forced(color.RGB(8, 196, 16)),
	}
}

// forced ignores color.NoColor so that an explicit --color survives a pipe.
func forced(c *color.Color) func(string, ...any) string {
	c.EnableColor()
	return c.SprintfFunc()
}

// WriteError writes an error message to stderr.
func WriteError(err error) {
	enc := json.NewEncoder(os.Stderr)
	enc.Encode(map[string]any{
		"error": err.Error(),
	})
}
