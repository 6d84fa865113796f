// Package converter wires the pipeline: literal text goes through the lexer
// and parser into a value tree, the tree through the transformer, and the
// result through the formatter. Reformat and Minify skip the literal grammar
// entirely and operate on JSON text.
package converter

import (
	"github.com/mcncl/pyjson/internal/config"
	"github.com/mcncl/pyjson/internal/formatter"
	"github.com/mcncl/pyjson/internal/parser"
	"github.com/mcncl/pyjson/internal/transform"
)

// Converter performs conversions with a fixed configuration. Converters hold
// no per-call state, so one instance can serve concurrent calls.
type Converter struct {
	cfg  *config.Config
	tr   *transform.Transformer
	fmtr *formatter.Formatter
}

// New creates a Converter. A nil config means defaults: indent 4, keys kept
// as written.
func New(cfg *config.Config) *Converter {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Converter{
		cfg:  cfg,
		tr:   transform.NewTransformer(cfg),
		fmtr: formatter.NewFormatter(cfg.Indent),
	}
}

// Convert turns Python-literal text into JSON text. Conversion is
// all-or-nothing: the first lexing or parsing violation fails the call and
// no partial output is returned.
func (c *Converter) Convert(input string) (string, error) {
	v, err := parser.ParseString(input)
	if err != nil {
		return "", err
	}
	return c.fmtr.Format(c.tr.Apply(v))
}

// ConvertFile converts the Python literal stored at path.
func (c *Converter) ConvertFile(path string) (string, error) {
	v, err := parser.ParseFile(path)
	if err != nil {
		return "", err
	}
	return c.fmtr.Format(c.tr.Apply(v))
}

// Reformat re-indents text that is already JSON.
func (c *Converter) Reformat(jsonText string) (string, error) {
	return c.fmtr.Reformat(jsonText)
}

// Minify removes all extraneous whitespace from text that is already JSON.
func (c *Converter) Minify(jsonText string) (string, error) {
	return c.fmtr.Minify(jsonText)
}
