// Package formatter emits JSON text. Format serializes a parsed value tree
// preserving object member order; Reformat and Minify are passthroughs for
// text that is already JSON and never touch the literal grammar.
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mcncl/pyjson/internal/errors"
	"github.com/mcncl/pyjson/internal/value"
)

// DefaultIndent is the number of spaces per nesting level when none is
// configured.
const DefaultIndent = 4

// Formatter renders JSON with a fixed indentation width. A width of zero or
// less produces compact output.
type Formatter struct {
	indent int
}

// NewFormatter creates a Formatter with the given indentation width.
func NewFormatter(indent int) *Formatter {
	return &Formatter{indent: indent}
}

// Format serializes a value tree as JSON text. Object keys appear in the
// order recorded in the tree.
func (f *Formatter) Format(v value.Value) (string, error) {
	if v == nil {
		return "", errors.NewFormatError("no value to format", nil)
	}
	var sb strings.Builder
	f.write(&sb, v, 0)
	return sb.String(), nil
}

// Reformat re-indents existing JSON text. Key order survives because the
// text is re-laid-out, not decoded into a map. Malformed JSON surfaces the
// standard decoder's error.
func (f *Formatter) Reformat(jsonText string) (string, error) {
	src := []byte(strings.TrimSpace(jsonText))
	if len(src) == 0 {
		return "", errors.NewInputError("input string is empty or consists only of whitespace", errors.ErrEmptyInput)
	}
	if f.indent <= 0 {
		return f.Minify(jsonText)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, src, "", strings.Repeat(" ", f.indent)); err != nil {
		return "", errors.NewFormatError(err.Error(), errors.ErrInvalidJSON)
	}
	return buf.String(), nil
}

// Minify strips all extraneous whitespace from existing JSON text.
func (f *Formatter) Minify(jsonText string) (string, error) {
	src := []byte(strings.TrimSpace(jsonText))
	if len(src) == 0 {
		return "", errors.NewInputError("input string is empty or consists only of whitespace", errors.ErrEmptyInput)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, src); err != nil {
		return "", errors.NewFormatError(err.Error(), errors.ErrInvalidJSON)
	}
	return buf.String(), nil
}

// write renders one node at the given nesting depth.
func (f *Formatter) write(sb *strings.Builder, v value.Value, depth int) {
	switch t := v.(type) {
	case value.Null:
		sb.WriteString("null")
	case value.Bool:
		if t {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case value.Number:
		// encoding/json renders float64 in canonical JSON number form, so
		// integral values come out without a fraction part.
		b, err := json.Marshal(float64(t))
		if err != nil {
			sb.WriteString("0")
			return
		}
		sb.Write(b)
	case value.String:
		writeString(sb, string(t))
	case value.Array:
		f.writeArray(sb, t, depth)
	case value.Object:
		f.writeObject(sb, t, depth)
	default:
		sb.WriteString(fmt.Sprintf("%v", t))
	}
}

func (f *Formatter) writeArray(sb *strings.Builder, arr value.Array, depth int) {
	if len(arr) == 0 {
		sb.WriteString("[]")
		return
	}
	if f.indent <= 0 {
		sb.WriteByte('[')
		for i, elem := range arr {
			if i > 0 {
				sb.WriteByte(',')
			}
			f.write(sb, elem, depth+1)
		}
		sb.WriteByte(']')
		return
	}
	sb.WriteString("[\n")
	for i, elem := range arr {
		if i > 0 {
			sb.WriteString(",\n")
		}
		f.pad(sb, depth+1)
		f.write(sb, elem, depth+1)
	}
	sb.WriteByte('\n')
	f.pad(sb, depth)
	sb.WriteByte(']')
}

func (f *Formatter) writeObject(sb *strings.Builder, obj value.Object, depth int) {
	if len(obj) == 0 {
		sb.WriteString("{}")
		return
	}
	if f.indent <= 0 {
		sb.WriteByte('{')
		for i, m := range obj {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeString(sb, m.Key)
			sb.WriteByte(':')
			f.write(sb, m.Value, depth+1)
		}
		sb.WriteByte('}')
		return
	}
	sb.WriteString("{\n")
	for i, m := range obj {
		if i > 0 {
			sb.WriteString(",\n")
		}
		f.pad(sb, depth+1)
		writeString(sb, m.Key)
		sb.WriteString(": ")
		f.write(sb, m.Value, depth+1)
	}
	sb.WriteByte('\n')
	f.pad(sb, depth)
	sb.WriteByte('}')
}

func (f *Formatter) pad(sb *strings.Builder, depth int) {
	for i := 0; i < depth*f.indent; i++ {
		sb.WriteByte(' ')
	}
}

const hexDigits = "0123456789abcdef"

// writeString renders a JSON string literal. Unlike encoding/json's default
// encoder it does not escape HTML characters, so text passes through
// unchanged apart from the mandatory escapes.
func writeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if r < 0x20 {
				sb.WriteString(`\u00`)
				sb.WriteByte(hexDigits[r>>4])
				sb.WriteByte(hexDigits[r&0xF])
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
}
