// Package parser builds a value tree from the token sequence produced by the
// lexer. It is a single-token-lookahead recursive descent parser with no
// backtracking and no recovery: the first violation aborts the whole parse.
package parser

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	stderrors "errors"

	"github.com/mcncl/pyjson/internal/errors"
	"github.com/mcncl/pyjson/internal/lexer"
	"github.com/mcncl/pyjson/internal/value"
)

// ErrorKind identifies the reason parsing failed.
type ErrorKind int

const (
	ErrUnexpectedToken ErrorKind = iota
	ErrInvalidDictKey
	ErrTrailingInput
	ErrInvalidNumber
)

// ParseError reports a grammar violation at the offending token's offset.
// Expected describes what the grammar required at that point.
type ParseError struct {
	Kind     ErrorKind
	Offset   int
	Got      lexer.TokenKind
	Expected string
}

// Error implements error interface
func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrInvalidDictKey:
		return fmt.Sprintf("invalid dict key %v at offset %d", e.Got, e.Offset)
	case ErrTrailingInput:
		return fmt.Sprintf("unexpected trailing input at offset %d", e.Offset)
	case ErrInvalidNumber:
		return fmt.Sprintf("invalid number at offset %d", e.Offset)
	}
	return fmt.Sprintf("unexpected %v at offset %d, expected %s", e.Got, e.Offset, e.Expected)
}

// Parser consumes a token sequence for exactly one top-level value.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New creates a Parser over tokens. The sequence must end with an End token,
// which lexer.Tokenize guarantees.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse returns the value tree for the whole input. Any token left over
// before the End token fails with a trailing-input error.
func (p *Parser) Parse() (value.Value, error) {
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != lexer.End {
		return nil, &ParseError{Kind: ErrTrailingInput, Offset: tok.Offset, Got: tok.Kind}
	}
	return v, nil
}

// parseValue dispatches on the next token. Containers recurse back into
// parseValue for their elements.
func (p *Parser) parseValue() (value.Value, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.LeftBrace:
		return p.parseDict()
	case lexer.LeftBracket:
		return p.parseSequence(lexer.RightBracket)
	case lexer.LeftParen:
		return p.parseSequence(lexer.RightParen)
	case lexer.String:
		p.pos++
		return value.String(tok.Text), nil
	case lexer.Number:
		p.pos++
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, &ParseError{Kind: ErrInvalidNumber, Offset: tok.Offset, Got: tok.Kind}
		}
		return value.Number(f), nil
	case lexer.True:
		p.pos++
		return value.Bool(true), nil
	case lexer.False:
		p.pos++
		return value.Bool(false), nil
	case lexer.None:
		p.pos++
		return value.Null{}, nil
	}
	return nil, &ParseError{Kind: ErrUnexpectedToken, Offset: tok.Offset, Got: tok.Kind, Expected: "a value"}
}

// parseDict parses '{' (key ':' value (',' key ':' value)* ','?)? '}'.
// Keys are normalized to strings; a later duplicate key overwrites the
// earlier value while keeping its original position.
func (p *Parser) parseDict() (value.Value, error) {
	p.pos++ // consume '{'
	obj := value.Object{}
	if p.peek().Kind == lexer.RightBrace {
		p.pos++
		return obj, nil
	}
	for {
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		if tok := p.peek(); tok.Kind != lexer.Colon {
			return nil, &ParseError{Kind: ErrUnexpectedToken, Offset: tok.Offset, Got: tok.Kind, Expected: "':'"}
		}
		p.pos++
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)

		tok := p.peek()
		if tok.Kind == lexer.Comma {
			p.pos++
			// trailing comma before the closing brace
			if p.peek().Kind == lexer.RightBrace {
				p.pos++
				return obj, nil
			}
			continue
		}
		if tok.Kind == lexer.RightBrace {
			p.pos++
			return obj, nil
		}
		return nil, &ParseError{Kind: ErrUnexpectedToken, Offset: tok.Offset, Got: tok.Kind, Expected: "',' or '}'"}
	}
}

// parseKey accepts string, number and keyword tokens in key position and
// converts them to their literal text.
func (p *Parser) parseKey() (string, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.String, lexer.Number:
		p.pos++
		return tok.Text, nil
	case lexer.True:
		p.pos++
		return "true", nil
	case lexer.False:
		p.pos++
		return "false", nil
	case lexer.None:
		p.pos++
		return "null", nil
	}
	return "", &ParseError{Kind: ErrInvalidDictKey, Offset: tok.Offset, Got: tok.Kind}
}

// parseSequence parses a list or tuple body up to close. Both produce an
// Array; the distinction is not retained.
func (p *Parser) parseSequence(closing lexer.TokenKind) (value.Value, error) {
	p.pos++ // consume the opening delimiter
	arr := value.Array{}
	if p.peek().Kind == closing {
		p.pos++
		return arr, nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)

		tok := p.peek()
		if tok.Kind == lexer.Comma {
			p.pos++
			if p.peek().Kind == closing {
				p.pos++
				return arr, nil
			}
			continue
		}
		if tok.Kind == closing {
			p.pos++
			return arr, nil
		}
		return nil, &ParseError{Kind: ErrUnexpectedToken, Offset: tok.Offset, Got: tok.Kind, Expected: fmt.Sprintf("',' or %v", closing)}
	}
}

// peek returns the current token without consuming it. The End token is
// never consumed, so peeking never runs past the sequence.
func (p *Parser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Kind: lexer.End}
	}
	return p.tokens[p.pos]
}

// Parse converts literal data from an io.Reader into a value tree
func Parse(reader io.Reader) (value.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return ParseString(string(data))
}

// ParseString tokenizes and parses a Python literal from a string
func ParseString(input string) (value.Value, error) {
	if strings.TrimSpace(input) == "" {
		return nil, errors.NewInputError("input string is empty or consists only of whitespace", errors.ErrEmptyInput)
	}

	tokens, err := lexer.Tokenize(input)
	if err != nil {
		var lexErr *lexer.LexError
		if stderrors.As(err, &lexErr) {
			return nil, errors.NewLexingError(lexErr.Error(), err)
		}
		return nil, errors.NewLexingError("failed to tokenize input", err)
	}

	v, err := New(tokens).Parse()
	if err != nil {
		var parseErr *ParseError
		if stderrors.As(err, &parseErr) {
			return nil, errors.NewParsingError(parseErr.Error(), err)
		}
		return nil, errors.NewParsingError("failed to parse input", err)
	}
	return v, nil
}

// ParseFile parses a Python literal from a file path
func ParseFile(filePath string) (value.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	// Check for empty file before parsing
	stat, err := file.Stat()
	if err != nil {
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}
