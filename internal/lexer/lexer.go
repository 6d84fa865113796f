// Package lexer turns relaxed Python-literal text into a flat token
// sequence. All character-level decoding happens here: string escapes,
// numeric base conversion, comment and whitespace skipping. The parser never
// inspects raw input characters.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrorKind identifies the reason tokenizing failed.
type ErrorKind int

const (
	ErrUnterminatedString ErrorKind = iota
	ErrUnterminatedTripleQuotedString
	ErrUnterminatedEscape
	ErrInvalidNumber
	ErrUnexpectedCharacter
)

// String returns a readable description of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnterminatedString:
		return "unterminated string literal"
	case ErrUnterminatedTripleQuotedString:
		return "unterminated triple-quoted string literal"
	case ErrUnterminatedEscape:
		return "unterminated escape sequence"
	case ErrInvalidNumber:
		return "invalid number literal"
	case ErrUnexpectedCharacter:
		return "unexpected character"
	}
	return "lex error"
}

// LexError reports a scanning failure at a specific character offset.
type LexError struct {
	Kind   ErrorKind
	Offset int
}

// Error implements error interface
func (e *LexError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
}

// Lexer scans a fixed input left to right. A Lexer is single-use; each call
// to Tokenize owns its own cursor state, so independent inputs can be
// tokenized concurrently.
type Lexer struct {
	src []rune
	pos int
}

// New creates a Lexer over input. Offsets reported in tokens and errors are
// zero-based character (rune) positions.
func New(input string) *Lexer {
	return &Lexer{src: []rune(input)}
}

// Tokenize scans input and returns its complete token sequence. The sequence
// always ends with exactly one End token. On failure the returned error is a
// *LexError carrying the offending offset.
func Tokenize(input string) ([]Token, error) {
	return New(input).Tokenize()
}

// Tokenize runs the scanner to the end of the input.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.scan()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == End {
			return tokens, nil
		}
	}
}

// scan skips whitespace and comments and produces the next token.
func (l *Lexer) scan() (Token, error) {
	l.skipSpaceAndComments()
	start := l.pos
	if l.eof() {
		return Token{Kind: End, Offset: start}, nil
	}
	ch := l.src[l.pos]
	switch {
	case ch == '\'' || ch == '"':
		return l.scanString()
	case ch == '-' || isDigit(ch):
		return l.scanNumber()
	case isWordStart(ch):
		return l.scanWord(), nil
	}
	l.pos++
	switch ch {
	case '{':
		return Token{Kind: LeftBrace, Text: "{", Offset: start}, nil
	case '}':
		return Token{Kind: RightBrace, Text: "}", Offset: start}, nil
	case '[':
		return Token{Kind: LeftBracket, Text: "[", Offset: start}, nil
	case ']':
		return Token{Kind: RightBracket, Text: "]", Offset: start}, nil
	case '(':
		return Token{Kind: LeftParen, Text: "(", Offset: start}, nil
	case ')':
		return Token{Kind: RightParen, Text: ")", Offset: start}, nil
	case ':':
		return Token{Kind: Colon, Text: ":", Offset: start}, nil
	case ',':
		return Token{Kind: Comma, Text: ",", Offset: start}, nil
	}
	return Token{}, &LexError{Kind: ErrUnexpectedCharacter, Offset: start}
}

// skipSpaceAndComments advances past whitespace and '#' line comments.
// Comments run to the end of the line and never appear inside strings.
func (l *Lexer) skipSpaceAndComments() {
	for !l.eof() {
		ch := l.src[l.pos]
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.pos++
			continue
		}
		if ch == '#' {
			for !l.eof() && l.src[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		break
	}
}

// scanString handles both quoting styles. A quote immediately followed by two
// more of the same quote opens a triple-quoted string.
func (l *Lexer) scanString() (Token, error) {
	start := l.pos
	quote := l.src[l.pos]
	l.pos++
	if l.peek() == quote && l.peekAt(1) == quote {
		l.pos += 2
		return l.scanTripleQuoted(start, quote)
	}
	var sb strings.Builder
	for {
		if l.eof() {
			return Token{}, &LexError{Kind: ErrUnterminatedString, Offset: start}
		}
		ch := l.src[l.pos]
		l.pos++
		if ch == quote {
			break
		}
		if ch == '\\' {
			if err := l.decodeEscape(&sb); err != nil {
				return Token{}, err
			}
			continue
		}
		sb.WriteRune(ch)
	}
	return Token{Kind: String, Text: sb.String(), Offset: start}, nil
}

// scanTripleQuoted reads until three consecutive matching quotes. Embedded
// newlines are kept literally; escapes are still decoded.
func (l *Lexer) scanTripleQuoted(start int, quote rune) (Token, error) {
	var sb strings.Builder
	for {
		if l.eof() {
			return Token{}, &LexError{Kind: ErrUnterminatedTripleQuotedString, Offset: start}
		}
		if l.peek() == quote && l.peekAt(1) == quote && l.peekAt(2) == quote {
			l.pos += 3
			break
		}
		ch := l.src[l.pos]
		l.pos++
		if ch == '\\' {
			if err := l.decodeEscape(&sb); err != nil {
				return Token{}, err
			}
			continue
		}
		sb.WriteRune(ch)
	}
	return Token{Kind: String, Text: sb.String(), Offset: start}, nil
}

// decodeEscape is called with the cursor just past a backslash. Unrecognized
// escapes emit the escaped character itself rather than failing.
func (l *Lexer) decodeEscape(sb *strings.Builder) error {
	escStart := l.pos - 1
	if l.eof() {
		return &LexError{Kind: ErrUnterminatedEscape, Offset: escStart}
	}
	ch := l.src[l.pos]
	l.pos++
	switch ch {
	case '\\':
		sb.WriteByte('\\')
	case '/':
		sb.WriteByte('/')
	case '\'':
		sb.WriteByte('\'')
	case '"':
		sb.WriteByte('"')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case '0':
		sb.WriteByte(0)
	case 'u':
		v, err := l.readHex(4, escStart)
		if err != nil {
			return err
		}
		r := rune(v)
		if utf16.IsSurrogate(r) {
			// A high surrogate followed by a \uXXXX low surrogate combines
			// into one code point. A lone surrogate cannot be represented in
			// a Go string and becomes U+FFFD.
			if low, ok := l.peekLowSurrogate(); ok {
				if paired := utf16.DecodeRune(r, low); paired != utf8.RuneError {
					l.pos += 6
					r = paired
				}
			}
		}
		sb.WriteRune(r)
	case 'x':
		v, err := l.readHex(2, escStart)
		if err != nil {
			return err
		}
		sb.WriteRune(rune(v))
	default:
		sb.WriteRune(ch)
	}
	return nil
}

// readHex consumes exactly n hex digits. Running out of input or hitting a
// non-hex character mid-group fails the surrounding escape.
func (l *Lexer) readHex(n, escStart int) (int, error) {
	v := 0
	for i := 0; i < n; i++ {
		if l.eof() {
			return 0, &LexError{Kind: ErrUnterminatedEscape, Offset: escStart}
		}
		d, ok := hexVal(l.src[l.pos])
		if !ok {
			return 0, &LexError{Kind: ErrUnterminatedEscape, Offset: escStart}
		}
		l.pos++
		v = v<<4 | d
	}
	return v, nil
}

// peekLowSurrogate checks, without consuming anything, whether the next six
// characters spell a \uXXXX low surrogate.
func (l *Lexer) peekLowSurrogate() (rune, bool) {
	if l.peek() != '\\' || l.peekAt(1) != 'u' {
		return 0, false
	}
	v := 0
	for i := 0; i < 4; i++ {
		d, ok := hexVal(l.peekAt(2 + i))
		if !ok {
			return 0, false
		}
		v = v<<4 | d
	}
	r := rune(v)
	if r < 0xDC00 || r > 0xDFFF {
		return 0, false
	}
	return r, true
}

// scanNumber reads a numeric literal. A lone '0' followed by x/o/b switches
// to the matching base; base-prefixed integers take no fraction or exponent.
// Underscore digit separators are discarded everywhere.
func (l *Lexer) scanNumber() (Token, error) {
	start := l.pos
	neg := false
	var sb strings.Builder
	if l.peek() == '-' {
		neg = true
		sb.WriteByte('-')
		l.pos++
	}
	if !isDigit(l.peek()) {
		return Token{}, &LexError{Kind: ErrInvalidNumber, Offset: start}
	}
	if l.peek() == '0' {
		switch l.peekAt(1) {
		case 'x', 'X':
			return l.scanBaseInt(start, neg, 16)
		case 'o', 'O':
			return l.scanBaseInt(start, neg, 8)
		case 'b', 'B':
			return l.scanBaseInt(start, neg, 2)
		}
	}
	sb.WriteString(l.digitRun())
	// The dot is only part of the number when a digit follows, so "1." lexes
	// as the number 1 followed by a stray dot.
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.pos++
		sb.WriteByte('.')
		sb.WriteString(l.digitRun())
	}
	if ch := l.peek(); ch == 'e' || ch == 'E' {
		next := l.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
			sb.WriteRune(ch)
			l.pos++
			if next == '+' || next == '-' {
				sb.WriteRune(next)
				l.pos++
			}
			sb.WriteString(l.digitRun())
		}
	}
	return Token{Kind: Number, Text: sb.String(), Offset: start}, nil
}

// scanBaseInt reads the digit run after a 0x/0o/0b prefix and decodes it to
// its base-10 spelling.
func (l *Lexer) scanBaseInt(start int, neg bool, base int) (Token, error) {
	l.pos += 2
	var sb strings.Builder
	for !l.eof() {
		ch := l.src[l.pos]
		if ch == '_' {
			l.pos++
			continue
		}
		if !isBaseDigit(ch, base) {
			break
		}
		sb.WriteRune(ch)
		l.pos++
	}
	if sb.Len() == 0 {
		return Token{}, &LexError{Kind: ErrInvalidNumber, Offset: start}
	}
	v, err := strconv.ParseUint(sb.String(), base, 64)
	if err != nil {
		return Token{}, &LexError{Kind: ErrInvalidNumber, Offset: start}
	}
	text := strconv.FormatUint(v, 10)
	if neg {
		text = "-" + text
	}
	return Token{Kind: Number, Text: text, Offset: start}, nil
}

// digitRun consumes a run of decimal digits and underscore separators,
// returning the digits only.
func (l *Lexer) digitRun() string {
	var sb strings.Builder
	for !l.eof() {
		ch := l.src[l.pos]
		if isDigit(ch) {
			sb.WriteRune(ch)
			l.pos++
			continue
		}
		if ch == '_' {
			l.pos++
			continue
		}
		break
	}
	return sb.String()
}

// scanWord reads an identifier run. The three keyword spellings map to their
// own kinds; anything else is a bare word and becomes a String token.
func (l *Lexer) scanWord() Token {
	start := l.pos
	for !l.eof() && isWordChar(l.src[l.pos]) {
		l.pos++
	}
	text := string(l.src[start:l.pos])
	switch text {
	case "True", "true":
		return Token{Kind: True, Text: text, Offset: start}
	case "False", "false":
		return Token{Kind: False, Text: text, Offset: start}
	case "None", "null":
		return Token{Kind: None, Text: text, Offset: start}
	}
	return Token{Kind: String, Text: text, Offset: start}
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() rune {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isWordStart(ch rune) bool {
	return isLetter(ch) || ch == '_'
}

func isWordChar(ch rune) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

func isBaseDigit(ch rune, base int) bool {
	switch base {
	case 16:
		_, ok := hexVal(ch)
		return ok
	case 8:
		return ch >= '0' && ch <= '7'
	case 2:
		return ch == '0' || ch == '1'
	}
	return false
}

func hexVal(ch rune) (int, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0'), true
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10, true
	case ch >= 'A' && ch <= 'F':
		return int(ch-'A') + 10, true
	}
	return 0, false
}
