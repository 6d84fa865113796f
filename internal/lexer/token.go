package lexer

import "fmt"

// TokenKind classifies a scanned token.
type TokenKind int

const (
	// End marks the end of input; every token sequence finishes with exactly
	// one End token.
	End TokenKind = iota
	LeftBrace    // {
	RightBrace   // }
	LeftBracket  // [
	RightBracket // ]
	LeftParen    // (
	RightParen   // )
	Colon        // :
	Comma        // ,
	String       // quoted string or bare word, Text holds the decoded value
	Number       // numeric literal, Text holds the decimal spelling
	True         // True / true
	False        // False / false
	None         // None / null
)

// String returns a readable name for the kind, used in error messages.
func (k TokenKind) String() string {
	switch k {
	case End:
		return "end of input"
	case LeftBrace:
		return "'{'"
	case RightBrace:
		return "'}'"
	case LeftBracket:
		return "'['"
	case RightBracket:
		return "']'"
	case LeftParen:
		return "'('"
	case RightParen:
		return "')'"
	case Colon:
		return "':'"
	case Comma:
		return "','"
	case String:
		return "string"
	case Number:
		return "number"
	case True:
		return "'True'"
	case False:
		return "'False'"
	case None:
		return "'None'"
	}
	return "?"
}

// Token is a single classified unit of input. Text carries the decoded
// payload for String and Number tokens and the canonical spelling otherwise.
// Offset is the zero-based character position of the token's first character
// in the original input.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
}

func (t Token) String() string {
	return fmt.Sprintf("<%v %q @%d>", t.Kind, t.Text, t.Offset)
}
