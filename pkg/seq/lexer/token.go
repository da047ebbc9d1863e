package lexer

import (
	"fmt"

	"github.com/matzehuels/seqdiag/pkg/seq/diagram"
)

// Kind identifies the type of a token.
type Kind int

const (
	EOF     Kind = iota
	EOL          // end of a statement line
	Keyword      // statement keyword at the start of a line
	Ident        // bare participant name
	String       // "quoted name", quotes stripped
	Arrow        // -> ->> --> -->> with optional +/- modifiers
	Colon        // :
	Comma        // ,
	Text         // verbatim remainder of a line
	Invalid      // a whole line that matches no statement form
)

var kindNames = map[Kind]string{
	EOF:     "EOF",
	EOL:     "end of line",
	Keyword: "keyword",
	Ident:   "identifier",
	String:  "string",
	Arrow:   "arrow",
	Colon:   "':'",
	Comma:   "','",
	Text:    "text",
	Invalid: "unrecognized statement",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// keywords are recognized only as the first word of a line. The words of
// note placements and aliases (left, right, of, over, as) lex as identifiers.
var keywords = map[string]bool{
	"title":       true,
	"participant": true,
	"actor":       true,
	"note":        true,
	"state":       true,
	"ref":         true,
	"alt":         true,
	"else":        true,
	"opt":         true,
	"loop":        true,
	"par":         true,
	"end":         true,
	"activate":    true,
	"deactivate":  true,
	"destroy":     true,
	"autonumber":  true,
	"option":      true,
}

// textKeywords take the rest of their line as a single Text token.
var textKeywords = map[string]bool{
	"title": true,
	"alt":   true,
	"else":  true,
	"opt":   true,
	"loop":  true,
	"par":   true,
}

// ArrowOp is a decoded arrow operator.
type ArrowOp struct {
	Style diagram.ArrowStyle
	// Prefix and Suffix hold the '+' or '-' modifier written immediately
	// before or after the arrow glyphs, or 0.
	Prefix, Suffix byte
}

// Token is a single lexical unit.
type Token struct {
	Kind  Kind
	Value string // keyword, name, text or raw arrow
	Line  int    // 1-based
	Col   int    // 1-based byte column
	Arrow ArrowOp
}

func (t Token) String() string {
	switch t.Kind {
	case EOF, EOL, Colon, Comma:
		return t.Kind.String()
	case Keyword:
		return fmt.Sprintf("keyword %q", t.Value)
	default:
		return fmt.Sprintf("%s %q", t.Kind, t.Value)
	}
}

// Is reports whether t is the keyword kw.
func (t Token) Is(kw string) bool {
	return t.Kind == Keyword && t.Value == kw
}

// IsName reports whether t can name a participant.
func (t Token) IsName() bool {
	return t.Kind == Ident || t.Kind == String
}

// Error is a lexical error such as an unterminated quoted string.
type Error struct {
	Line    int
	Col     int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}
