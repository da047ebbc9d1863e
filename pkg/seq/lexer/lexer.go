package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/seqdiag/pkg/seq/diagram"
)

// arrowGlyphs are tried longest first.
var arrowGlyphs = []struct {
	glyphs string
	style  diagram.ArrowStyle
}{
	{"-->>", diagram.ArrowReplyOpen},
	{"-->", diagram.ArrowReply},
	{"->>", diagram.ArrowSyncOpen},
	{"->", diagram.ArrowSync},
}

// Tokenize splits a whole document into tokens. Each statement line ends
// with an EOL token and the stream ends with EOF. Blank lines and lines
// starting with '#' produce no tokens.
//
// After a "note" line without a colon, the following lines are returned
// verbatim as Text tokens until a line reading "end note". A "ref" line
// without a colon, or a message into "ref over", opens the same kind of
// body, closed by an "end ref" line that is lexed normally so it can carry
// an outgoing arrow.
func Tokenize(src string) ([]Token, error) {
	lines := splitLines(src)
	var toks []Token
	body := bodyNone

	for i, raw := range lines {
		n := i + 1
		line := strings.TrimSpace(raw)

		switch {
		case body == bodyNote && isEndNote(line):
			col := strings.Index(raw, "end") + 1
			toks = append(toks,
				Token{Kind: Keyword, Value: "end", Line: n, Col: col},
				Token{Kind: Ident, Value: "note", Line: n, Col: col + 4},
				Token{Kind: EOL, Line: n, Col: len(raw) + 1},
			)
			body = bodyNone
			continue
		case body == bodyRef && isEndRef(line):
			lt, err := LexLine(raw, n)
			if err != nil {
				return nil, err
			}
			toks = append(toks, lt...)
			body = bodyNone
			continue
		case body != bodyNone:
			toks = append(toks,
				Token{Kind: Text, Value: line, Line: n, Col: 1},
				Token{Kind: EOL, Line: n, Col: len(raw) + 1},
			)
			continue
		}

		lt, err := LexLine(raw, n)
		if err != nil {
			return nil, err
		}
		toks = append(toks, lt...)
		body = opensBody(lt)
	}

	last := len(lines)
	if last == 0 {
		last = 1
	}
	toks = append(toks, Token{Kind: EOF, Line: last, Col: 1})
	return toks, nil
}

type bodyMode int

const (
	bodyNone bodyMode = iota
	bodyNote
	bodyRef
)

// LexLine tokenizes a single line. n is the 1-based line number recorded
// on the tokens. Blank and comment lines yield no tokens; any other line
// yields its tokens followed by EOL.
func LexLine(line string, n int) ([]Token, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, nil
	}

	l := &lineLexer{src: line, line: n}
	l.skipSpace()

	start := l.pos
	word := l.peekWord()
	if keywords[word] {
		l.pos += len(word)
		l.emit(Keyword, word, start)
		if textKeywords[word] {
			l.skipSpace()
			if rest := strings.TrimSpace(l.src[l.pos:]); rest != "" {
				l.emit(Text, rest, l.pos)
			}
			l.pos = len(l.src)
			l.emit(EOL, "", l.pos)
			return l.toks, nil
		}
	}

	if err := l.scan(); err != nil {
		return nil, err
	}
	l.emit(EOL, "", l.pos)

	if l.toks[0].Kind != Keyword && l.toks[1].Kind != Arrow {
		return []Token{
			{Kind: Invalid, Value: trimmed, Line: n, Col: start + 1},
			{Kind: EOL, Line: n, Col: len(line) + 1},
		}, nil
	}
	return l.toks, nil
}

type lineLexer struct {
	src  string
	pos  int
	line int
	toks []Token
}

func (l *lineLexer) emit(kind Kind, value string, start int) {
	l.toks = append(l.toks, Token{Kind: kind, Value: value, Line: l.line, Col: start + 1})
}

func (l *lineLexer) errorf(start int, msg string) error {
	return &Error{Line: l.line, Col: start + 1, Message: msg}
}

func (l *lineLexer) skipSpace() {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

// peekWord returns the whitespace-delimited word at the cursor.
func (l *lineLexer) peekWord() string {
	end := strings.IndexFunc(l.src[l.pos:], unicode.IsSpace)
	if end < 0 {
		return l.src[l.pos:]
	}
	return l.src[l.pos : l.pos+end]
}

func (l *lineLexer) scan() error {
	for {
		l.skipSpace()
		if l.pos >= len(l.src) {
			return nil
		}
		start := l.pos
		c := l.src[l.pos]
		switch {
		case c == ':':
			l.emit(Colon, ":", start)
			l.pos++
			l.skipSpace()
			l.emit(Text, strings.TrimSpace(l.src[l.pos:]), l.pos)
			l.pos = len(l.src)
		case c == ',':
			l.emit(Comma, ",", start)
			l.pos++
		case c == '"':
			end := strings.IndexByte(l.src[l.pos+1:], '"')
			if end < 0 {
				return l.errorf(start, "unterminated quoted string")
			}
			l.emit(String, l.src[l.pos+1:l.pos+1+end], start)
			l.pos += end + 2
		case isArrowByte(c):
			for l.pos < len(l.src) && isArrowByte(l.src[l.pos]) {
				l.pos++
			}
			raw := l.src[start:l.pos]
			op, ok := DecodeArrow(raw)
			if !ok {
				return l.errorf(start, fmt.Sprintf("malformed arrow %q", raw))
			}
			l.toks = append(l.toks, Token{Kind: Arrow, Value: raw, Line: l.line, Col: start + 1, Arrow: op})
		default:
			for l.pos < len(l.src) {
				r, size := utf8.DecodeRuneInString(l.src[l.pos:])
				if unicode.IsSpace(r) || r < utf8.RuneSelf && isDelimiter(byte(r)) {
					break
				}
				l.pos += size
			}
			l.emit(Ident, l.src[start:l.pos], start)
		}
	}
}

// DecodeArrow decodes an arrow operator such as "->", "-->>+" or "+->".
// At most one modifier may appear on each side of the glyphs. The glyphs
// are matched after an optional leading modifier, so "--->" is "-->" with
// a "-" prefix: a reply that deactivates its source.
func DecodeArrow(s string) (ArrowOp, bool) {
	if op, ok := matchGlyphs(s); ok {
		return op, true
	}
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if op, ok := matchGlyphs(s[1:]); ok {
			op.Prefix = s[0]
			return op, true
		}
	}
	return ArrowOp{}, false
}

func matchGlyphs(s string) (ArrowOp, bool) {
	for _, g := range arrowGlyphs {
		if !strings.HasPrefix(s, g.glyphs) {
			continue
		}
		rest := s[len(g.glyphs):]
		switch {
		case rest == "":
			return ArrowOp{Style: g.style}, true
		case rest == "+" || rest == "-":
			return ArrowOp{Style: g.style, Suffix: rest[0]}, true
		}
	}
	return ArrowOp{}, false
}

func isArrowByte(c byte) bool {
	return c == '-' || c == '+' || c == '>' || c == '<'
}

func isDelimiter(c byte) bool {
	return c == ':' || c == ',' || c == '"' || isArrowByte(c)
}

func opensBody(toks []Token) bodyMode {
	switch {
	case len(toks) == 0:
		return bodyNone
	case toks[0].Is("note") && !hasColon(toks):
		return bodyNote
	case toks[0].Is("ref") && !hasColon(toks), IsRefInput(toks):
		return bodyRef
	}
	return bodyNone
}

// IsRefInput reports whether a message statement such as
// "A -> ref over B: label" sends into a ref box instead of to a lane.
func IsRefInput(stmt []Token) bool {
	return len(stmt) > 3 && stmt[0].IsName() && stmt[1].Kind == Arrow &&
		stmt[2].Kind == Ident && stmt[2].Value == "ref" &&
		stmt[3].Kind == Ident && stmt[3].Value == "over"
}

func hasColon(toks []Token) bool {
	for _, t := range toks {
		if t.Kind == Colon {
			return true
		}
	}
	return false
}

func isEndNote(line string) bool {
	fields := strings.Fields(line)
	return len(fields) == 2 && fields[0] == "end" && fields[1] == "note"
}

// isEndRef matches "end ref" optionally followed by an arrow, as in
// "end ref --> A: done".
func isEndRef(line string) bool {
	rest, ok := strings.CutPrefix(line, "end")
	if !ok || rest == "" || !unicode.IsSpace(rune(rest[0])) {
		return false
	}
	rest, ok = strings.CutPrefix(strings.TrimLeftFunc(rest, unicode.IsSpace), "ref")
	return ok && (rest == "" || unicode.IsSpace(rune(rest[0])) || isArrowByte(rest[0]))
}

func splitLines(src string) []string {
	src = strings.TrimSuffix(src, "\n")
	if src == "" {
		return nil
	}
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
