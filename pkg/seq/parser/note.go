package parser

import (
	"slices"
	"strings"

	"github.com/matzehuels/seqdiag/pkg/seq/diagram"
	"github.com/matzehuels/seqdiag/pkg/seq/lexer"
)

// note parses
//
//	note left of A: text
//	note right of A: text
//	note over A[,B]: text
//
// A note line without a colon starts a multi-line body that runs until
// "end note".
func (p *parser) note(stmt []lexer.Token, line int) error {
	rest := stmt[1:]
	var placement diagram.Placement
	switch {
	case isWord(rest, 0, "left") && isWord(rest, 1, "of"):
		placement, rest = diagram.PlaceLeftOf, rest[2:]
	case isWord(rest, 0, "right") && isWord(rest, 1, "of"):
		placement, rest = diagram.PlaceRightOf, rest[2:]
	case isWord(rest, 0, "over"):
		placement, rest = diagram.PlaceOver, rest[1:]
	default:
		return p.errorf(line, "expected note left of|right of|over")
	}

	names, rest := participantList(rest)
	if len(names) == 0 {
		return p.errorf(line, "expected participant name in note")
	}
	if len(names) > 2 {
		return p.errorf(line, "note spans at most two participants")
	}
	if len(names) == 2 && placement != diagram.PlaceOver {
		return p.errorf(line, "note %s accepts one participant", placement)
	}

	var text string
	switch {
	case len(rest) == 0:
		body, err := p.noteBody(line)
		if err != nil {
			return err
		}
		text = body
	case rest[0].Kind == lexer.Colon && len(rest) == 2:
		text = unescape(rest[1].Value)
	default:
		return p.errorf(line, "unexpected %s in note", rest[0])
	}

	lanes, err := p.lanes(names, line)
	if err != nil {
		return err
	}

	p.emit(diagram.Note{
		Placement:    placement,
		Participants: lanes,
		Text:         text,
		Line:         line,
	})
	return nil
}

// noteBody collects the lines of a multi-line note up to "end note".
func (p *parser) noteBody(start int) (string, error) {
	var lines []string
	for {
		stmt, _ := p.nextLine()
		if stmt == nil {
			return "", p.errorf(start, "unterminated note: missing \"end note\"")
		}
		if stmt[0].Is("end") {
			break
		}
		lines = append(lines, unescape(textAfter(stmt, 0)))
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n"), nil
}

// participantList splits a comma-separated list of names off the front of
// toks.
func participantList(toks []lexer.Token) (names, rest []lexer.Token) {
	rest = toks
	for len(rest) > 0 && rest[0].IsName() {
		names = append(names, rest[0])
		rest = rest[1:]
		if len(rest) == 0 || rest[0].Kind != lexer.Comma {
			break
		}
		rest = rest[1:]
	}
	return names, rest
}

// lanes resolves names to ascending, distinct lane indexes.
func (p *parser) lanes(names []lexer.Token, line int) ([]int, error) {
	var lanes []int
	for _, tok := range names {
		pt, err := p.use(tok, line)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(lanes, pt.Index) {
			lanes = append(lanes, pt.Index)
		}
	}
	slices.Sort(lanes)
	return lanes, nil
}

func isWord(toks []lexer.Token, i int, word string) bool {
	return i < len(toks) && toks[i].Kind == lexer.Ident && toks[i].Value == word
}
