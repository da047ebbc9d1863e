package parser

import (
	"strings"

	"github.com/matzehuels/seqdiag/pkg/seq/diagram"
	"github.com/matzehuels/seqdiag/pkg/seq/lexer"
)

// state parses "state over A[,B...]: text".
func (p *parser) state(stmt []lexer.Token, line int) error {
	rest := stmt[1:]
	if !isWord(rest, 0, "over") {
		return p.errorf(line, "expected state over PARTICIPANT: text")
	}
	names, rest := participantList(rest[1:])
	if len(names) == 0 {
		return p.errorf(line, "expected participant name in state")
	}
	switch {
	case len(rest) == 0:
		return p.errorf(line, "state needs text: state over PARTICIPANT: text")
	case rest[0].Kind != lexer.Colon || len(rest) != 2:
		return p.errorf(line, "unexpected %s in state", rest[0])
	}
	lanes, err := p.lanes(names, line)
	if err != nil {
		return err
	}
	p.emit(diagram.State{Participants: lanes, Text: unescape(rest[1].Value), Line: line})
	return nil
}

// ref parses
//
//	ref over A[,B...]: text
//	ref over A[,B...]
//	  text
//	end ref[ --> C[: label]]
//
// The multi-line form may also be opened by a message into the box,
// "C -> ref over A[,B...][: label]", which [parser.refInput] handles.
func (p *parser) ref(stmt []lexer.Token, line int) error {
	return p.refOver(stmt[1:], line, nil)
}

// refInput parses a message whose target is "ref over ...".
func (p *parser) refInput(stmt []lexer.Token, line int) error {
	op := stmt[1].Arrow
	if op.Prefix != 0 || op.Suffix != 0 {
		return p.errorf(line, "activation modifiers are not allowed on a message into a ref")
	}
	from, err := p.use(stmt[0], line)
	if err != nil {
		return err
	}
	in := &diagram.Signal{Participant: from.Index, Style: op.Style}
	return p.refOver(stmt[3:], line, in)
}

func (p *parser) refOver(rest []lexer.Token, line int, in *diagram.Signal) error {
	if !isWord(rest, 0, "over") {
		return p.errorf(line, "expected ref over PARTICIPANT")
	}
	names, rest := participantList(rest[1:])
	if len(names) == 0 {
		return p.errorf(line, "expected participant name in ref")
	}

	ev := diagram.Ref{Input: in, Line: line}
	body := in != nil
	switch {
	case len(rest) == 0:
		body = true
	case rest[0].Kind == lexer.Colon && len(rest) == 2:
		if in != nil {
			in.Label = unescape(rest[1].Value)
		} else {
			ev.Text = unescape(rest[1].Value)
		}
	default:
		return p.errorf(line, "unexpected %s in ref", rest[0])
	}

	lanes, err := p.lanes(names, line)
	if err != nil {
		return err
	}
	ev.Participants = lanes
	if in != nil && spans(lanes, in.Participant) {
		return p.errorf(line, "message into ref must come from outside the box")
	}

	if body {
		text, out, endLine, err := p.refBody(line)
		if err != nil {
			return err
		}
		if out != nil && spans(lanes, out.Participant) {
			return p.errorf(endLine, "message out of ref must go outside the box")
		}
		ev.Text, ev.Output = text, out
	}
	p.emit(ev)
	return nil
}

// refBody collects the lines of a multi-line ref up to "end ref" and
// parses the optional outgoing message on that line.
func (p *parser) refBody(start int) (string, *diagram.Signal, int, error) {
	var lines []string
	for {
		stmt, line := p.nextLine()
		if stmt == nil {
			return "", nil, 0, p.errorf(start, "unterminated ref: missing \"end ref\"")
		}
		if !stmt[0].Is("end") {
			lines = append(lines, unescape(textAfter(stmt, 0)))
			continue
		}
		if !isWord(stmt, 1, "ref") {
			return "", nil, 0, p.errorf(line, "expected \"end ref\"")
		}
		out, err := p.refOutput(stmt[2:], line)
		if err != nil {
			return "", nil, 0, err
		}
		return strings.Trim(strings.Join(lines, "\n"), "\n"), out, line, nil
	}
}

// refOutput parses the "--> C[: label]" tail of an "end ref" line.
func (p *parser) refOutput(rest []lexer.Token, line int) (*diagram.Signal, error) {
	if len(rest) == 0 {
		return nil, nil
	}
	if rest[0].Kind != lexer.Arrow || len(rest) < 2 || !rest[1].IsName() {
		return nil, p.errorf(line, "expected end ref[ --> PARTICIPANT[: label]]")
	}
	op := rest[0].Arrow
	if op.Prefix != 0 || op.Suffix != 0 {
		return nil, p.errorf(line, "activation modifiers are not allowed on a message out of a ref")
	}
	label := ""
	switch {
	case len(rest) == 2:
	case rest[2].Kind == lexer.Colon && len(rest) == 4:
		label = unescape(rest[3].Value)
	default:
		return nil, p.errorf(line, "unexpected %s after end ref", rest[2])
	}
	to, err := p.use(rest[1], line)
	if err != nil {
		return nil, err
	}
	return &diagram.Signal{Participant: to.Index, Label: label, Style: op.Style}, nil
}

// spans reports whether lane lies between the first and last of lanes.
func spans(lanes []int, lane int) bool {
	return lanes[0] <= lane && lane <= lanes[len(lanes)-1]
}
