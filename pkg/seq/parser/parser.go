// Package parser turns sequence diagram source into a [diagram.Diagram].
//
// The parser consumes the token stream of the whole document produced by
// [lexer.Tokenize], one statement per line, and builds the participant
// table and the ordered event list in a single pass. It keeps a stack of
// open combined fragments so that every "end" and "else" matches the
// innermost open block.
//
// The first problem aborts parsing. Lexical problems are returned as
// [*lexer.Error]; everything else as [*Error]. Both carry the 1-based
// source line.
package parser

import (
	"fmt"
	"strings"

	"github.com/matzehuels/seqdiag/pkg/seq/diagram"
	"github.com/matzehuels/seqdiag/pkg/seq/lexer"
)

// Error is a syntax or semantic error at a source line.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Parse tokenizes and parses src.
func Parse(src string) (*diagram.Diagram, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// ParseTokens parses a complete token stream as produced by
// [lexer.Tokenize]. The stream must end with an EOF token.
func ParseTokens(toks []lexer.Token) (*diagram.Diagram, error) {
	p := &parser{
		toks:     toks,
		d:        diagram.New(),
		declared: make(map[string]int),
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.d, nil
}

type openBlock struct {
	kind diagram.BlockKind
	line int
}

type parser struct {
	toks []lexer.Token
	pos  int
	d    *diagram.Diagram

	blocks   []openBlock
	declared map[string]int // participant name -> line of first mention
}

func (p *parser) errorf(line int, format string, args ...any) error {
	return &Error{Line: line, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) warnf(line int, format string, args ...any) {
	p.d.Warnings = append(p.d.Warnings, diagram.Warning{Line: line, Message: fmt.Sprintf(format, args...)})
}

func (p *parser) emit(ev diagram.Event) {
	p.d.Events = append(p.d.Events, ev)
}

// nextLine returns the tokens of the next statement without its EOL, or
// nil at EOF.
func (p *parser) nextLine() ([]lexer.Token, int) {
	if p.pos >= len(p.toks) || p.toks[p.pos].Kind == lexer.EOF {
		line := 1
		if p.pos < len(p.toks) {
			line = p.toks[p.pos].Line
		}
		return nil, line
	}
	start := p.pos
	for p.pos < len(p.toks) && p.toks[p.pos].Kind != lexer.EOL && p.toks[p.pos].Kind != lexer.EOF {
		p.pos++
	}
	line := p.toks[start].Line
	stmt := p.toks[start:p.pos]
	if p.pos < len(p.toks) && p.toks[p.pos].Kind == lexer.EOL {
		p.pos++
	}
	return stmt, line
}

func (p *parser) run() error {
	for {
		stmt, line := p.nextLine()
		if stmt == nil {
			if n := len(p.blocks); n > 0 {
				b := p.blocks[n-1]
				return p.errorf(b.line, "unterminated %s block: reached end of input", b.kind)
			}
			return nil
		}
		if err := p.statement(stmt, line); err != nil {
			return err
		}
	}
}

func (p *parser) statement(stmt []lexer.Token, line int) error {
	first := stmt[0]
	switch first.Kind {
	case lexer.Invalid:
		return p.errorf(line, "unrecognized statement %q", first.Value)
	case lexer.Ident, lexer.String:
		return p.message(stmt, line)
	case lexer.Keyword:
	default:
		return p.errorf(line, "unexpected %s", first)
	}

	switch first.Value {
	case "title":
		p.emit(diagram.TitleSet{Text: unescape(textAfter(stmt, 1)), Line: line})
		return nil
	case "participant":
		return p.declare(stmt, line, diagram.KindParticipant)
	case "actor":
		return p.declare(stmt, line, diagram.KindActor)
	case "note":
		return p.note(stmt, line)
	case "state":
		return p.state(stmt, line)
	case "ref":
		return p.ref(stmt, line)
	case "alt", "opt", "loop", "par":
		kind := blockKinds[first.Value]
		p.blocks = append(p.blocks, openBlock{kind: kind, line: line})
		p.emit(diagram.BlockOpen{Kind: kind, Label: unescape(textAfter(stmt, 1)), Line: line})
		return nil
	case "else":
		if len(p.blocks) == 0 {
			return p.errorf(line, "else without matching block")
		}
		p.emit(diagram.BlockElse{Label: unescape(textAfter(stmt, 1)), Line: line})
		return nil
	case "end":
		return p.end(stmt, line)
	case "activate", "deactivate", "destroy":
		return p.lifecycle(stmt, line)
	case "autonumber":
		return p.autonumber(stmt, line)
	case "option":
		return p.option(stmt, line)
	}
	return p.errorf(line, "unexpected keyword %q", first.Value)
}

var blockKinds = map[string]diagram.BlockKind{
	"alt":  diagram.BlockAlt,
	"opt":  diagram.BlockOpt,
	"loop": diagram.BlockLoop,
	"par":  diagram.BlockPar,
}

func (p *parser) end(stmt []lexer.Token, line int) error {
	if len(stmt) == 2 && isWord(stmt, 1, "note") {
		return p.errorf(line, "end note without matching note")
	}
	if isWord(stmt, 1, "ref") {
		return p.errorf(line, "end ref without matching ref")
	}
	if len(stmt) > 1 {
		return p.errorf(line, "unexpected %s after end", stmt[1])
	}
	if len(p.blocks) == 0 {
		return p.errorf(line, "end without matching block")
	}
	p.blocks = p.blocks[:len(p.blocks)-1]
	p.emit(diagram.BlockClose{Line: line})
	return nil
}

// message parses "A -> B: label" with any arrow form.
func (p *parser) message(stmt []lexer.Token, line int) error {
	if lexer.IsRefInput(stmt) {
		return p.refInput(stmt, line)
	}
	if len(stmt) < 3 || stmt[1].Kind != lexer.Arrow {
		return p.errorf(line, "expected arrow after %q", stmt[0].Value)
	}
	if !stmt[2].IsName() {
		return p.errorf(line, "expected participant name after %q", stmt[1].Value)
	}
	label := ""
	switch {
	case len(stmt) == 3:
	case stmt[3].Kind == lexer.Colon && len(stmt) == 5:
		label = unescape(stmt[4].Value)
	default:
		return p.errorf(line, "unexpected %s in message", stmt[3])
	}

	op := stmt[1].Arrow
	delta := diagram.DeltaNone
	if op.Prefix != 0 && op.Suffix != 0 {
		return p.errorf(line, "malformed arrow %q: at most one activation modifier", stmt[1].Value)
	}
	switch op.Prefix | op.Suffix {
	case '+':
		delta = diagram.DeltaActivateTarget
	case '-':
		delta = diagram.DeltaDeactivateSource
	}

	from, err := p.use(stmt[0], line)
	if err != nil {
		return err
	}
	to, err := p.use(stmt[2], line)
	if err != nil {
		return err
	}

	switch delta {
	case diagram.DeltaActivateTarget:
		to.Depth++
	case diagram.DeltaDeactivateSource:
		if from.Depth > 0 {
			from.Depth--
		}
	}

	p.emit(diagram.Message{
		From:  from.Index,
		To:    to.Index,
		Label: label,
		Style: op.Style,
		Delta: delta,
		Line:  line,
	})
	return nil
}

// declare parses "participant NAME [as ALIAS]" and "actor ...".
func (p *parser) declare(stmt []lexer.Token, line int, kind diagram.Kind) error {
	keyword := stmt[0].Value
	if len(stmt) < 2 || !stmt[1].IsName() {
		return p.errorf(line, "expected name after %s", keyword)
	}
	name := stmt[1].Value
	label := unescape(name)
	switch {
	case len(stmt) == 2:
	case len(stmt) == 4 && stmt[2].Kind == lexer.Ident && stmt[2].Value == "as" && stmt[3].IsName():
		name = stmt[3].Value
	default:
		return p.errorf(line, "expected %s NAME [as ALIAS]", keyword)
	}
	if name == "" {
		return p.errorf(line, "participant name cannot be empty")
	}

	existing, ok := p.d.Participants.Lookup(name)
	if ok {
		if existing.Destroyed {
			return p.errorf(line, "participant %q was destroyed", name)
		}
		p.warnf(line, "participant %q already registered on line %d; declaration ignored", name, p.declared[name])
		return nil
	}
	p.d.Participants.Register(name, label, kind)
	p.declared[name] = line
	return nil
}

// use resolves a participant reference, registering it on first mention.
func (p *parser) use(tok lexer.Token, line int) (*diagram.Participant, error) {
	name := tok.Value
	if name == "" {
		return nil, p.errorf(line, "participant name cannot be empty")
	}
	pt, created := p.d.Participants.Register(name, unescape(name), diagram.KindParticipant)
	if created {
		p.declared[name] = line
		return pt, nil
	}
	if pt.Destroyed {
		return nil, p.errorf(line, "participant %q was destroyed", name)
	}
	return pt, nil
}

func (p *parser) lifecycle(stmt []lexer.Token, line int) error {
	keyword := stmt[0].Value
	if len(stmt) != 2 || !stmt[1].IsName() {
		return p.errorf(line, "expected %s NAME", keyword)
	}
	pt, err := p.use(stmt[1], line)
	if err != nil {
		return err
	}
	switch keyword {
	case "activate":
		pt.Depth++
		p.emit(diagram.Activate{Participant: pt.Index, Line: line})
	case "deactivate":
		if pt.Depth > 0 {
			pt.Depth--
		}
		p.emit(diagram.Deactivate{Participant: pt.Index, Line: line})
	case "destroy":
		pt.Destroyed = true
		pt.Depth = 0
		p.emit(diagram.Destroy{Participant: pt.Index, Line: line})
	}
	return nil
}

func (p *parser) autonumber(stmt []lexer.Token, line int) error {
	on := true
	switch {
	case len(stmt) == 1:
	case len(stmt) == 2 && stmt[1].Kind == lexer.Ident && stmt[1].Value == "off":
		on = false
	case len(stmt) == 2 && stmt[1].Kind == lexer.Ident && stmt[1].Value == "on":
	default:
		return p.errorf(line, "expected autonumber [on|off]")
	}
	p.emit(diagram.AutonumberToggle{On: on, Line: line})
	return nil
}

// option parses "option key=value".
func (p *parser) option(stmt []lexer.Token, line int) error {
	if len(stmt) != 2 || stmt[1].Kind != lexer.Ident {
		return p.errorf(line, "expected option KEY=VALUE")
	}
	key, value, ok := strings.Cut(stmt[1].Value, "=")
	if !ok || key == "" {
		return p.errorf(line, "expected option KEY=VALUE")
	}
	switch key {
	case "footer":
		if _, ok := diagram.ParseFooter(value); !ok {
			return p.errorf(line, "invalid footer %q (must be one of: box, bar, none)", value)
		}
	default:
		p.warnf(line, "unknown option %q ignored", key)
		return nil
	}
	p.emit(diagram.OptionSet{Key: key, Value: value, Line: line})
	return nil
}

// textAfter returns the value of the Text token at i, or "".
func textAfter(stmt []lexer.Token, i int) string {
	if i < len(stmt) && stmt[i].Kind == lexer.Text {
		return stmt[i].Value
	}
	return ""
}

// unescape turns the two-character sequence \n into a line break.
func unescape(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
