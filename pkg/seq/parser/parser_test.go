package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/seqdiag/pkg/seq/diagram"
	"github.com/matzehuels/seqdiag/pkg/seq/lexer"
)

func mustParse(t *testing.T, src string) *diagram.Diagram {
	t.Helper()
	d, err := Parse(src)
	require.NoError(t, err)
	return d
}

func TestParseSimpleMessage(t *testing.T) {
	d := mustParse(t, "Alice->Bob: Hello")

	require.Equal(t, 2, d.Participants.Len())
	assert.Equal(t, []string{"Alice", "Bob"}, d.Participants.Names())
	require.Len(t, d.Events, 1)

	msg, ok := d.Events[0].(diagram.Message)
	require.True(t, ok)
	assert.Equal(t, diagram.Message{From: 0, To: 1, Label: "Hello", Style: diagram.ArrowSync, Line: 1}, msg)
}

func TestParseArrowStylesAndModifiers(t *testing.T) {
	tests := []struct {
		src   string
		style diagram.ArrowStyle
		delta diagram.ActivationDelta
	}{
		{"A->B", diagram.ArrowSync, diagram.DeltaNone},
		{"A->>B", diagram.ArrowSyncOpen, diagram.DeltaNone},
		{"A-->B", diagram.ArrowReply, diagram.DeltaNone},
		{"A-->>B", diagram.ArrowReplyOpen, diagram.DeltaNone},
		{"A->+B", diagram.ArrowSync, diagram.DeltaActivateTarget},
		{"A+->B", diagram.ArrowSync, diagram.DeltaActivateTarget},
		{"A-->-B", diagram.ArrowReply, diagram.DeltaDeactivateSource},
		{"A--->B", diagram.ArrowReply, diagram.DeltaDeactivateSource},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			d := mustParse(t, tt.src)
			msg := d.Events[0].(diagram.Message)
			assert.Equal(t, tt.style, msg.Style)
			assert.Equal(t, tt.delta, msg.Delta)
			assert.Empty(t, msg.Label)
		})
	}
}

func TestParseParticipants(t *testing.T) {
	src := `participant "Web Server" as W
actor User
User->W: GET /
W->DB: query
participant DB`
	d := mustParse(t, src)

	require.Equal(t, 3, d.Participants.Len())
	w := d.Participants.At(0)
	assert.Equal(t, "W", w.Name)
	assert.Equal(t, "Web Server", w.Label)
	assert.Equal(t, diagram.KindParticipant, w.Kind)

	user := d.Participants.At(1)
	assert.Equal(t, diagram.KindActor, user.Kind)

	db := d.Participants.At(2)
	assert.Equal(t, "DB", db.Name)

	// The late declaration of DB does not move or re-register it.
	require.Len(t, d.Warnings, 1)
	assert.Equal(t, 5, d.Warnings[0].Line)
	assert.Contains(t, d.Warnings[0].Message, "line 4")
}

func TestParseAliasUsedBeforeDeclaration(t *testing.T) {
	d := mustParse(t, "X->Y: hi\nparticipant \"Long X\" as X")

	x := d.Participants.At(0)
	assert.Equal(t, "X", x.Name)
	assert.Equal(t, "X", x.Label, "first textual occurrence wins")
	assert.Len(t, d.Warnings, 1)
}

func TestParseLabelEscapes(t *testing.T) {
	d := mustParse(t, "participant \"Line\\nBreak\" as L\nL->L: one\\ntwo")
	assert.Equal(t, "Line\nBreak", d.Participants.At(0).Label)
	assert.Equal(t, "one\ntwo", d.Events[0].(diagram.Message).Label)
}

func TestParseNotes(t *testing.T) {
	src := `note left of A: left
note right of B: right
note over B,A: shared
note over A
  first
  second
end note`
	d := mustParse(t, src)
	require.Len(t, d.Events, 4)

	left := d.Events[0].(diagram.Note)
	assert.Equal(t, diagram.PlaceLeftOf, left.Placement)
	assert.Equal(t, []int{0}, left.Participants)

	right := d.Events[1].(diagram.Note)
	assert.Equal(t, diagram.PlaceRightOf, right.Placement)
	assert.Equal(t, []int{1}, right.Participants)

	shared := d.Events[2].(diagram.Note)
	assert.Equal(t, []int{0, 1}, shared.Participants, "lanes are sorted")
	assert.Equal(t, "shared", shared.Text)

	multi := d.Events[3].(diagram.Note)
	assert.Equal(t, "first\nsecond", multi.Text)
	assert.Equal(t, 4, multi.Line)
}

func TestParseStates(t *testing.T) {
	d := mustParse(t, "A->B: hi\nstate over B: idle\nstate over C, A: waiting\\nfor input")
	require.Len(t, d.Events, 3)
	assert.Equal(t, diagram.State{Participants: []int{1}, Text: "idle", Line: 2}, d.Events[1])
	assert.Equal(t, diagram.State{Participants: []int{0, 2}, Text: "waiting\nfor input", Line: 3}, d.Events[2])
	assert.Equal(t, "state", diagram.TypeName(d.Events[1]))
}

func TestParseRefs(t *testing.T) {
	src := `ref over A, B: login
ref over B
  see the
  checkout flow
end ref
Client->ref over A, B: begin
  handshake
end ref-->>Client: session
Client->ref over A
end ref`
	d := mustParse(t, src)
	require.Len(t, d.Events, 4)
	assert.Equal(t, []string{"A", "B", "Client"}, d.Participants.Names())

	assert.Equal(t, diagram.Ref{Participants: []int{0, 1}, Text: "login", Line: 1}, d.Events[0])
	assert.Equal(t, diagram.Ref{Participants: []int{1}, Text: "see the\ncheckout flow", Line: 2}, d.Events[1])

	signals := d.Events[2].(diagram.Ref)
	assert.Equal(t, "handshake", signals.Text)
	assert.Equal(t, &diagram.Signal{Participant: 2, Label: "begin", Style: diagram.ArrowSync}, signals.Input)
	assert.Equal(t, &diagram.Signal{Participant: 2, Label: "session", Style: diagram.ArrowReplyOpen}, signals.Output)
	assert.Equal(t, 6, signals.Line)

	bare := d.Events[3].(diagram.Ref)
	assert.Equal(t, "", bare.Text)
	require.NotNil(t, bare.Input)
	assert.Equal(t, "", bare.Input.Label)
	assert.Nil(t, bare.Output)
	assert.Equal(t, "ref", diagram.TypeName(bare))
}

func TestParseBlocks(t *testing.T) {
	src := `alt ok
A->B: yes
else fail
A->B: no
loop
opt maybe
end
end
end
par together
end`
	d := mustParse(t, src)

	var names []string
	for _, ev := range d.Events {
		names = append(names, diagram.TypeName(ev))
	}
	assert.Equal(t, []string{
		"block_open", "message", "block_else", "message",
		"block_open", "block_open", "block_close", "block_close", "block_close",
		"block_open", "block_close",
	}, names)

	assert.Equal(t, diagram.BlockOpen{Kind: diagram.BlockAlt, Label: "ok", Line: 1}, d.Events[0])
	assert.Equal(t, diagram.BlockElse{Label: "fail", Line: 3}, d.Events[2])
	assert.Equal(t, diagram.BlockLoop, d.Events[4].(diagram.BlockOpen).Kind)
	assert.Equal(t, "", d.Events[4].(diagram.BlockOpen).Label)
	assert.Equal(t, diagram.BlockPar, d.Events[9].(diagram.BlockOpen).Kind)
}

func TestParseActivationDepth(t *testing.T) {
	d := mustParse(t, `deactivate A
activate A
A->+B: call
B-->-A: ret
activate A`)

	a := d.Participants.At(0)
	b := d.Participants.At(1)
	assert.Equal(t, 2, a.Depth)
	assert.Equal(t, 0, b.Depth)
	assert.IsType(t, diagram.Deactivate{}, d.Events[0], "deactivate at depth zero is kept")
}

func TestParseSettings(t *testing.T) {
	d := mustParse(t, `title Checkout Flow
autonumber
A->B: one
autonumber off
option footer=none
option color=red`)

	assert.Equal(t, "Checkout Flow", d.Title())
	assert.Equal(t, diagram.FooterNone, d.Footer())
	assert.Equal(t, diagram.AutonumberToggle{On: true, Line: 2}, d.Events[1])
	assert.Equal(t, diagram.AutonumberToggle{On: false, Line: 4}, d.Events[3])
	require.Len(t, d.Warnings, 1)
	assert.Contains(t, d.Warnings[0].Message, "color")
}

func TestParseDestroy(t *testing.T) {
	d := mustParse(t, "A->B: bye\ndestroy B")
	assert.True(t, d.Participants.At(1).Destroyed)
	assert.Equal(t, diagram.Destroy{Participant: 1, Line: 2}, d.Events[1])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"unmatched end", "A->B\nend", 2, "end without matching block"},
		{"else outside block", "else nope", 1, "else without matching block"},
		{"unterminated alt", "alt x\nA->B: hi", 1, "unterminated alt block"},
		{"innermost unterminated", "loop\nend\nopt a\nloop b\nend", 3, "unterminated opt block"},
		{"unterminated note", "note over A\ntext", 1, "unterminated note"},
		{"stray end note", "end note", 1, "end note without matching note"},
		{"destroyed reference", "A->B\ndestroy B\nA->B: again", 3, `participant "B" was destroyed`},
		{"destroyed note", "destroy A\nnote over A: x", 2, "destroyed"},
		{"destroyed declaration", "destroy A\nparticipant A", 2, "destroyed"},
		{"unrecognized", "A->B\nthis is not valid", 2, "unrecognized statement"},
		{"two modifiers", "A+->+B", 1, "at most one activation modifier"},
		{"missing target", "A->: hi", 1, "expected participant name"},
		{"note left of two", "note left of A,B: x", 1, "accepts one participant"},
		{"note three", "note over A,B,C: x", 1, "at most two"},
		{"autonumber arg", "autonumber 5", 1, "autonumber"},
		{"bad footer", "option footer=huge", 1, "invalid footer"},
		{"end with junk", "alt\nend alt", 2, "after end"},
		{"state without text", "state over A", 1, "state needs text"},
		{"state without over", "state A: x", 1, "expected state over"},
		{"ref without over", "ref A: x", 1, "expected ref over"},
		{"unterminated ref", "ref over A\ntext", 1, "unterminated ref"},
		{"stray end ref", "end ref", 1, "end ref without matching ref"},
		{"ref input from inside", "A->ref over A, B: x\nend ref", 1, "from outside the box"},
		{"ref output inside", "A->B\nref over A, C\nend ref-->B", 3, "outside the box"},
		{"ref input modifier", "C->+ref over A\nend ref", 1, "activation modifiers"},
		{"ref output junk", "ref over A\nend ref-->B C", 2, "after end ref"},
		{"ref destroyed", "destroy A\nref over A: x", 2, "destroyed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			var perr *Error
			require.True(t, errors.As(err, &perr), "want *parser.Error, got %T", err)
			assert.Equal(t, tt.line, perr.Line)
			assert.Contains(t, perr.Message, tt.msg)
		})
	}
}

func TestParseLexErrorPassesThrough(t *testing.T) {
	_, err := Parse("A->B\n\"unterminated->B")
	require.Error(t, err)
	var lexErr *lexer.Error
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, 2, lexErr.Line)
}

func TestParseIgnoresBlankAndComments(t *testing.T) {
	d := mustParse(t, "\n  # comment\n\nA->B: x\n   \n")
	require.Len(t, d.Events, 1)
	assert.Equal(t, 4, d.Events[0].SourceLine())
}

func TestParseEmpty(t *testing.T) {
	d := mustParse(t, "")
	assert.Equal(t, 0, d.Participants.Len())
	assert.Empty(t, d.Events)
}
