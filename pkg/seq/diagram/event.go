package diagram

// Event is one statement of the diagram in source order.
//
// The set of implementations is closed; see the package documentation.
type Event interface {
	// SourceLine returns the 1-based line the event was parsed from.
	SourceLine() int
	event()
}

// ArrowStyle is the visual style of a message arrow.
type ArrowStyle int

const (
	// ArrowSync is "->": solid line, filled head.
	ArrowSync ArrowStyle = iota
	// ArrowSyncOpen is "->>": solid line, open head.
	ArrowSyncOpen
	// ArrowReply is "-->": dashed line, filled head.
	ArrowReply
	// ArrowReplyOpen is "-->>": dashed line, open head.
	ArrowReplyOpen
)

var arrowGlyphs = [...]string{
	ArrowSync:      "->",
	ArrowSyncOpen:  "->>",
	ArrowReply:     "-->",
	ArrowReplyOpen: "-->>",
}

// String returns the arrow glyphs as written in source.
func (s ArrowStyle) String() string {
	if s < 0 || int(s) >= len(arrowGlyphs) {
		return "?"
	}
	return arrowGlyphs[s]
}

// MarshalText encodes the style as its glyphs.
func (s ArrowStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Dashed reports whether the arrow line is dashed.
func (s ArrowStyle) Dashed() bool {
	return s == ArrowReply || s == ArrowReplyOpen
}

// OpenHead reports whether the arrowhead is drawn open instead of filled.
func (s ArrowStyle) OpenHead() bool {
	return s == ArrowSyncOpen || s == ArrowReplyOpen
}

// ActivationDelta is the activation change attached to a message.
type ActivationDelta int

const (
	DeltaNone ActivationDelta = iota
	// DeltaActivateTarget pushes an activation on the message target.
	DeltaActivateTarget
	// DeltaDeactivateSource pops an activation from the message source.
	DeltaDeactivateSource
)

// String returns a short name for the delta.
func (d ActivationDelta) String() string {
	switch d {
	case DeltaActivateTarget:
		return "activate-target"
	case DeltaDeactivateSource:
		return "deactivate-source"
	default:
		return "none"
	}
}

// MarshalText encodes the delta as its short name.
func (d ActivationDelta) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Placement positions a note relative to its participants.
type Placement int

const (
	PlaceLeftOf Placement = iota
	PlaceRightOf
	PlaceOver
)

// String returns the placement as written in source.
func (p Placement) String() string {
	switch p {
	case PlaceLeftOf:
		return "left of"
	case PlaceRightOf:
		return "right of"
	default:
		return "over"
	}
}

// MarshalText encodes the placement as written in source.
func (p Placement) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// BlockKind is the operator of a combined fragment.
type BlockKind int

const (
	BlockAlt BlockKind = iota
	BlockOpt
	BlockLoop
	BlockPar
)

// String returns the operator keyword.
func (k BlockKind) String() string {
	switch k {
	case BlockOpt:
		return "opt"
	case BlockLoop:
		return "loop"
	case BlockPar:
		return "par"
	default:
		return "alt"
	}
}

// MarshalText encodes the kind as its keyword.
func (k BlockKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Message is an arrow from one participant to another. From == To is a
// self-message.
type Message struct {
	From, To int
	Label    string
	Style    ArrowStyle
	Delta    ActivationDelta
	Line     int
}

// IsSelf reports whether the message starts and ends on the same lane.
func (m Message) IsSelf() bool { return m.From == m.To }

// Note is free text attached to one participant, or spanning two with
// PlaceOver. Participants holds lane indexes in ascending order.
type Note struct {
	Placement    Placement
	Participants []int
	Text         string
	Line         int
}

// State is a rounded box of text over one or more lanes. Participants
// holds lane indexes in ascending order.
type State struct {
	Participants []int
	Text         string
	Line         int
}

// Signal is a message that enters or leaves a [Ref] box rather than a lane.
type Signal struct {
	Participant int
	Label       string
	Style       ArrowStyle
}

// Ref is a box standing for an interaction described elsewhere. It spans
// Participants like an over-note. Input is the message entering the box
// and Output the one leaving it; either may be nil.
type Ref struct {
	Participants []int
	Text         string
	Input        *Signal
	Output       *Signal
	Line         int
}

// BlockOpen starts a combined fragment.
type BlockOpen struct {
	Kind  BlockKind
	Label string
	Line  int
}

// BlockElse starts a new section of the innermost open fragment.
type BlockElse struct {
	Label string
	Line  int
}

// BlockClose ends the innermost open fragment.
type BlockClose struct {
	Line int
}

// Activate pushes an activation on a participant.
type Activate struct {
	Participant int
	Line        int
}

// Deactivate pops an activation from a participant. At depth zero it has no
// effect.
type Deactivate struct {
	Participant int
	Line        int
}

// Destroy ends a participant's lifeline.
type Destroy struct {
	Participant int
	Line        int
}

// TitleSet sets the diagram title. The last one wins.
type TitleSet struct {
	Text string
	Line int
}

// AutonumberToggle switches message numbering. The counter is never reset.
type AutonumberToggle struct {
	On   bool
	Line int
}

// OptionSet is a "option key=value" directive.
type OptionSet struct {
	Key, Value string
	Line       int
}

func (e Message) SourceLine() int          { return e.Line }
func (e Note) SourceLine() int             { return e.Line }
func (e State) SourceLine() int            { return e.Line }
func (e Ref) SourceLine() int              { return e.Line }
func (e BlockOpen) SourceLine() int        { return e.Line }
func (e BlockElse) SourceLine() int        { return e.Line }
func (e BlockClose) SourceLine() int       { return e.Line }
func (e Activate) SourceLine() int         { return e.Line }
func (e Deactivate) SourceLine() int       { return e.Line }
func (e Destroy) SourceLine() int          { return e.Line }
func (e TitleSet) SourceLine() int         { return e.Line }
func (e AutonumberToggle) SourceLine() int { return e.Line }
func (e OptionSet) SourceLine() int        { return e.Line }

func (Message) event()          {}
func (Note) event()             {}
func (State) event()            {}
func (Ref) event()              {}
func (BlockOpen) event()        {}
func (BlockElse) event()        {}
func (BlockClose) event()       {}
func (Activate) event()         {}
func (Deactivate) event()       {}
func (Destroy) event()          {}
func (TitleSet) event()         {}
func (AutonumberToggle) event() {}
func (OptionSet) event()        {}

// TypeName returns a stable lower-case name for the event variant, used by
// dumps and logs.
func TypeName(ev Event) string {
	switch ev.(type) {
	case Message:
		return "message"
	case Note:
		return "note"
	case State:
		return "state"
	case Ref:
		return "ref"
	case BlockOpen:
		return "block_open"
	case BlockElse:
		return "block_else"
	case BlockClose:
		return "block_close"
	case Activate:
		return "activate"
	case Deactivate:
		return "deactivate"
	case Destroy:
		return "destroy"
	case TitleSet:
		return "title"
	case AutonumberToggle:
		return "autonumber"
	case OptionSet:
		return "option"
	default:
		return "unknown"
	}
}
