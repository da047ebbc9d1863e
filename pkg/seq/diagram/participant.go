package diagram

import "slices"

// Kind distinguishes how a participant's header is drawn.
type Kind int

const (
	// KindParticipant is drawn as a labelled box.
	KindParticipant Kind = iota
	// KindActor is drawn as a stick figure above its label.
	KindActor
)

// String returns the keyword that declares the kind.
func (k Kind) String() string {
	if k == KindActor {
		return "actor"
	}
	return "participant"
}

// MarshalText encodes the kind as its keyword.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Participant is a named lane in the diagram.
type Participant struct {
	Name  string // Identifier used to reference the participant (alias if one was given)
	Label string // Display text; equal to Name unless declared with "as"
	Kind  Kind

	// Index is the lane position, assigned at registration.
	Index int

	// Destroyed is set once a destroy event has been parsed. Later references
	// are rejected by the parser.
	Destroyed bool

	// Depth is the activation depth after the last parsed event. It never
	// goes below zero.
	Depth int
}

// Table stores participants in registration order.
//
// The zero value is ready to use.
type Table struct {
	list   []*Participant
	byName map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{byName: make(map[string]int)}
}

// Register adds a participant under name if it is not already present and
// returns it. The second result reports whether a new entry was created.
// An existing participant is returned unchanged, so the first registration
// always wins.
func (t *Table) Register(name, label string, kind Kind) (*Participant, bool) {
	if p, ok := t.Lookup(name); ok {
		return p, false
	}
	if t.byName == nil {
		t.byName = make(map[string]int)
	}
	if label == "" {
		label = name
	}
	p := &Participant{
		Name:  name,
		Label: label,
		Kind:  kind,
		Index: len(t.list),
	}
	t.list = append(t.list, p)
	t.byName[name] = p.Index
	return p, true
}

// Lookup returns the participant registered under name.
func (t *Table) Lookup(name string) (*Participant, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.list[i], true
}

// At returns the participant in lane i. It panics if i is out of range.
func (t *Table) At(i int) *Participant {
	return t.list[i]
}

// Len returns the number of registered participants.
func (t *Table) Len() int {
	return len(t.list)
}

// All returns the participants in lane order. The slice is a copy; the
// participants themselves are shared.
func (t *Table) All() []*Participant {
	return slices.Clone(t.list)
}

// Names returns participant names in lane order.
func (t *Table) Names() []string {
	names := make([]string, len(t.list))
	for i, p := range t.list {
		names[i] = p.Name
	}
	return names
}
