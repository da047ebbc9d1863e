package layout

import "github.com/matzehuels/seqdiag/pkg/seq/diagram"

// Rect is an axis-aligned rectangle. Y grows downward, so Top <= Bottom.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return (r.Top + r.Bottom) / 2 }

// Contains reports whether o lies strictly inside r.
func (r Rect) Contains(o Rect) bool {
	return r.Left < o.Left && r.Right > o.Right && r.Top < o.Top && r.Bottom > o.Bottom
}

// Anchor is the horizontal alignment of a text block.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
)

// Text is a positioned block of lines. Y is the baseline of the first line;
// further lines follow at the text line height.
type Text struct {
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Lines  []string `json:"lines"`
	Anchor Anchor   `json:"anchor"`
}

// Lane is a participant column.
type Lane struct {
	Name  string       `json:"name"`
	Label string       `json:"label"`
	Kind  diagram.Kind `json:"kind"`

	// X is the lifeline center; Width is the measured lane width.
	X     float64 `json:"x"`
	Width float64 `json:"width"`

	Header     Rect `json:"header"`
	HeaderText Text `json:"header_text"`

	// Footer is the zero Rect when the lane has no footer decoration.
	Footer     Rect `json:"footer"`
	FooterText Text `json:"footer_text"`
	HasFooter  bool `json:"has_footer"`

	LifelineTop    float64 `json:"lifeline_top"`
	LifelineBottom float64 `json:"lifeline_bottom"`
	Destroyed      bool    `json:"destroyed"`
}

// Message is a positioned arrow. For a self-message the arrow leaves at
// (X1, Y), runs right to LoopX, down to EndY and back to X2.
type Message struct {
	From   int                `json:"from"`
	To     int                `json:"to"`
	X1     float64            `json:"x1"`
	X2     float64            `json:"x2"`
	Y      float64            `json:"y"`
	EndY   float64            `json:"end_y"`
	Self   bool               `json:"self"`
	LoopX  float64            `json:"loop_x,omitempty"`
	Style  diagram.ArrowStyle `json:"style"`
	Number int                `json:"number,omitempty"`
	Label  Text               `json:"label"`
}

// Note is a positioned note box.
type Note struct {
	Placement diagram.Placement `json:"placement"`
	Rect      Rect              `json:"rect"`
	Text      Text              `json:"text"`
}

// State is a positioned state box with centered text.
type State struct {
	Rect Rect `json:"rect"`
	Text Text `json:"text"`
}

// Ref is a positioned interaction reference. Input runs from a lane to the
// box edge facing it, with To set to -1; Output runs from the box to a
// lane, with From set to -1. Either is nil when absent.
type Ref struct {
	Rect   Rect     `json:"rect"`
	Tag    Text     `json:"tag"`
	Text   Text     `json:"text"`
	Input  *Message `json:"input,omitempty"`
	Output *Message `json:"output,omitempty"`
}

// Divider is an else line inside a block frame.
type Divider struct {
	Y     float64 `json:"y"`
	Label Text    `json:"label"`
}

// Block is a combined fragment frame.
type Block struct {
	Kind     diagram.BlockKind `json:"kind"`
	Rect     Rect              `json:"rect"`
	Depth    int               `json:"depth"`
	Tab      Rect              `json:"tab"`
	TabText  Text              `json:"tab_text"`
	Label    Text              `json:"label"`
	Dividers []Divider         `json:"dividers,omitempty"`

	// MinLane and MaxLane are the leftmost and rightmost lanes touched by
	// the block's content, or -1 when it has none.
	MinLane int `json:"min_lane"`
	MaxLane int `json:"max_lane"`
}

// Activation is one activation bar interval.
type Activation struct {
	Lane  int  `json:"lane"`
	Depth int  `json:"depth"`
	Rect  Rect `json:"rect"`
}

// Destroy is the cross marking the end of a lifeline.
type Destroy struct {
	Lane int     `json:"lane"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
}

// Geometry is the complete positioned scene. Everything an emitter needs
// is here; it performs no layout of its own.
type Geometry struct {
	ViewBox Rect  `json:"view_box"`
	Title   *Text `json:"title,omitempty"`

	Lanes       []Lane       `json:"lanes"`
	Messages    []Message    `json:"messages"`
	Notes       []Note       `json:"notes"`
	States      []State      `json:"states"`
	Refs        []Ref        `json:"refs"`
	Blocks      []Block      `json:"blocks"`
	Activations []Activation `json:"activations"`
	Destroys    []Destroy    `json:"destroys"`

	// Rows holds the y-coordinate of every event, parallel to the
	// diagram's event list.
	Rows []float64 `json:"rows"`

	// Autonumber reports whether any message was numbered.
	Autonumber bool           `json:"autonumber"`
	Footer     diagram.Footer `json:"footer"`

	// Config echoes the spacing used, for emitters that draw decorations
	// sized from it (arrowheads, actor figures).
	Config Config `json:"config"`
}
