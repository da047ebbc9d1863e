package styles

import "bytes"

// Style defines the visual appearance of a sequence diagram.
type Style interface {
	// RenderDefs writes the stylesheet. Rules are scoped to the svg element
	// with the given id.
	RenderDefs(buf *bytes.Buffer, scope string)
	// RenderTitle writes the diagram title.
	RenderTitle(buf *bytes.Buffer, t Text)
	// RenderFrame writes a combined fragment frame with its tab and dividers.
	RenderFrame(buf *bytes.Buffer, f Frame)
	// RenderLifeline writes the vertical line below a participant header.
	RenderLifeline(buf *bytes.Buffer, l Lifeline)
	// RenderBar writes one activation bar.
	RenderBar(buf *bytes.Buffer, b Bar)
	// RenderArrow writes a message arrow and its label.
	RenderArrow(buf *bytes.Buffer, a Arrow)
	// RenderNote writes a note box.
	RenderNote(buf *bytes.Buffer, n Note)
	// RenderState writes a state box.
	RenderState(buf *bytes.Buffer, s State)
	// RenderRef writes an interaction reference box. Its messages are drawn
	// separately with RenderArrow.
	RenderRef(buf *bytes.Buffer, r Ref)
	// RenderHead writes a participant header or footer.
	RenderHead(buf *bytes.Buffer, h Head)
	// RenderCross writes the destroy marker.
	RenderCross(buf *bytes.Buffer, c Cross)
}

// Anchor values accepted by [Text].
const (
	AnchorStart  = "start"
	AnchorMiddle = "middle"
)

// Text is a block of lines. Y is the baseline of the first line.
type Text struct {
	X, Y       float64
	Lines      []string
	Anchor     string
	LineHeight float64
}

// Box is an axis-aligned rectangle given by its top-left corner and size.
type Box struct {
	X, Y, W, H float64
}

// Head is a participant box drawn at the top of a lane, or the matching
// footer at the bottom. Bar footers have zero height.
type Head struct {
	ID     string
	Box    Box
	Label  Text
	Actor  bool
	Footer bool
	Figure float64 // actor figure height; zero for boxes
}

// Lifeline is the dashed vertical line of a lane.
type Lifeline struct {
	ID     string
	X      float64
	Y1, Y2 float64
}

// Bar is an activation bar.
type Bar struct {
	Box   Box
	Depth int
}

// Arrow is a message. A self arrow runs right from (X1, Y1) to LoopX, down
// to Y2 and back left to X2.
type Arrow struct {
	X1, Y1, X2, Y2 float64
	Self           bool
	LoopX          float64
	Dashed         bool
	Open           bool
	Head           float64 // arrowhead length
	Label          Text
}

// Note is a note box with a folded corner.
type Note struct {
	Box  Box
	Text Text
}

// State is a rounded box with centered text.
type State struct {
	Box  Box
	Text Text
}

// Ref is an interaction reference: a box whose left side is cut to a point
// Notch deep, with a "ref" tag in its top-left corner.
type Ref struct {
	Box   Box
	Notch float64
	Tag   Text
	Text  Text
}

// Divider is an else line across a frame.
type Divider struct {
	Y     float64
	Label Text
}

// Frame is a combined fragment: an outline, a keyword tab and optional
// dividers.
type Frame struct {
	Box      Box
	Depth    int
	Tab      Box
	Keyword  Text
	Label    Text
	Dividers []Divider
}

// Cross marks the end of a destroyed lifeline.
type Cross struct {
	X, Y, Size float64
}
