package diagram

import "fmt"

// Footer controls what is drawn at the bottom of each lifeline.
type Footer int

const (
	// FooterBox repeats the participant header below the lifeline.
	FooterBox Footer = iota
	// FooterBar draws a short horizontal bar.
	FooterBar
	// FooterNone ends the lifeline without decoration.
	FooterNone
)

// ParseFooter converts an option value into a Footer.
func ParseFooter(s string) (Footer, bool) {
	switch s {
	case "box":
		return FooterBox, true
	case "bar":
		return FooterBar, true
	case "none":
		return FooterNone, true
	}
	return FooterBox, false
}

// String returns the option value for the footer.
func (f Footer) String() string {
	switch f {
	case FooterBar:
		return "bar"
	case FooterNone:
		return "none"
	default:
		return "box"
	}
}

// MarshalText encodes the footer as its option value.
func (f Footer) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Warning is a non-fatal remark attached to a source line, such as a
// declaration that was ignored because the name was already registered.
type Warning struct {
	Line    int    `json:"line" yaml:"line"`
	Message string `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// Diagram is the parser's output and the layout engine's input.
type Diagram struct {
	Participants *Table
	Events       []Event
	Warnings     []Warning
}

// New returns an empty diagram.
func New() *Diagram {
	return &Diagram{Participants: NewTable()}
}

// Title returns the text of the last title statement, or "".
func (d *Diagram) Title() string {
	title := ""
	for _, ev := range d.Events {
		if t, ok := ev.(TitleSet); ok {
			title = t.Text
		}
	}
	return title
}

// Footer returns the footer style chosen by the last "option footer=..."
// statement, or FooterBox.
func (d *Diagram) Footer() Footer {
	footer := FooterBox
	for _, ev := range d.Events {
		if o, ok := ev.(OptionSet); ok && o.Key == "footer" {
			if f, ok := ParseFooter(o.Value); ok {
				footer = f
			}
		}
	}
	return footer
}

// MessageCount returns the number of message events.
func (d *Diagram) MessageCount() int {
	n := 0
	for _, ev := range d.Events {
		if _, ok := ev.(Message); ok {
			n++
		}
	}
	return n
}
