package styles

import (
	"bytes"
	"strings"
	"testing"
)

func TestEscapeXML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a<b", "a&lt;b"},
		{"x & y", "x &amp; y"},
		{`"quoted"`, "&#34;quoted&#34;"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := EscapeXML(tt.in); got != tt.want {
				t.Errorf("EscapeXML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderLines(t *testing.T) {
	var buf bytes.Buffer
	RenderLines(&buf, "note-text", Text{X: 10, Y: 20, Lines: []string{"one", "", "three"}, Anchor: AnchorMiddle})
	out := buf.String()

	if n := strings.Count(out, "<text"); n != 2 {
		t.Fatalf("got %d text elements, want 2:\n%s", n, out)
	}
	if !strings.Contains(out, `y="20.0" text-anchor="middle">one</text>`) {
		t.Errorf("first line misplaced:\n%s", out)
	}
	if !strings.Contains(out, `y="52.0" text-anchor="middle">three</text>`) {
		t.Errorf("third line misplaced:\n%s", out)
	}
}

func TestRenderLinesEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderLines(&buf, "x", Text{})
	if buf.Len() != 0 {
		t.Errorf("empty text wrote %q", buf.String())
	}
}

func TestSimpleArrowHeads(t *testing.T) {
	tests := []struct {
		name     string
		arrow    Arrow
		contains []string
		absent   []string
	}{
		{
			name:     "filled solid",
			arrow:    Arrow{X1: 0, Y1: 10, X2: 100, Y2: 10, Head: 9},
			contains: []string{`class="msg"`, `<polygon class="arrowhead" points="91.0,5.5 100.0,10.0 91.0,14.5"`},
			absent:   []string{"reply", "open"},
		},
		{
			name:     "open dashed leftward",
			arrow:    Arrow{X1: 100, Y1: 10, X2: 0, Y2: 10, Head: 9, Dashed: true, Open: true},
			contains: []string{`class="msg reply"`, `<polyline class="arrowhead open" points="9.0,5.5 0.0,10.0 9.0,14.5"`},
		},
		{
			name:     "self loop",
			arrow:    Arrow{X1: 50, Y1: 10, X2: 50, Y2: 30, Self: true, LoopX: 90, Head: 9},
			contains: []string{`d="M50.0,10.0 H90.0 V30.0 H50.0"`, `points="59.0,25.5 50.0,30.0 59.0,34.5"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Simple{}.RenderArrow(&buf, tt.arrow)
			out := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("missing %q in:\n%s", s, out)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(out, s) {
					t.Errorf("unexpected %q in:\n%s", s, out)
				}
			}
		})
	}
}

func TestSimpleHead(t *testing.T) {
	t.Run("box", func(t *testing.T) {
		var buf bytes.Buffer
		Simple{}.RenderHead(&buf, Head{ID: "p-0", Box: Box{X: 0, Y: 0, W: 80, H: 36}, Label: Text{X: 40, Y: 22, Lines: []string{"A&B"}}})
		out := buf.String()
		if !strings.Contains(out, `<rect class="head"`) || !strings.Contains(out, "A&amp;B") {
			t.Errorf("unexpected header:\n%s", out)
		}
	})
	t.Run("actor", func(t *testing.T) {
		var buf bytes.Buffer
		Simple{}.RenderHead(&buf, Head{ID: "p-0", Box: Box{W: 80, H: 56}, Actor: true, Figure: 34})
		out := buf.String()
		if !strings.Contains(out, "<circle") || strings.Contains(out, `class="head"`) {
			t.Errorf("actor should draw a figure without a box:\n%s", out)
		}
	})
	t.Run("bar footer", func(t *testing.T) {
		var buf bytes.Buffer
		Simple{}.RenderHead(&buf, Head{ID: "f-0", Box: Box{X: 10, Y: 200, W: 80}, Footer: true})
		out := buf.String()
		if !strings.Contains(out, `class="foot-bar" x1="10.0" y1="200.0" x2="90.0" y2="200.0"`) {
			t.Errorf("unexpected bar footer:\n%s", out)
		}
	})
}

func TestSimpleDefsScope(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderDefs(&buf, "diag1")
	out := buf.String()
	if !strings.Contains(out, "#diag1 .msg.reply") {
		t.Errorf("stylesheet not scoped:\n%s", out)
	}
	if strings.Contains(out, "%!") {
		t.Errorf("format verb leaked into stylesheet:\n%s", out)
	}
}

func TestSimpleFrame(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderFrame(&buf, Frame{
		Box:      Box{X: 10, Y: 10, W: 200, H: 100},
		Tab:      Box{X: 10, Y: 10, W: 40, H: 20},
		Keyword:  Text{X: 18, Y: 24, Lines: []string{"alt"}},
		Label:    Text{X: 55, Y: 24, Lines: []string{"[ok]"}},
		Dividers: []Divider{{Y: 60, Label: Text{X: 18, Y: 76, Lines: []string{"[fail]"}}}},
	})
	out := buf.String()
	for _, s := range []string{`class="frame"`, ">alt</text>", ">[ok]</text>", `y1="60.0"`, ">[fail]</text>"} {
		if !strings.Contains(out, s) {
			t.Errorf("missing %q in:\n%s", s, out)
		}
	}
}

func TestSimpleState(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderState(&buf, State{
		Box:  Box{X: 10, Y: 20, W: 80, H: 10},
		Text: Text{X: 50, Y: 28, Lines: []string{"idle"}, Anchor: AnchorMiddle},
	})
	out := buf.String()
	for _, s := range []string{
		`<rect class="state" x="10.0" y="20.0" width="80.0" height="10.0" rx="5.0"/>`,
		`text-anchor="middle">idle</text>`,
	} {
		if !strings.Contains(out, s) {
			t.Errorf("missing %q in:\n%s", s, out)
		}
	}
}

func TestSimpleRef(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderRef(&buf, Ref{
		Box:   Box{X: 10, Y: 20, W: 100, H: 40},
		Notch: 10,
		Tag:   Text{X: 24, Y: 40, Lines: []string{"ref"}},
		Text:  Text{X: 60, Y: 56, Lines: []string{"login"}, Anchor: AnchorMiddle},
	})
	out := buf.String()
	for _, s := range []string{
		`<path class="ref" d="M20.0,20.0 H110.0 V60.0 H20.0 L10.0,40.0 Z"/>`,
		`class="ref-tag"`,
		`>login</text>`,
	} {
		if !strings.Contains(out, s) {
			t.Errorf("missing %q in:\n%s", s, out)
		}
	}
}
