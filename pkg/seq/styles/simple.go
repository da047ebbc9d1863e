package styles

import (
	"bytes"
	"fmt"
)

// Simple is the default flat style.
type Simple struct{}

const simpleCSS = `
    %[1]s text { font-family: Helvetica, Arial, sans-serif; font-size: 13px; fill: #1a1a1a; }
    %[1]s .title { font-size: 16px; font-weight: bold; }
    %[1]s .head { fill: #eef2f7; stroke: #3b4a5a; stroke-width: 1.2; }
    %[1]s .foot-bar { stroke: #3b4a5a; stroke-width: 2; }
    %[1]s .actor { fill: none; stroke: #3b4a5a; stroke-width: 1.5; }
    %[1]s .lifeline { stroke: #8a96a3; stroke-width: 1; stroke-dasharray: 4 4; }
    %[1]s .bar { fill: #f7f7f7; stroke: #3b4a5a; stroke-width: 1; }
    %[1]s .msg { fill: none; stroke: #1a1a1a; stroke-width: 1.2; }
    %[1]s .msg.reply { stroke-dasharray: 6 4; }
    %[1]s .arrowhead { fill: #1a1a1a; stroke: #1a1a1a; stroke-width: 1.2; }
    %[1]s .arrowhead.open { fill: none; }
    %[1]s .note { fill: #fff8c4; stroke: #b39b3c; stroke-width: 1; }
    %[1]s .state { fill: #e6f2e8; stroke: #4a7a55; stroke-width: 1.2; }
    %[1]s .ref { fill: #f3f0f8; stroke: #5b4a7a; stroke-width: 1.5; }
    %[1]s .ref-tag { font-size: 11px; font-weight: bold; }
    %[1]s .frame { fill: none; stroke: #5a6772; stroke-width: 1.2; }
    %[1]s .frame-tab { fill: #e4e9ee; stroke: #5a6772; stroke-width: 1.2; }
    %[1]s .frame-divider { stroke: #5a6772; stroke-width: 1; stroke-dasharray: 5 3; }
    %[1]s .frame-keyword { font-weight: bold; }
    %[1]s .frame-label, %[1]s .msg-label { font-size: 12px; }
    %[1]s .cross { stroke: #b3261e; stroke-width: 2; }`

func (Simple) RenderDefs(buf *bytes.Buffer, scope string) {
	sel := "svg"
	if scope != "" {
		sel = "#" + scope
	}
	buf.WriteString("  <style>")
	fmt.Fprintf(buf, simpleCSS, sel)
	buf.WriteString("\n  </style>\n")
}

func (Simple) RenderTitle(buf *bytes.Buffer, t Text) {
	RenderLines(buf, "title", t)
}

func (Simple) RenderFrame(buf *bytes.Buffer, f Frame) {
	fmt.Fprintf(buf, `  <rect class="frame" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
		f.Box.X, f.Box.Y, f.Box.W, f.Box.H)
	// Tab with a clipped bottom-right corner.
	cut := min(6.0, f.Tab.H/2)
	fmt.Fprintf(buf, `  <path class="frame-tab" d="M%.1f,%.1f H%.1f V%.1f L%.1f,%.1f H%.1f Z"/>`+"\n",
		f.Tab.X, f.Tab.Y, f.Tab.X+f.Tab.W, f.Tab.Y+f.Tab.H-cut,
		f.Tab.X+f.Tab.W-cut, f.Tab.Y+f.Tab.H, f.Tab.X)
	RenderLines(buf, "frame-keyword", f.Keyword)
	RenderLines(buf, "frame-label", f.Label)
	for _, d := range f.Dividers {
		fmt.Fprintf(buf, `  <line class="frame-divider" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
			f.Box.X, d.Y, f.Box.X+f.Box.W, d.Y)
		RenderLines(buf, "frame-label", d.Label)
	}
}

func (Simple) RenderLifeline(buf *bytes.Buffer, l Lifeline) {
	fmt.Fprintf(buf, `  <line id="%s" class="lifeline" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
		EscapeXML(l.ID), l.X, l.Y1, l.X, l.Y2)
}

func (Simple) RenderBar(buf *bytes.Buffer, b Bar) {
	fmt.Fprintf(buf, `  <rect class="bar" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
		b.Box.X, b.Box.Y, b.Box.W, b.Box.H)
}

func (Simple) RenderArrow(buf *bytes.Buffer, a Arrow) {
	class := "msg"
	if a.Dashed {
		class += " reply"
	}
	dir := 1.0
	if a.Self {
		fmt.Fprintf(buf, `  <path class="%s" d="M%.1f,%.1f H%.1f V%.1f H%.1f"/>`+"\n",
			class, a.X1, a.Y1, a.LoopX, a.Y2, a.X2)
		dir = -1
	} else {
		fmt.Fprintf(buf, `  <line class="%s" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
			class, a.X1, a.Y1, a.X2, a.Y2)
		if a.X2 < a.X1 {
			dir = -1
		}
	}
	renderArrowhead(buf, a.X2, a.Y2, dir, a.Head, a.Open)
	RenderLines(buf, "msg-label", a.Label)
}

// renderArrowhead draws a head with its tip at (x, y) pointing in the
// horizontal direction dir.
func renderArrowhead(buf *bytes.Buffer, x, y, dir, size float64, open bool) {
	if size <= 0 {
		return
	}
	bx := x - dir*size
	half := size / 2
	if open {
		fmt.Fprintf(buf, `  <polyline class="arrowhead open" points="%.1f,%.1f %.1f,%.1f %.1f,%.1f"/>`+"\n",
			bx, y-half, x, y, bx, y+half)
		return
	}
	fmt.Fprintf(buf, `  <polygon class="arrowhead" points="%.1f,%.1f %.1f,%.1f %.1f,%.1f"/>`+"\n",
		bx, y-half, x, y, bx, y+half)
}

func (Simple) RenderNote(buf *bytes.Buffer, n Note) {
	fold := min(8.0, n.Box.W/4, n.Box.H/4)
	x, y, w, h := n.Box.X, n.Box.Y, n.Box.W, n.Box.H
	fmt.Fprintf(buf, `  <path class="note" d="M%.1f,%.1f H%.1f L%.1f,%.1f V%.1f H%.1f Z"/>`+"\n",
		x, y, x+w-fold, x+w, y+fold, y+h, x)
	fmt.Fprintf(buf, `  <path class="note" d="M%.1f,%.1f V%.1f H%.1f"/>`+"\n",
		x+w-fold, y, y+fold, x+w)
	RenderLines(buf, "note-text", n.Text)
}

func (Simple) RenderState(buf *bytes.Buffer, s State) {
	fmt.Fprintf(buf, `  <rect class="state" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f"/>`+"\n",
		s.Box.X, s.Box.Y, s.Box.W, s.Box.H, min(8.0, s.Box.H/2))
	RenderLines(buf, "state-text", s.Text)
}

func (Simple) RenderRef(buf *bytes.Buffer, r Ref) {
	x, y, w, h := r.Box.X, r.Box.Y, r.Box.W, r.Box.H
	n := min(r.Notch, w/4)
	fmt.Fprintf(buf, `  <path class="ref" d="M%.1f,%.1f H%.1f V%.1f H%.1f L%.1f,%.1f Z"/>`+"\n",
		x+n, y, x+w, y+h, x+n, x, y+h/2)
	RenderLines(buf, "ref-tag", r.Tag)
	RenderLines(buf, "ref-text", r.Text)
}

func (Simple) RenderHead(buf *bytes.Buffer, h Head) {
	kind := "header"
	if h.Footer {
		kind = "footer"
	}
	if h.Box.H == 0 {
		fmt.Fprintf(buf, `  <line id="%s" class="foot-bar" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
			EscapeXML(h.ID), h.Box.X, h.Box.Y, h.Box.X+h.Box.W, h.Box.Y)
		return
	}
	fmt.Fprintf(buf, `  <g id="%s" class="%s">`+"\n", EscapeXML(h.ID), kind)
	if h.Actor {
		renderActor(buf, h.Box.X+h.Box.W/2, h.Box.Y, h.Figure)
	} else {
		fmt.Fprintf(buf, `  <rect class="head" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="3"/>`+"\n",
			h.Box.X, h.Box.Y, h.Box.W, h.Box.H)
	}
	RenderLines(buf, "head-label", h.Label)
	buf.WriteString("  </g>\n")
}

// renderActor draws a stick figure of height fig centered on cx.
func renderActor(buf *bytes.Buffer, cx, top, fig float64) {
	r := fig * 0.16
	neck := top + 2 + 2*r
	hip := top + fig*0.68
	arms := neck + (hip-neck)*0.35
	span := fig * 0.28
	feet := top + fig - 1
	fmt.Fprintf(buf, `  <circle class="actor" cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", cx, top+2+r, r)
	fmt.Fprintf(buf, `  <path class="actor" d="M%.1f,%.1f V%.1f M%.1f,%.1f H%.1f M%.1f,%.1f L%.1f,%.1f L%.1f,%.1f"/>`+"\n",
		cx, neck, hip, cx-span, arms, cx+span, cx-span*0.9, feet, cx, hip, cx+span*0.9, feet)
}

func (Simple) RenderCross(buf *bytes.Buffer, c Cross) {
	s := c.Size
	fmt.Fprintf(buf, `  <path class="cross" d="M%.1f,%.1f L%.1f,%.1f M%.1f,%.1f L%.1f,%.1f"/>`+"\n",
		c.X-s, c.Y-s, c.X+s, c.Y+s, c.X+s, c.Y-s, c.X-s, c.Y+s)
}
