package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/seqdiag/pkg/seq/diagram"
	"github.com/matzehuels/seqdiag/pkg/seq/layout"
	"github.com/matzehuels/seqdiag/pkg/seq/styles"
	"github.com/matzehuels/seqdiag/pkg/seq/textwidth"
)

// DefaultIDPrefix is the id of the root svg element when no prefix is set.
const DefaultIDPrefix = "seqdiag"

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style    styles.Style
	prefix   string
	xmlDecl  bool
	a11yText bool
}

// WithStyle sets the drawing style. The default is [styles.Simple].
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithIDPrefix sets the id of the root element and the prefix of every
// element id, so several diagrams can share one HTML page. A prefix that
// is not a letter followed by letters, digits, '-' or '_' is replaced by
// [DefaultIDPrefix], since it also scopes the inline stylesheet.
func WithIDPrefix(p string) SVGOption { return func(r *svgRenderer) { r.prefix = p } }

// WithXMLDeclaration emits an <?xml?> header, for standalone .svg files.
func WithXMLDeclaration() SVGOption { return func(r *svgRenderer) { r.xmlDecl = true } }

// WithTitleElement adds a <title> child carrying the diagram title.
func WithTitleElement() SVGOption { return func(r *svgRenderer) { r.a11yText = true } }

// RenderSVG draws g as a standalone SVG document. Output depends only on g
// and the options.
func RenderSVG(g layout.Geometry, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	vb := g.ViewBox

	var buf bytes.Buffer
	if r.xmlDecl {
		buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	}
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" id="%s" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		styles.EscapeXML(r.prefix), vb.Left, vb.Top, vb.Width(), vb.Height(), vb.Width(), vb.Height())
	if r.a11yText && g.Title != nil {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(strings.Join(g.Title.Lines, " ")))
	}
	r.style.RenderDefs(&buf, r.prefix)
	r.renderContent(&buf, g)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, prefix: DefaultIDPrefix}
	for _, opt := range opts {
		opt(&r)
	}
	if !validIDPrefix(r.prefix) {
		r.prefix = DefaultIDPrefix
	}
	return r
}

// validIDPrefix reports whether p is usable both as an XML id and as a CSS
// id selector.
func validIDPrefix(p string) bool {
	if p == "" || len(p) > 64 {
		return false
	}
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '-' || c == '_'):
		default:
			return false
		}
	}
	return true
}

// renderContent paints back to front: frames, lifelines, bars, arrows,
// notes, state and ref boxes, participant boxes, destroy crosses and the
// title.
func (r *svgRenderer) renderContent(buf *bytes.Buffer, g layout.Geometry) {
	for _, f := range buildFrames(g) {
		r.style.RenderFrame(buf, f)
	}
	for i, l := range g.Lanes {
		r.style.RenderLifeline(buf, styles.Lifeline{
			ID: r.id("lifeline", i),
			X:  l.X,
			Y1: l.LifelineTop,
			Y2: l.LifelineBottom,
		})
	}
	for _, a := range g.Activations {
		r.style.RenderBar(buf, styles.Bar{Box: box(a.Rect), Depth: a.Depth})
	}
	for _, m := range g.Messages {
		r.style.RenderArrow(buf, buildArrow(m, g.Config))
	}
	for _, ref := range g.Refs {
		for _, m := range []*layout.Message{ref.Input, ref.Output} {
			if m != nil {
				r.style.RenderArrow(buf, buildArrow(*m, g.Config))
			}
		}
	}
	for _, n := range g.Notes {
		r.style.RenderNote(buf, styles.Note{Box: box(n.Rect), Text: text(n.Text)})
	}
	for _, st := range g.States {
		r.style.RenderState(buf, styles.State{Box: box(st.Rect), Text: text(st.Text)})
	}
	for _, ref := range g.Refs {
		r.style.RenderRef(buf, styles.Ref{
			Box:   box(ref.Rect),
			Notch: g.Config.RefNotch,
			Tag:   text(ref.Tag),
			Text:  text(ref.Text),
		})
	}
	for _, h := range r.buildHeads(g) {
		r.style.RenderHead(buf, h)
	}
	for _, d := range g.Destroys {
		r.style.RenderCross(buf, styles.Cross{X: d.X, Y: d.Y, Size: d.Size})
	}
	if g.Title != nil {
		r.style.RenderTitle(buf, text(*g.Title))
	}
}

func (r *svgRenderer) id(kind string, lane int) string {
	return fmt.Sprintf("%s-%s-%d", r.prefix, kind, lane)
}

func (r *svgRenderer) buildHeads(g layout.Geometry) []styles.Head {
	heads := make([]styles.Head, 0, 2*len(g.Lanes))
	for i, l := range g.Lanes {
		heads = append(heads, styles.Head{
			ID:     r.id("head", i),
			Box:    box(l.Header),
			Label:  text(l.HeaderText),
			Actor:  actor(l),
			Figure: figure(actor(l), g.Config),
		})
	}
	for i, l := range g.Lanes {
		if !l.HasFooter {
			continue
		}
		heads = append(heads, styles.Head{
			ID:     r.id("foot", i),
			Box:    box(l.Footer),
			Label:  text(l.FooterText),
			Actor:  actor(l),
			Footer: true,
			Figure: figure(actor(l), g.Config),
		})
	}
	return heads
}

func actor(l layout.Lane) bool { return l.Kind == diagram.KindActor }

func figure(actor bool, cfg layout.Config) float64 {
	if !actor {
		return 0
	}
	return cfg.ActorFigure
}

func buildFrames(g layout.Geometry) []styles.Frame {
	frames := make([]styles.Frame, 0, len(g.Blocks))
	for _, b := range g.Blocks {
		f := styles.Frame{
			Box:     box(b.Rect),
			Depth:   b.Depth,
			Tab:     box(b.Tab),
			Keyword: text(b.TabText),
			Label:   text(b.Label),
		}
		for _, d := range b.Dividers {
			f.Dividers = append(f.Dividers, styles.Divider{Y: d.Y, Label: text(d.Label)})
		}
		frames = append(frames, f)
	}
	return frames
}

func buildArrow(m layout.Message, cfg layout.Config) styles.Arrow {
	return styles.Arrow{
		X1:     m.X1,
		Y1:     m.Y,
		X2:     m.X2,
		Y2:     m.EndY,
		Self:   m.Self,
		LoopX:  m.LoopX,
		Dashed: m.Style.Dashed(),
		Open:   m.Style.OpenHead(),
		Head:   cfg.ArrowHead,
		Label:  text(m.Label),
	}
}

func box(r layout.Rect) styles.Box {
	return styles.Box{X: r.Left, Y: r.Top, W: r.Width(), H: r.Height()}
}

func text(t layout.Text) styles.Text {
	return styles.Text{
		X:          t.X,
		Y:          t.Y,
		Lines:      t.Lines,
		Anchor:     string(t.Anchor),
		LineHeight: textwidth.LineHeight,
	}
}
