package layout

import (
	"fmt"
	"math"
	"sort"

	"github.com/matzehuels/seqdiag/pkg/seq/diagram"
	"github.com/matzehuels/seqdiag/pkg/seq/textwidth"
)

// Build computes the geometry of d.
func Build(d *diagram.Diagram, opts ...Option) Geometry {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	e := newEngine(d, cfg)
	e.measure()
	e.place()
	return e.g
}

type openBar struct {
	top   float64
	depth int
}

type frame struct {
	index    int
	kind     diagram.BlockKind
	label    string
	top      float64
	depth    int
	touched  bool
	minX     float64
	maxX     float64
	minLane  int
	maxLane  int
	dividers []Divider
}

type engine struct {
	d   *diagram.Diagram
	cfg Config
	g   Geometry

	widths []float64 // lane widths from the measurement pass
	boxes  []float64 // header box widths

	y       float64 // cursor: top of the next row
	lastY   float64 // y of the most recently placed element
	headerH float64

	depth     []int
	bars      [][]openBar
	destroyed []bool
	frames    []*frame
	numbering bool
	counter   int
}

func newEngine(d *diagram.Diagram, cfg Config) *engine {
	n := d.Participants.Len()
	return &engine{
		d:         d,
		cfg:       cfg,
		widths:    make([]float64, n),
		boxes:     make([]float64, n),
		depth:     make([]int, n),
		bars:      make([][]openBar, n),
		destroyed: make([]bool, n),
	}
}

// measure is the first pass: per-lane widths and lane centers.
func (e *engine) measure() {
	cfg := e.cfg
	for i, p := range e.d.Participants.All() {
		w, _ := textwidth.Block(p.Label)
		e.boxes[i] = max(cfg.MinLaneWidth, w+2*textwidth.BoxPadding)
		e.widths[i] = e.boxes[i]
	}

	numbering, counter := false, 0
	for _, ev := range e.d.Events {
		switch ev := ev.(type) {
		case diagram.AutonumberToggle:
			numbering = ev.On
		case diagram.Message:
			label := ev.Label
			if numbering {
				counter++
				label = numbered(counter, label)
			}
			lw, _ := textwidth.Block(label)
			if ev.IsSelf() {
				e.grow(ev.From, 2*(cfg.SelfLoopWidth+textwidth.LabelPadding+lw))
			} else {
				e.grow(ev.From, lw+2*textwidth.LabelPadding)
				e.grow(ev.To, lw+2*textwidth.LabelPadding)
			}
		case diagram.Note:
			nw := e.noteWidth(ev.Text)
			if ev.Placement == diagram.PlaceOver {
				for _, i := range ev.Participants {
					e.grow(i, nw)
				}
			} else {
				e.grow(ev.Participants[0], 2*(cfg.NoteOffset+nw))
			}
		case diagram.State:
			nw := e.noteWidth(ev.Text)
			for _, i := range ev.Participants {
				e.grow(i, nw)
			}
		case diagram.Ref:
			rw := e.refWidth(ev.Text)
			for _, i := range ev.Participants {
				e.grow(i, rw)
			}
			for _, s := range []*diagram.Signal{ev.Input, ev.Output} {
				if s != nil {
					lw, _ := textwidth.Block(s.Label)
					e.grow(s.Participant, lw+2*textwidth.LabelPadding)
				}
			}
		}
	}

	e.g.Lanes = make([]Lane, len(e.widths))
	x := cfg.Margin
	for i, w := range e.widths {
		if i == 0 {
			x += w / 2
		} else {
			x += e.widths[i-1]/2 + cfg.LaneGap + w/2
		}
		p := e.d.Participants.At(i)
		e.g.Lanes[i] = Lane{Name: p.Name, Label: p.Label, Kind: p.Kind, X: x, Width: w}
	}
}

func (e *engine) grow(lane int, w float64) {
	e.widths[lane] = max(e.widths[lane], w)
}

func (e *engine) noteWidth(text string) float64 {
	w, _ := textwidth.Block(text)
	return max(e.cfg.NoteMinWidth, w+2*textwidth.NotePadding)
}

func (e *engine) refWidth(text string) float64 {
	w, _ := textwidth.Block(text)
	return max(e.cfg.RefMinWidth, w+2*textwidth.NotePadding+2*e.cfg.RefNotch)
}

// place is the second pass: y positions for every event.
func (e *engine) place() {
	cfg := e.cfg
	y := cfg.Margin
	if title := e.d.Title(); title != "" {
		lines := textwidth.Lines(title)
		e.g.Title = &Text{X: cfg.Margin, Y: y + textwidth.Ascent, Lines: lines, Anchor: AnchorStart}
		y += max(cfg.TitleHeight, textwidth.Height(len(lines))+cfg.RowGap)
	}

	e.headerH = e.headerHeight()
	for i := range e.g.Lanes {
		lane := &e.g.Lanes[i]
		lane.Header = Rect{
			Left:   lane.X - e.boxes[i]/2,
			Top:    y,
			Right:  lane.X + e.boxes[i]/2,
			Bottom: y + e.headerH,
		}
		lane.HeaderText = e.laneText(*lane, lane.Header)
		lane.LifelineTop = lane.Header.Bottom
	}
	e.lastY = y + e.headerH
	e.y = e.lastY + cfg.RowGap

	e.g.Rows = make([]float64, len(e.d.Events))
	for i, ev := range e.d.Events {
		e.g.Rows[i] = e.event(ev)
	}
	for len(e.frames) > 0 {
		e.closeFrame()
	}

	e.g.Footer = e.d.Footer()
	footerTop := e.y + cfg.FooterGap
	bottom := footerTop
	for i := range e.g.Lanes {
		lane := &e.g.Lanes[i]
		if e.destroyed[i] {
			continue
		}
		lane.LifelineBottom = footerTop
		for e.depth[i] > 0 {
			e.pop(i, footerTop)
		}
		switch e.g.Footer {
		case diagram.FooterBox:
			lane.Footer = Rect{Left: lane.Header.Left, Top: footerTop, Right: lane.Header.Right, Bottom: footerTop + e.headerH}
			lane.FooterText = e.laneText(*lane, lane.Footer)
			lane.HasFooter = true
			bottom = max(bottom, lane.Footer.Bottom)
		case diagram.FooterBar:
			lane.Footer = Rect{Left: lane.Header.Left, Top: footerTop, Right: lane.Header.Right, Bottom: footerTop}
			lane.HasFooter = true
		}
	}

	sort.SliceStable(e.g.Activations, func(i, j int) bool {
		a, b := e.g.Activations[i], e.g.Activations[j]
		if a.Depth != b.Depth {
			return a.Depth < b.Depth
		}
		if a.Rect.Top != b.Rect.Top {
			return a.Rect.Top < b.Rect.Top
		}
		return a.Lane < b.Lane
	})

	e.g.Autonumber = e.counter > 0
	e.g.Config = cfg
	e.g.ViewBox = e.bounds(bottom + cfg.Margin)
}

// headerHeight is shared by all lanes so header bottoms line up.
func (e *engine) headerHeight() float64 {
	h := 0.0
	for _, p := range e.d.Participants.All() {
		lines := max(1, len(textwidth.Lines(p.Label)))
		if p.Kind == diagram.KindActor {
			h = max(h, e.cfg.ActorFigure+textwidth.Height(lines)+4)
		} else {
			h = max(h, e.cfg.HeaderHeight+textwidth.Height(lines-1))
		}
	}
	return h
}

// laneText positions a participant label inside a header or footer box.
// Actor labels sit at the bottom, under the figure.
func (e *engine) laneText(lane Lane, r Rect) Text {
	lines := textwidth.Lines(lane.Label)
	h := textwidth.Height(len(lines))
	top := r.CenterY() - h/2
	if lane.Kind == diagram.KindActor {
		top = r.Bottom - h - 2
	}
	return Text{X: lane.X, Y: top + textwidth.Ascent, Lines: lines, Anchor: AnchorMiddle}
}

func (e *engine) event(ev diagram.Event) float64 {
	switch ev := ev.(type) {
	case diagram.Message:
		return e.message(ev)
	case diagram.Note:
		return e.note(ev)
	case diagram.State:
		return e.state(ev)
	case diagram.Ref:
		return e.ref(ev)
	case diagram.BlockOpen:
		return e.openFrame(ev)
	case diagram.BlockElse:
		return e.divider(ev)
	case diagram.BlockClose:
		if len(e.frames) == 0 {
			return e.lastY
		}
		return e.closeFrame()
	case diagram.Activate:
		if !e.destroyed[ev.Participant] {
			e.push(ev.Participant, e.lastY)
		}
	case diagram.Deactivate:
		e.pop(ev.Participant, e.lastY)
	case diagram.Destroy:
		return e.destroy(ev.Participant)
	case diagram.AutonumberToggle:
		e.numbering = ev.On
	}
	return e.lastY
}

func (e *engine) message(ev diagram.Message) float64 {
	if e.destroyed[ev.From] || e.destroyed[ev.To] {
		return e.lastY
	}
	cfg := e.cfg
	label := ev.Label
	m := Message{From: ev.From, To: ev.To, Style: ev.Style}
	if e.numbering {
		e.counter++
		m.Number = e.counter
		label = numbered(e.counter, label)
	}
	lines := textwidth.Lines(label)
	lw, _ := textwidth.Block(label)
	top := e.y

	if ev.IsSelf() {
		return e.selfMessage(ev, m, lines, lw, top)
	}

	arrowY := top + textwidth.Height(len(lines)) + cfg.MessageRise
	rightward := e.g.Lanes[ev.To].X > e.g.Lanes[ev.From].X
	if ev.Delta == diagram.DeltaActivateTarget {
		e.push(ev.To, arrowY)
	}
	m.X1 = e.edge(ev.From, rightward)
	m.X2 = e.edge(ev.To, !rightward)
	if ev.Delta == diagram.DeltaDeactivateSource {
		e.pop(ev.From, arrowY)
	}
	m.Y, m.EndY = arrowY, arrowY

	cx := (m.X1 + m.X2) / 2
	m.Label = Text{X: cx, Y: top + textwidth.Ascent, Lines: lines, Anchor: AnchorMiddle}
	e.g.Messages = append(e.g.Messages, m)

	e.touchLane(ev.From)
	e.touchLane(ev.To)
	if lw > 0 {
		e.touchX(cx-lw/2, cx+lw/2)
	}
	e.y = arrowY + cfg.RowGap
	e.lastY = arrowY
	return arrowY
}

func (e *engine) selfMessage(ev diagram.Message, m Message, lines []string, lw, top float64) float64 {
	cfg := e.cfg
	y1 := top + cfg.MessageRise
	y2 := y1 + max(cfg.SelfLoopHeight, textwidth.Height(len(lines)))

	m.X1 = e.edge(ev.From, true)
	switch ev.Delta {
	case diagram.DeltaActivateTarget:
		e.push(ev.From, y2)
	case diagram.DeltaDeactivateSource:
		e.pop(ev.From, y2)
	}
	m.X2 = e.edge(ev.From, true)
	m.Self = true
	m.Y, m.EndY = y1, y2
	m.LoopX = max(m.X1, m.X2) + cfg.SelfLoopWidth
	m.Label = Text{
		X:      m.LoopX + textwidth.LabelPadding/2,
		Y:      y1 + textwidth.Ascent - 2,
		Lines:  lines,
		Anchor: AnchorStart,
	}
	e.g.Messages = append(e.g.Messages, m)

	e.touchLane(ev.From)
	e.touchX(m.X1, m.Label.X+lw)
	e.y = y2 + cfg.RowGap
	e.lastY = y2
	return y1
}

func (e *engine) note(ev diagram.Note) float64 {
	if e.anyDestroyed(ev.Participants) {
		return e.lastY
	}
	cfg := e.cfg
	lines := textwidth.Lines(ev.Text)
	nw := e.noteWidth(ev.Text)
	nh := textwidth.Height(max(1, len(lines))) + 2*textwidth.NotePadding
	top := e.y

	first := e.g.Lanes[ev.Participants[0]]
	var left, right float64
	switch ev.Placement {
	case diagram.PlaceLeftOf:
		right = first.X - cfg.NoteOffset
		left = right - nw
	case diagram.PlaceRightOf:
		left = first.X + cfg.NoteOffset
		right = left + nw
	default:
		left, right = e.overSpan(ev.Participants, nw)
	}

	r := Rect{Left: left, Top: top, Right: right, Bottom: top + nh}
	e.g.Notes = append(e.g.Notes, Note{
		Placement: ev.Placement,
		Rect:      r,
		Text: Text{
			X:      left + textwidth.NotePadding,
			Y:      top + textwidth.NotePadding + textwidth.Ascent,
			Lines:  lines,
			Anchor: AnchorStart,
		},
	})

	e.finishBox(ev.Participants, r)
	return top
}

func (e *engine) state(ev diagram.State) float64 {
	if e.anyDestroyed(ev.Participants) {
		return e.lastY
	}
	lines := textwidth.Lines(ev.Text)
	h := textwidth.Height(max(1, len(lines))) + 2*textwidth.NotePadding
	top := e.y
	left, right := e.overSpan(ev.Participants, e.noteWidth(ev.Text))

	r := Rect{Left: left, Top: top, Right: right, Bottom: top + h}
	e.g.States = append(e.g.States, State{
		Rect: r,
		Text: Text{
			X:      r.CenterX(),
			Y:      top + textwidth.NotePadding + textwidth.Ascent,
			Lines:  lines,
			Anchor: AnchorMiddle,
		},
	})
	e.finishBox(ev.Participants, r)
	return top
}

// ref places a reference box. The "ref" tag takes the first row inside
// the box; an incoming message meets the box at the middle of that row and
// an outgoing one leaves it one padding above the bottom.
func (e *engine) ref(ev diagram.Ref) float64 {
	if e.anyDestroyed(ev.Participants) {
		return e.lastY
	}
	cfg := e.cfg
	lines := textwidth.Lines(ev.Text)
	tagRow := textwidth.LineHeight
	h := 2*textwidth.NotePadding + tagRow + textwidth.Height(len(lines))
	left, right := e.overSpan(ev.Participants, e.refWidth(ev.Text))

	inset := textwidth.NotePadding + tagRow/2
	in, out := ev.Input, ev.Output
	if in != nil && e.destroyed[in.Participant] {
		in = nil
	}
	if out != nil && e.destroyed[out.Participant] {
		out = nil
	}
	top := e.y
	if in != nil {
		need := textwidth.Height(len(textwidth.Lines(in.Label))) + cfg.MessageRise
		top += max(0, need-inset)
	}

	r := Rect{Left: left, Top: top, Right: right, Bottom: top + h}
	ref := Ref{
		Rect: r,
		Tag: Text{
			X:      left + cfg.RefNotch + 4,
			Y:      top + textwidth.NotePadding + textwidth.Ascent,
			Lines:  []string{"ref"},
			Anchor: AnchorStart,
		},
		Text: Text{
			X:      r.CenterX(),
			Y:      top + textwidth.NotePadding + tagRow + textwidth.Ascent,
			Lines:  lines,
			Anchor: AnchorMiddle,
		},
	}
	if in != nil {
		ref.Input = e.signal(*in, r, top+inset, true)
	}
	if out != nil {
		ref.Output = e.signal(*out, r, r.Bottom-textwidth.NotePadding, false)
	}
	e.g.Refs = append(e.g.Refs, ref)
	e.finishBox(ev.Participants, r)
	return top
}

// signal places a message at y between a lane and the side of box r that
// faces it. into selects the direction.
func (e *engine) signal(s diagram.Signal, r Rect, y float64, into bool) *Message {
	lane := s.Participant
	leftOfBox := e.g.Lanes[lane].X < r.CenterX()
	boxX := r.Right
	if leftOfBox {
		boxX = r.Left
	}
	laneX := e.edge(lane, leftOfBox)

	m := &Message{Style: s.Style, Y: y, EndY: y}
	if into {
		m.From, m.To, m.X1, m.X2 = lane, -1, laneX, boxX
	} else {
		m.From, m.To, m.X1, m.X2 = -1, lane, boxX, laneX
	}
	lines := textwidth.Lines(s.Label)
	lw, _ := textwidth.Block(s.Label)
	cx := (m.X1 + m.X2) / 2
	m.Label = Text{
		X:      cx,
		Y:      y - e.cfg.MessageRise - textwidth.Height(len(lines)) + textwidth.Ascent,
		Lines:  lines,
		Anchor: AnchorMiddle,
	}

	e.touchLane(lane)
	if lw > 0 {
		e.touchX(cx-lw/2, cx+lw/2)
	}
	return m
}

// overSpan returns the x extent of a box over lanes: from just outside the
// first lane to just outside the last, widened about its center to at
// least w.
func (e *engine) overSpan(lanes []int, w float64) (float64, float64) {
	first, last := e.g.Lanes[lanes[0]], e.g.Lanes[lanes[len(lanes)-1]]
	left, right := first.X-e.cfg.NoteOverhang, last.X+e.cfg.NoteOverhang
	if right-left < w {
		c := (left + right) / 2
		left, right = c-w/2, c+w/2
	}
	return left, right
}

// finishBox records a box spanning lanes in the open frame and moves the
// cursor below it.
func (e *engine) finishBox(lanes []int, r Rect) {
	for _, p := range lanes {
		e.touchLane(p)
	}
	e.touchX(r.Left, r.Right)
	e.y = r.Bottom + e.cfg.RowGap
	e.lastY = r.Bottom
}

func (e *engine) anyDestroyed(lanes []int) bool {
	for _, p := range lanes {
		if e.destroyed[p] {
			return true
		}
	}
	return false
}

func (e *engine) openFrame(ev diagram.BlockOpen) float64 {
	f := &frame{
		index:   len(e.g.Blocks),
		kind:    ev.Kind,
		label:   ev.Label,
		top:     e.y,
		depth:   len(e.frames),
		minX:    math.Inf(1),
		maxX:    math.Inf(-1),
		minLane: -1,
		maxLane: -1,
	}
	e.g.Blocks = append(e.g.Blocks, Block{Kind: ev.Kind, Depth: f.depth})
	e.frames = append(e.frames, f)
	e.y = f.top + e.sectionHeight(ev.Label)
	e.lastY = f.top
	return f.top
}

func (e *engine) divider(ev diagram.BlockElse) float64 {
	if len(e.frames) == 0 {
		return e.lastY
	}
	f := e.frames[len(e.frames)-1]
	y := e.y
	f.dividers = append(f.dividers, Divider{
		Y:     y,
		Label: Text{Lines: textwidth.Lines(bracket(ev.Label)), Anchor: AnchorStart},
	})
	e.y = y + e.sectionHeight(ev.Label)
	e.lastY = y
	return y
}

// sectionHeight is the label row at the top of a frame or below a divider.
func (e *engine) sectionHeight(label string) float64 {
	return max(e.cfg.BlockHeader, textwidth.Height(len(textwidth.Lines(label)))+10)
}

func (e *engine) closeFrame() float64 {
	cfg := e.cfg
	f := e.frames[len(e.frames)-1]
	e.frames = e.frames[:len(e.frames)-1]

	if !f.touched {
		if n := len(e.g.Lanes); n > 0 {
			f.minX, f.maxX = e.g.Lanes[0].X, e.g.Lanes[n-1].X
		} else {
			f.minX, f.maxX = cfg.Margin+cfg.BlockPadding, cfg.Margin+cfg.BlockPadding
		}
	}
	bottom := e.y
	left := f.minX - cfg.BlockPadding
	right := f.maxX + cfg.BlockPadding

	keyword := f.kind.String()
	tabW := textwidth.Estimate(keyword) + 2*textwidth.NotePadding
	need := tabW + cfg.BlockPadding
	label := bracket(f.label)
	labelW, _ := textwidth.Block(label)
	if labelW > 0 {
		need += textwidth.LabelPadding + labelW
	}
	if right-left < need {
		right = left + need
	}

	b := &e.g.Blocks[f.index]
	b.Rect = Rect{Left: left, Top: f.top, Right: right, Bottom: bottom}
	b.Tab = Rect{Left: left, Top: f.top, Right: left + tabW, Bottom: f.top + cfg.BlockHeader - 6}
	b.TabText = Text{X: left + textwidth.NotePadding, Y: f.top + textwidth.Ascent + 2, Lines: []string{keyword}, Anchor: AnchorStart}
	b.Label = Text{X: b.Tab.Right + textwidth.LabelPadding/2, Y: b.TabText.Y, Lines: textwidth.Lines(label), Anchor: AnchorStart}
	b.MinLane, b.MaxLane = f.minLane, f.maxLane
	for _, d := range f.dividers {
		d.Label.X = left + textwidth.NotePadding
		d.Label.Y = d.Y + textwidth.Ascent + 4
		b.Dividers = append(b.Dividers, d)
	}

	if n := len(e.frames); n > 0 {
		parent := e.frames[n-1]
		e.touchX(left, right)
		if f.minLane >= 0 {
			e.touchLane(f.minLane)
			e.touchLane(f.maxLane)
		}
		parent.touched = true
	}
	e.y = bottom + cfg.RowGap
	e.lastY = bottom
	return bottom
}

func (e *engine) touchLane(lane int) {
	if len(e.frames) == 0 {
		return
	}
	f := e.frames[len(e.frames)-1]
	x := e.g.Lanes[lane].X
	f.minX, f.maxX = min(f.minX, x), max(f.maxX, x)
	if f.minLane < 0 || lane < f.minLane {
		f.minLane = lane
	}
	if lane > f.maxLane {
		f.maxLane = lane
	}
	f.touched = true
}

func (e *engine) touchX(left, right float64) {
	if len(e.frames) == 0 {
		return
	}
	f := e.frames[len(e.frames)-1]
	f.minX, f.maxX = min(f.minX, left), max(f.maxX, right)
	f.touched = true
}

func (e *engine) destroy(lane int) float64 {
	if e.destroyed[lane] {
		return e.lastY
	}
	cfg := e.cfg
	y := e.y + cfg.DestroySize
	for e.depth[lane] > 0 {
		e.pop(lane, y)
	}
	e.destroyed[lane] = true
	l := &e.g.Lanes[lane]
	l.Destroyed = true
	l.LifelineBottom = y
	e.g.Destroys = append(e.g.Destroys, Destroy{Lane: lane, X: l.X, Y: y, Size: cfg.DestroySize})

	e.touchLane(lane)
	e.y = y + cfg.DestroySize + cfg.RowGap
	e.lastY = y
	return y
}

// edge returns where an arrow meets a lane: the lifeline, or the left or
// right edge of the topmost activation bar.
func (e *engine) edge(lane int, right bool) float64 {
	x := e.g.Lanes[lane].X
	d := e.depth[lane]
	if d == 0 {
		return x
	}
	c := x + float64(d-1)*e.cfg.ActivationInset
	if right {
		return c + e.cfg.ActivationWidth/2
	}
	return c - e.cfg.ActivationWidth/2
}

func (e *engine) push(lane int, y float64) {
	e.depth[lane]++
	e.bars[lane] = append(e.bars[lane], openBar{top: y, depth: e.depth[lane]})
}

// pop closes the topmost bar of lane at y. It does nothing at depth zero.
func (e *engine) pop(lane int, y float64) {
	if e.depth[lane] == 0 {
		return
	}
	stack := e.bars[lane]
	b := stack[len(stack)-1]
	e.bars[lane] = stack[:len(stack)-1]
	e.depth[lane]--

	bottom := max(y, b.top+e.cfg.RowGap)
	c := e.g.Lanes[lane].X + float64(b.depth-1)*e.cfg.ActivationInset
	e.g.Activations = append(e.g.Activations, Activation{
		Lane:  lane,
		Depth: b.depth,
		Rect: Rect{
			Left:   c - e.cfg.ActivationWidth/2,
			Top:    b.top,
			Right:  c + e.cfg.ActivationWidth/2,
			Bottom: bottom,
		},
	})
}

// bounds returns the view box enclosing everything placed.
func (e *engine) bounds(height float64) Rect {
	minX, maxX := math.Inf(1), math.Inf(-1)
	add := func(l, r float64) {
		minX, maxX = min(minX, l), max(maxX, r)
	}
	addText := func(t Text) {
		w := 0.0
		for _, line := range t.Lines {
			w = max(w, textwidth.Estimate(line))
		}
		if t.Anchor == AnchorMiddle {
			add(t.X-w/2, t.X+w/2)
		} else {
			add(t.X, t.X+w)
		}
	}

	for _, l := range e.g.Lanes {
		add(l.Header.Left, l.Header.Right)
	}
	for _, m := range e.g.Messages {
		add(min(m.X1, m.X2), max(m.X1, m.X2, m.LoopX))
		addText(m.Label)
	}
	for _, n := range e.g.Notes {
		add(n.Rect.Left, n.Rect.Right)
	}
	for _, s := range e.g.States {
		add(s.Rect.Left, s.Rect.Right)
	}
	for _, r := range e.g.Refs {
		add(r.Rect.Left, r.Rect.Right)
		for _, m := range []*Message{r.Input, r.Output} {
			if m != nil {
				add(min(m.X1, m.X2), max(m.X1, m.X2))
				addText(m.Label)
			}
		}
	}
	for _, b := range e.g.Blocks {
		add(b.Rect.Left, b.Rect.Right)
	}
	for _, a := range e.g.Activations {
		add(a.Rect.Left, a.Rect.Right)
	}
	if e.g.Title != nil {
		addText(*e.g.Title)
	}
	if math.IsInf(minX, 1) {
		minX, maxX = e.cfg.Margin, e.cfg.Margin
	}
	return Rect{
		Left:   min(0, minX-e.cfg.Margin),
		Top:    0,
		Right:  maxX + e.cfg.Margin,
		Bottom: height,
	}
}

func numbered(n int, label string) string {
	if label == "" {
		return fmt.Sprintf("%d.", n)
	}
	return fmt.Sprintf("%d. %s", n, label)
}

func bracket(label string) string {
	if label == "" {
		return ""
	}
	return "[" + label + "]"
}
