package layout

// Config holds the spacing constants used by [Build]. All values are in
// pixels.
type Config struct {
	Margin      float64 `json:"margin"`       // outer padding around the scene
	TitleHeight float64 `json:"title_height"` // row reserved for the title

	HeaderHeight float64 `json:"header_height"` // participant box height for one line of label
	ActorFigure  float64 `json:"actor_figure"`  // stick figure height above an actor label
	MinLaneWidth float64 `json:"min_lane_width"`
	LaneGap      float64 `json:"lane_gap"` // space between adjacent lane extents

	RowGap         float64 `json:"row_gap"`      // vertical space after every row
	MessageRise    float64 `json:"message_rise"` // space between a label and its arrow
	SelfLoopWidth  float64 `json:"self_loop_width"`
	SelfLoopHeight float64 `json:"self_loop_height"`
	ArrowHead      float64 `json:"arrow_head"`

	NoteOffset   float64 `json:"note_offset"`   // gap between a lifeline and a left/right note
	NoteOverhang float64 `json:"note_overhang"` // how far an over-note extends past its lanes
	NoteMinWidth float64 `json:"note_min_width"`

	RefNotch    float64 `json:"ref_notch"` // depth of the cut on a ref box's left side
	RefMinWidth float64 `json:"ref_min_width"`

	BlockHeader  float64 `json:"block_header"`  // label row at the top of a frame and below each divider
	BlockPadding float64 `json:"block_padding"` // horizontal space between content and frame

	ActivationWidth float64 `json:"activation_width"`
	ActivationInset float64 `json:"activation_inset"` // horizontal offset per nesting level

	DestroySize float64 `json:"destroy_size"` // half the side of the destroy cross
	FooterGap   float64 `json:"footer_gap"`
}

// DefaultConfig returns the fixed spacing used by the default renderer.
func DefaultConfig() Config {
	return Config{
		Margin:          20,
		TitleHeight:     36,
		HeaderHeight:    36,
		ActorFigure:     34,
		MinLaneWidth:    80,
		LaneGap:         30,
		RowGap:          14,
		MessageRise:     6,
		SelfLoopWidth:   40,
		SelfLoopHeight:  20,
		ArrowHead:       9,
		NoteOffset:      10,
		NoteOverhang:    12,
		NoteMinWidth:    40,
		RefNotch:        10,
		RefMinWidth:     100,
		BlockHeader:     26,
		BlockPadding:    14,
		ActivationWidth: 10,
		ActivationInset: 5,
		DestroySize:     8,
		FooterGap:       6,
	}
}

// Option configures [Build].
type Option func(*Config)

// WithConfig replaces the spacing constants.
func WithConfig(c Config) Option {
	return func(dst *Config) { *dst = c }
}
