// Package pipeline runs diagram source through parse, layout and render
// with cached intermediate results. The CLI and the HTTP server both go
// through a [Runner], so they validate, cache and log the same way.
//
// Parsing is never cached: it is cheap, and it produces the errors and
// warnings callers report. The geometry is cached under the source hash
// and the layout config. Each artifact is cached under the geometry hash
// and the options that change its bytes.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, src, pipeline.Options{Formats: []string{"svg", "json"}})
//	if err != nil {
//	    return err
//	}
//	svg := res.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seqdiag/pkg/cache"
	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/seq/diagram"
	"github.com/matzehuels/seqdiag/pkg/seq/layout"
)

const (
	// DefaultScale multiplies the SVG size when rasterizing to PNG.
	DefaultScale = 2.0

	// LayoutEngine versions the layout algorithm. Bumping it invalidates
	// every cached layout.
	LayoutEngine = "seq-1"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// Options configures one pipeline run. The zero value renders SVG with
// the default layout.
type Options struct {
	MaxSourceBytes int            `json:"max_source_bytes,omitempty"`
	Layout         *layout.Config `json:"layout,omitempty"` // nil means layout.DefaultConfig

	Formats        []string `json:"formats,omitempty"`
	IDPrefix       string   `json:"id_prefix,omitempty"`
	TitleElement   bool     `json:"title_element,omitempty"`
	XMLDeclaration bool     `json:"xml_declaration,omitempty"`
	Scale          float64  `json:"scale,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result is everything one run produced.
type Result struct {
	Diagram      *diagram.Diagram // includes parser warnings
	SourceHash   string
	Geometry     layout.Geometry
	GeometryHash string            // keys the artifacts
	Artifacts    map[string][]byte // by format
	Stats        Stats
	CacheInfo    CacheInfo
}

// Stats counts what was parsed and times each stage.
type Stats struct {
	Participants int
	Events       int
	Warnings     int
	ParseTime    time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo reports which stages were served from the cache. RenderHit
// is set only when every requested artifact was.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// ValidateFormats rejects the first unsupported format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults prepares o for [Runner.Execute]. Repeat calls
// are no-ops.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.validated = true
	return nil
}

// SetLayoutDefaults fills in the layout config and source limit.
func (o *Options) SetLayoutDefaults() {
	if o.Layout == nil {
		cfg := layout.DefaultConfig()
		o.Layout = &cfg
	}
	if o.MaxSourceBytes == 0 {
		o.MaxSourceBytes = errors.DefaultMaxSourceBytes
	}
	o.setLogger()
}

// SetRenderDefaults fills in the formats and PNG scale.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender applies render defaults, then checks the formats,
// scale and id prefix.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive")
	}
	return errors.ValidateIDPrefix(o.IDPrefix)
}

// LayoutKeyOpts keys a geometry by engine version and a hash of the
// layout config.
func (o *Options) LayoutKeyOpts() (cache.LayoutKeyOpts, error) {
	o.SetLayoutDefaults()
	h, err := cache.HashJSON(o.Layout)
	if err != nil {
		return cache.LayoutKeyOpts{}, fmt.Errorf("hash layout config: %w", err)
	}
	return cache.LayoutKeyOpts{Engine: LayoutEngine, ConfigHash: h}, nil
}

// ArtifactKeyOpts keys one artifact. JSON ignores the id prefix and only
// PNG depends on the scale.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	if format == FormatJSON {
		return k
	}
	k.IDPrefix = o.IDPrefix
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
