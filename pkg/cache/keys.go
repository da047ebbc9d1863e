package cache

// Keyer builds cache keys for pipeline stages.
type Keyer interface {
	// LayoutKey identifies the geometry computed from a source.
	LayoutKey(sourceHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds everything besides the source that changes a layout.
type LayoutKeyOpts struct {
	Engine     string `json:"engine"`      // layout engine version
	ConfigHash string `json:"config_hash"` // hash of the spacing constants
}

// ArtifactKeyOpts holds everything besides the layout that changes an
// artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	IDPrefix string  `json:"id_prefix,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(sourceHash string, opts LayoutKeyOpts) string {
	return stageKey("layout", sourceHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return stageKey("artifact", layoutHash, opts)
}
