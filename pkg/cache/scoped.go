package cache

// ScopedKeyer prepends a fixed namespace to every key of an inner Keyer,
// so deployments sharing a MongoDB collection do not see each other's
// entries.
type ScopedKeyer struct {
	Inner     Keyer
	Namespace string
}

// NewScopedKeyer returns inner with namespace prepended to its keys. A nil
// inner means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, namespace string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{Inner: inner, Namespace: namespace}
}

func (k ScopedKeyer) LayoutKey(sourceHash string, opts LayoutKeyOpts) string {
	return k.Namespace + k.Inner.LayoutKey(sourceHash, opts)
}

func (k ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.Namespace + k.Inner.ArtifactKey(layoutHash, opts)
}
