package cache

// ScopedKeyer wraps a Keyer with a prefix. The CLI scopes keys by build
// version so a renderer change never serves artifacts drawn by an older one.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "v"+buildinfo.Version+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(token string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(token, opts)
}
