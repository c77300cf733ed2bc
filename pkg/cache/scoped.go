package cache

// ScopedKeyer wraps a Keyer with a prefix so several consumers can share
// one backend without colliding:
//
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "serve:")
//	cliKeyer := NewScopedKeyer(NewDefaultKeyer(), "cli:")
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

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(scriptHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(scriptHash, opts)
}
