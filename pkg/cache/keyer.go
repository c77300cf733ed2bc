package cache

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rendered artifact of the script
	// whose content hashes to scriptHash.
	ArtifactKey(scriptHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds everything besides the script that changes an
// artifact's bytes.
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	TemplateHash string  `json:"template"`
	Scale        float64 `json:"scale,omitempty"`
	Background   string  `json:"background,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(scriptHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", scriptHash, opts)
}
