package cache

// Keyer builds cache keys for each cached computation.
type Keyer interface {
	// RebuildKey keys a rebuilt region by the hash of the prior region.
	RebuildKey(regionHash string, opts RebuildKeyOpts) string
	// PackKey keys a packed region by the hash of its item list.
	PackKey(itemsHash string, opts PackKeyOpts) string
	// ArtifactKey keys a rendered diagram by the hash of its region.
	ArtifactKey(regionHash string, opts ArtifactKeyOpts) string
}

// RebuildKeyOpts holds every rebuild input besides the region.
type RebuildKeyOpts struct {
	ActionHash string  `json:"action"`
	MaxSize    float64 `json:"max_size"`
	Sizer      string  `json:"sizer"`
}

// PackKeyOpts holds every pack input besides the items.
type PackKeyOpts struct {
	MaxSize float64 `json:"max_size"`
	Sizer   string  `json:"sizer"`
}

// ArtifactKeyOpts holds every render input besides the region.
type ArtifactKeyOpts struct {
	Format      string `json:"format"`
	MetricsHash string `json:"metrics"`
	Sizer       string `json:"sizer"`
	Pointer     string `json:"pointer,omitempty"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RebuildKey implements Keyer.
func (DefaultKeyer) RebuildKey(regionHash string, opts RebuildKeyOpts) string {
	return hashKey("rebuild", regionHash, opts)
}

// PackKey implements Keyer.
func (DefaultKeyer) PackKey(itemsHash string, opts PackKeyOpts) string {
	return hashKey("pack", itemsHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(regionHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", regionHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so several tenants or regions
// can share one backend without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "landing:")
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
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// RebuildKey implements Keyer.
func (k *ScopedKeyer) RebuildKey(regionHash string, opts RebuildKeyOpts) string {
	return k.prefix + k.inner.RebuildKey(regionHash, opts)
}

// PackKey implements Keyer.
func (k *ScopedKeyer) PackKey(itemsHash string, opts PackKeyOpts) string {
	return k.prefix + k.inner.PackKey(itemsHash, opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(regionHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(regionHash, opts)
}
