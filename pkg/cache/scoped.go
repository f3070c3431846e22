package cache

// ScopedKeyer wraps a Keyer with a prefix so that several registries can
// share one cache backend without their entries colliding.
//
// Example usage:
//
//	// One namespace per registry base URL
//	prod := NewScopedKeyer(NewDefaultKeyer(), "https://registry.prod|")
//	staging := NewScopedKeyer(NewDefaultKeyer(), "https://registry.staging|")
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

// RegistryKey generates a prefixed key for a registry collection.
func (k *ScopedKeyer) RegistryKey(source, collection string, limit int) string {
	return k.prefix + k.inner.RegistryKey(source, collection, limit)
}
