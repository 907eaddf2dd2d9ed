package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer generates cache keys. Centralizing key construction keeps the CLI
// and the server hitting the same entries for the same work.
type Keyer interface {
	// QueryKey keys an evaluated query result by graph content and the
	// canonical form of the expression.
	QueryKey(graphHash, expr string) string

	// GraphKey keys a serialized graph by its stored name.
	GraphKey(name string) string
}

// DefaultKeyer is the standard key scheme: prefix plus SHA-256 over the
// JSON-encoded components.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// QueryKey generates a key for a query result. Expressions must be in
// canonical form so that `a|b` and `a | b` share an entry.
func (k *DefaultKeyer) QueryKey(graphHash, expr string) string {
	return hashKey("query", graphHash, expr)
}

// GraphKey generates a key for a stored graph.
func (k *DefaultKeyer) GraphKey(name string) string {
	return hashKey("graph", name)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, e.g.
// separate cache namespaces per deployment sharing one Redis.
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

// QueryKey generates a prefixed query-result key.
func (k *ScopedKeyer) QueryKey(graphHash, expr string) string {
	return k.prefix + k.inner.QueryKey(graphHash, expr)
}

// GraphKey generates a prefixed graph key.
func (k *ScopedKeyer) GraphKey(name string) string {
	return k.prefix + k.inner.GraphKey(name)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions.
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data. Used to fingerprint
// serialized graph content for query-result keys.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
