// Package assets resolves stage image references against a configurable
// base path.
package assets

import (
	"strings"

	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

// Resolver prefixes relative asset paths with Base.
type Resolver struct {
	Base string
}

// NewResolver returns a Resolver for base, defaulting to "/".
func NewResolver(base string) Resolver {
	if strings.TrimSpace(base) == "" {
		base = types.DefaultAssetBase
	}
	return Resolver{Base: base}
}

// Path resolves p. URLs and already-rooted paths are returned unchanged.
func (r Resolver) Path(p string) string {
	if p == "" || isAbsolute(p) {
		return p
	}
	base := r.Base
	if base == "" {
		base = types.DefaultAssetBase
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(p, "./")
}

func isAbsolute(p string) bool {
	if strings.HasPrefix(p, "/") {
		return true
	}
	for _, scheme := range []string{"http://", "https://", "data:", "file://"} {
		if strings.HasPrefix(strings.ToLower(p), scheme) {
			return true
		}
	}
	return false
}
