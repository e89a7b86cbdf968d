package source

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gorewood/doctags/internal/symbol"
)

// DefaultCacheSize is the number of packages a watcher keeps parsed.
const DefaultCacheSize = 1024

// PackageCache keeps parsed Go packages between scans of the same tree. An
// entry is reused only while the package's files keep the same names,
// sizes and modification times. It is safe for concurrent use.
//
// Cached elements are shared between the trees returned by ScanGo and must
// not be modified.
type PackageCache struct {
	entries *lru.Cache[string, cachedPackage]
}

type cachedPackage struct {
	fingerprint string
	element     *symbol.Element
}

// NewPackageCache creates a cache holding up to size packages.
func NewPackageCache(size int) (*PackageCache, error) {
	entries, err := lru.New[string, cachedPackage](size)
	if err != nil {
		return nil, fmt.Errorf("creating package cache: %w", err)
	}
	return &PackageCache{entries: entries}, nil
}

// Len returns the number of cached packages.
func (c *PackageCache) Len() int {
	return c.entries.Len()
}

func (c *PackageCache) get(dir, fingerprint string) (*symbol.Element, bool) {
	if fingerprint == "" {
		return nil, false
	}
	cached, ok := c.entries.Get(dir)
	if !ok || cached.fingerprint != fingerprint {
		return nil, false
	}
	return cached.element, true
}

func (c *PackageCache) put(dir, fingerprint string, element *symbol.Element) {
	if fingerprint == "" {
		c.entries.Remove(dir)
		return
	}
	c.entries.Add(dir, cachedPackage{fingerprint: fingerprint, element: element})
}
