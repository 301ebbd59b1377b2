package hierarchy

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/maypok86/otter"

	"github.com/mvp-joe/dirmap/internal/hierarchy/extraction"
)

// DefaultCacheCapacity is the number of files an ExtractionCache remembers.
const DefaultCacheCapacity = 10_000

// ExtractionCache remembers per-file extraction results across builds, keyed
// by project type and path and invalidated by size and modification time.
// Entries are never mutated after insertion; each Build still folds into its
// own fresh Map.
type ExtractionCache struct {
	cache otter.Cache[string, cachedExtraction]
}

type cachedExtraction struct {
	size     int64
	modTime  time.Time
	entities []extraction.Entity
}

// NewExtractionCache creates a cache holding up to capacity files.
func NewExtractionCache(capacity int) (*ExtractionCache, error) {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	cache, err := otter.MustBuilder[string, cachedExtraction](capacity).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction cache: %w", err)
	}
	return &ExtractionCache{cache: cache}, nil
}

// Get returns the cached entities when the file has not changed since Put.
func (c *ExtractionCache) Get(projectType, path string, info fs.FileInfo) ([]extraction.Entity, bool) {
	if c == nil || info == nil {
		return nil, false
	}
	entry, ok := c.cache.Get(cacheKey(projectType, path))
	if !ok || entry.size != info.Size() || !entry.modTime.Equal(info.ModTime()) {
		return nil, false
	}
	return entry.entities, true
}

// Put stores the entities extracted from the file described by info.
func (c *ExtractionCache) Put(projectType, path string, info fs.FileInfo, entities []extraction.Entity) {
	if c == nil || info == nil {
		return
	}
	c.cache.Set(cacheKey(projectType, path), cachedExtraction{
		size:     info.Size(),
		modTime:  info.ModTime(),
		entities: entities,
	})
}

// Close releases the cache's background resources.
func (c *ExtractionCache) Close() {
	if c != nil {
		c.cache.Close()
	}
}

func cacheKey(projectType, path string) string {
	return projectType + "\x00" + path
}
