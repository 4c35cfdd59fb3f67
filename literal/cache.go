package literal

import (
	"github.com/dgraph-io/ristretto"
	"github.com/pkg/errors"

	"github.com/cube2222/octomap/octomap"
)

// TypeCache memoizes ParseType. Sets are asynchronous, so a name parsed
// right before may still miss, which only costs a reparse.
type TypeCache struct {
	cache *ristretto.Cache
}

func NewTypeCache(maxEntries int64) (*TypeCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, errors.Wrap(err, "couldn't create type name cache")
	}
	return &TypeCache{cache: cache}, nil
}

func (c *TypeCache) ParseType(input string) (octomap.Type, error) {
	if cached, ok := c.cache.Get(input); ok {
		return cached.(octomap.Type), nil
	}
	t, err := ParseType(input)
	if err != nil {
		return octomap.Type{}, err
	}
	c.cache.Set(input, t, 1)
	return t, nil
}

func (c *TypeCache) Close() {
	c.cache.Close()
}
