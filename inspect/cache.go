package inspect

import (
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// bodyCache memoises formatted bodies. Formatting is deterministic, so a hit returns the
// exact value a fresh format would produce. Entries keep their inputs to rule out
// hash collisions.
type bodyCache struct {
	entries *lru.Cache[uint64, *cachedBody]
}

type cachedBody struct {
	category ContentTypeCategory
	body     string
	result   RenderableBody
}

func newBodyCache(size int) (*bodyCache, error) {
	entries, err := lru.New[uint64, *cachedBody](size)
	if err != nil {
		return nil, err
	}
	return &bodyCache{entries: entries}, nil
}

func cacheKey(category ContentTypeCategory, body string) uint64 {
	d := xxhash.New()
	_, _ = d.Write([]byte{byte(category)})
	_, _ = d.WriteString(body)
	return d.Sum64()
}

func (c *bodyCache) get(category ContentTypeCategory, body string) (RenderableBody, bool) {
	entry, ok := c.entries.Get(cacheKey(category, body))
	if !ok || entry.category != category || entry.body != body {
		return nil, false
	}
	return entry.result, true
}

func (c *bodyCache) put(category ContentTypeCategory, body string, result RenderableBody) {
	c.entries.Add(cacheKey(category, body), &cachedBody{
		category: category,
		body:     body,
		result:   result,
	})
}

func (c *bodyCache) len() int {
	return c.entries.Len()
}
