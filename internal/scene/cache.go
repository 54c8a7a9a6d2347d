package scene

import "github.com/example/markshot/internal/geom"

// Cache memoizes the primitives produced for a surface size. It is owned by a
// single engine; the engine calls Clear on every state change.
type Cache struct {
	size    geom.Size
	content Primitive
	valid   bool
}

// Draw returns the cached content for size, rebuilding it with fn when the
// cache was cleared or the size changed.
func (c *Cache) Draw(size geom.Size, fn func(*Frame)) Primitive {
	if c.valid && c.size == size {
		return Cached{Content: c.content}
	}
	f := NewFrame(size)
	fn(f)
	c.content = f.Primitive()
	c.size = size
	c.valid = true
	return Cached{Content: c.content}
}

// Clear invalidates the cache.
func (c *Cache) Clear() {
	c.valid = false
	c.content = nil
}

// Valid reports whether the cache holds content.
func (c *Cache) Valid() bool { return c.valid }
