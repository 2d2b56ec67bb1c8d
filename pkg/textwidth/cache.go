package textwidth

// cacheSlots is the fixed number of direct-mapped cache entries.
const cacheSlots = 512

type cacheSlot struct {
	hash  uint64
	width int
	used  bool
}

// Cache memoizes VisibleWidth results in a fixed-size direct-mapped table.
// Each key hashes to exactly one slot and a collision silently overwrites the
// previous occupant, so the cache is approximate rather than authoritative.
//
// A Cache is not safe for concurrent use; give each goroutine its own
// instance or guard it externally.
type Cache struct {
	slots  [cacheSlots]cacheSlot
	hits   uint64
	misses uint64
}

// NewCache returns an empty width cache.
func NewCache() *Cache {
	return &Cache{}
}

// VisibleWidth strips escape sequences and returns the column width of the
// remaining text, caching the result keyed by a hash of the raw input.
func (c *Cache) VisibleWidth(text string) int {
	h := fnv64(text)
	idx := h % cacheSlots
	if slot := &c.slots[idx]; slot.used && slot.hash == h {
		c.hits++
		return slot.width
	}
	w := VisibleWidth(text)
	c.slots[idx] = cacheSlot{hash: h, width: w, used: true}
	c.misses++
	return w
}

// Stats returns the number of cache hits and misses since creation or the
// last Reset.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits, c.misses
}

// Reset clears all slots and counters.
func (c *Cache) Reset() {
	*c = Cache{}
}

// VisibleWidth strips escape sequences and measures the remaining text. The
// uncached form; use a Cache when measuring the same strings repeatedly.
func VisibleWidth(text string) int {
	return CalculateWidth(StripANSI(text))
}

// fnv64 is the FNV-1a hash over the raw bytes of s.
func fnv64(s string) uint64 {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	h := uint64(offset)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	return h
}
