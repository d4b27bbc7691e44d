package directory

import "time"

// SetNowFunc replaces the clock used for TTL decisions in tests
func (c *Cache) SetNowFunc(now func() time.Time) {
	c.now = now
}
