package registry

import (
	"fmt"
	"strconv"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cached decorates a Resolvers aggregate with an LRU cache. Import batches
// tend to reference the same data sources and points over and over; caching
// keeps repeated lookups off the backing registry.
//
// Only successful lookups are cached. Entities are cached as returned, so
// the backing registry must not mutate them afterwards.
type Cached struct {
	next   Resolvers
	cache  *lru.Cache[string, any]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCached wraps next with an LRU cache holding up to size entries.
func NewCached(next Resolvers, size int) (*Cached, error) {
	cache, err := lru.New[string, any](size)
	if err != nil {
		return nil, fmt.Errorf("create resolver cache: %w", err)
	}
	return &Cached{next: next, cache: cache}, nil
}

// Resolvers returns a Resolvers aggregate served through the cache.
func (c *Cached) Resolvers() Resolvers {
	return Resolvers{
		DataPoints:        c,
		DataSources:       c,
		Publishers:        c,
		ScheduledEvents:   c,
		CompoundDetectors: c,
		MaintenanceEvents: c,
	}
}

// Hits returns the number of lookups served from the cache.
func (c *Cached) Hits() int64 { return c.hits.Load() }

// Misses returns the number of lookups that went to the backing registry.
func (c *Cached) Misses() int64 { return c.misses.Load() }

// Purge empties the cache, e.g. after the backing registry changed.
func (c *Cached) Purge() { c.cache.Purge() }

// lookup serves key from the cache, falling back to fetch and caching the
// result on success.
func lookup[E any](c *Cached, key string, fetch func() (*E, bool)) (*E, bool) {
	if v, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return v.(*E), true
	}
	c.misses.Add(1)

	e, ok := fetch()
	if !ok {
		return nil, false
	}
	c.cache.Add(key, e)
	return e, true
}

// PointByXID implements DataPointResolver.
func (c *Cached) PointByXID(xid string) (*DataPoint, bool) {
	return lookup(c, "dp:x:"+xid, func() (*DataPoint, bool) {
		return c.next.DataPoints.PointByXID(xid)
	})
}

// PointByID implements DataPointResolver.
func (c *Cached) PointByID(id int) (*DataPoint, bool) {
	return lookup(c, "dp:i:"+strconv.Itoa(id), func() (*DataPoint, bool) {
		return c.next.DataPoints.PointByID(id)
	})
}

// DetectorByXID implements DataPointResolver.
func (c *Cached) DetectorByXID(detectorXID string, dataPointID int) (*Detector, bool) {
	key := "det:x:" + strconv.Itoa(dataPointID) + ":" + detectorXID
	return lookup(c, key, func() (*Detector, bool) {
		return c.next.DataPoints.DetectorByXID(detectorXID, dataPointID)
	})
}

// DetectorByID implements DataPointResolver.
func (c *Cached) DetectorByID(id int) (*Detector, bool) {
	return lookup(c, "det:i:"+strconv.Itoa(id), func() (*Detector, bool) {
		return c.next.DataPoints.DetectorByID(id)
	})
}

// DataSourceByXID implements DataSourceResolver.
func (c *Cached) DataSourceByXID(xid string) (*DataSource, bool) {
	return lookup(c, "ds:x:"+xid, func() (*DataSource, bool) {
		return c.next.DataSources.DataSourceByXID(xid)
	})
}

// DataSourceByID implements DataSourceResolver.
func (c *Cached) DataSourceByID(id int) (*DataSource, bool) {
	return lookup(c, "ds:i:"+strconv.Itoa(id), func() (*DataSource, bool) {
		return c.next.DataSources.DataSourceByID(id)
	})
}

// PublisherByXID implements PublisherResolver.
func (c *Cached) PublisherByXID(xid string) (*Publisher, bool) {
	return lookup(c, "pub:x:"+xid, func() (*Publisher, bool) {
		return c.next.Publishers.PublisherByXID(xid)
	})
}

// PublisherByID implements PublisherResolver.
func (c *Cached) PublisherByID(id int) (*Publisher, bool) {
	return lookup(c, "pub:i:"+strconv.Itoa(id), func() (*Publisher, bool) {
		return c.next.Publishers.PublisherByID(id)
	})
}

// ScheduledEventByXID implements ScheduledEventResolver.
func (c *Cached) ScheduledEventByXID(xid string) (*ScheduledEvent, bool) {
	return lookup(c, "se:x:"+xid, func() (*ScheduledEvent, bool) {
		return c.next.ScheduledEvents.ScheduledEventByXID(xid)
	})
}

// ScheduledEventByID implements ScheduledEventResolver.
func (c *Cached) ScheduledEventByID(id int) (*ScheduledEvent, bool) {
	return lookup(c, "se:i:"+strconv.Itoa(id), func() (*ScheduledEvent, bool) {
		return c.next.ScheduledEvents.ScheduledEventByID(id)
	})
}

// CompoundDetectorByXID implements CompoundDetectorResolver.
func (c *Cached) CompoundDetectorByXID(xid string) (*CompoundDetector, bool) {
	return lookup(c, "ced:x:"+xid, func() (*CompoundDetector, bool) {
		return c.next.CompoundDetectors.CompoundDetectorByXID(xid)
	})
}

// CompoundDetectorByID implements CompoundDetectorResolver.
func (c *Cached) CompoundDetectorByID(id int) (*CompoundDetector, bool) {
	return lookup(c, "ced:i:"+strconv.Itoa(id), func() (*CompoundDetector, bool) {
		return c.next.CompoundDetectors.CompoundDetectorByID(id)
	})
}

// MaintenanceEventByXID implements MaintenanceEventResolver.
func (c *Cached) MaintenanceEventByXID(xid string) (*MaintenanceEvent, bool) {
	return lookup(c, "me:x:"+xid, func() (*MaintenanceEvent, bool) {
		return c.next.MaintenanceEvents.MaintenanceEventByXID(xid)
	})
}

// MaintenanceEventByID implements MaintenanceEventResolver.
func (c *Cached) MaintenanceEventByID(id int) (*MaintenanceEvent, bool) {
	return lookup(c, "me:i:"+strconv.Itoa(id), func() (*MaintenanceEvent, bool) {
		return c.next.MaintenanceEvents.MaintenanceEventByID(id)
	})
}

// Compile-time interface checks.
var (
	_ DataPointResolver        = (*Cached)(nil)
	_ DataSourceResolver       = (*Cached)(nil)
	_ PublisherResolver        = (*Cached)(nil)
	_ ScheduledEventResolver   = (*Cached)(nil)
	_ CompoundDetectorResolver = (*Cached)(nil)
	_ MaintenanceEventResolver = (*Cached)(nil)
)
