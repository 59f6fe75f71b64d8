package registry

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-memory registry implementing every resolver interface.
// It is safe for concurrent use and intended for tests, examples, and
// deployments small enough to load their configuration up front.
type Memory struct {
	mu sync.RWMutex

	points       map[int]*DataPoint
	pointXIDs    map[string]int
	detectors    map[int]*Detector
	detectorXIDs map[detectorKey]int
	sources      map[int]*DataSource
	sourceXIDs   map[string]int
	publishers   map[int]*Publisher
	pubXIDs      map[string]int
	schedules    map[int]*ScheduledEvent
	scheduleXIDs map[string]int
	compounds    map[int]*CompoundDetector
	compoundXIDs map[string]int
	maintenance  map[int]*MaintenanceEvent
	maintXIDs    map[string]int

	nextID int
}

// detectorXIDs are scoped to the owning point.
type detectorKey struct {
	xid     string
	pointID int
}

// NewMemory creates an empty in-memory registry.
func NewMemory() *Memory {
	return &Memory{
		points:       make(map[int]*DataPoint),
		pointXIDs:    make(map[string]int),
		detectors:    make(map[int]*Detector),
		detectorXIDs: make(map[detectorKey]int),
		sources:      make(map[int]*DataSource),
		sourceXIDs:   make(map[string]int),
		publishers:   make(map[int]*Publisher),
		pubXIDs:      make(map[string]int),
		schedules:    make(map[int]*ScheduledEvent),
		scheduleXIDs: make(map[string]int),
		compounds:    make(map[int]*CompoundDetector),
		compoundXIDs: make(map[string]int),
		maintenance:  make(map[int]*MaintenanceEvent),
		maintXIDs:    make(map[string]int),
		nextID:       1,
	}
}

// Resolvers returns a Resolvers aggregate backed entirely by this registry.
func (m *Memory) Resolvers() Resolvers {
	return Resolvers{
		DataPoints:        m,
		DataSources:       m,
		Publishers:        m,
		ScheduledEvents:   m,
		CompoundDetectors: m,
		MaintenanceEvents: m,
	}
}

// newXID generates an external id with the given prefix, e.g. "DP_1a2b3c4d".
func newXID(prefix string) string {
	return prefix + "_" + strings.Split(uuid.NewString(), "-")[0]
}

func (m *Memory) assignID(id int) int {
	if id == 0 {
		id = m.nextID
	}
	if id >= m.nextID {
		m.nextID = id + 1
	}
	return id
}

// AddDataPoint stores a data point, assigning an id and XID when absent,
// and returns it.
func (m *Memory) AddDataPoint(p *DataPoint) *DataPoint {
	m.mu.Lock()
	defer m.mu.Unlock()

	p.ID = m.assignID(p.ID)
	if p.XID == "" {
		p.XID = newXID("DP")
	}
	m.points[p.ID] = p
	m.pointXIDs[p.XID] = p.ID
	return p
}

// AddDetector stores a detector, assigning an id and XID when absent, and
// returns it. The owning data point must already exist.
func (m *Memory) AddDetector(d *Detector) *Detector {
	m.mu.Lock()
	defer m.mu.Unlock()

	d.ID = m.assignID(d.ID)
	if d.XID == "" {
		d.XID = newXID("PED")
	}
	m.detectors[d.ID] = d
	m.detectorXIDs[detectorKey{d.XID, d.DataPointID}] = d.ID
	return d
}

// AddDataSource stores a data source, assigning an id and XID when absent,
// and returns it.
func (m *Memory) AddDataSource(ds *DataSource) *DataSource {
	m.mu.Lock()
	defer m.mu.Unlock()

	ds.ID = m.assignID(ds.ID)
	if ds.XID == "" {
		ds.XID = newXID("DS")
	}
	m.sources[ds.ID] = ds
	m.sourceXIDs[ds.XID] = ds.ID
	return ds
}

// AddPublisher stores a publisher, assigning an id and XID when absent, and
// returns it.
func (m *Memory) AddPublisher(p *Publisher) *Publisher {
	m.mu.Lock()
	defer m.mu.Unlock()

	p.ID = m.assignID(p.ID)
	if p.XID == "" {
		p.XID = newXID("PUB")
	}
	m.publishers[p.ID] = p
	m.pubXIDs[p.XID] = p.ID
	return p
}

// AddScheduledEvent stores a scheduled event, assigning an id and XID when
// absent, and returns it.
func (m *Memory) AddScheduledEvent(s *ScheduledEvent) *ScheduledEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.ID = m.assignID(s.ID)
	if s.XID == "" {
		s.XID = newXID("SE")
	}
	m.schedules[s.ID] = s
	m.scheduleXIDs[s.XID] = s.ID
	return s
}

// AddCompoundDetector stores a compound detector, assigning an id and XID
// when absent, and returns it.
func (m *Memory) AddCompoundDetector(c *CompoundDetector) *CompoundDetector {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = m.assignID(c.ID)
	if c.XID == "" {
		c.XID = newXID("CED")
	}
	m.compounds[c.ID] = c
	m.compoundXIDs[c.XID] = c.ID
	return c
}

// AddMaintenanceEvent stores a maintenance event, assigning an id and XID
// when absent, and returns it.
func (m *Memory) AddMaintenanceEvent(me *MaintenanceEvent) *MaintenanceEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	me.ID = m.assignID(me.ID)
	if me.XID == "" {
		me.XID = newXID("ME")
	}
	m.maintenance[me.ID] = me
	m.maintXIDs[me.XID] = me.ID
	return me
}

// PointByXID implements DataPointResolver.
func (m *Memory) PointByXID(xid string) (*DataPoint, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.pointXIDs[xid]
	if !ok {
		return nil, false
	}
	return m.points[id], true
}

// PointByID implements DataPointResolver.
func (m *Memory) PointByID(id int) (*DataPoint, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.points[id]
	return p, ok
}

// DetectorByXID implements DataPointResolver.
func (m *Memory) DetectorByXID(detectorXID string, dataPointID int) (*Detector, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.detectorXIDs[detectorKey{detectorXID, dataPointID}]
	if !ok {
		return nil, false
	}
	return m.detectors[id], true
}

// DetectorByID implements DataPointResolver.
func (m *Memory) DetectorByID(id int) (*Detector, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.detectors[id]
	return d, ok
}

// DataSourceByXID implements DataSourceResolver.
func (m *Memory) DataSourceByXID(xid string) (*DataSource, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.sourceXIDs[xid]
	if !ok {
		return nil, false
	}
	return m.sources[id], true
}

// DataSourceByID implements DataSourceResolver.
func (m *Memory) DataSourceByID(id int) (*DataSource, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ds, ok := m.sources[id]
	return ds, ok
}

// PublisherByXID implements PublisherResolver.
func (m *Memory) PublisherByXID(xid string) (*Publisher, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.pubXIDs[xid]
	if !ok {
		return nil, false
	}
	return m.publishers[id], true
}

// PublisherByID implements PublisherResolver.
func (m *Memory) PublisherByID(id int) (*Publisher, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.publishers[id]
	return p, ok
}

// ScheduledEventByXID implements ScheduledEventResolver.
func (m *Memory) ScheduledEventByXID(xid string) (*ScheduledEvent, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.scheduleXIDs[xid]
	if !ok {
		return nil, false
	}
	return m.schedules[id], true
}

// ScheduledEventByID implements ScheduledEventResolver.
func (m *Memory) ScheduledEventByID(id int) (*ScheduledEvent, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.schedules[id]
	return s, ok
}

// CompoundDetectorByXID implements CompoundDetectorResolver.
func (m *Memory) CompoundDetectorByXID(xid string) (*CompoundDetector, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.compoundXIDs[xid]
	if !ok {
		return nil, false
	}
	return m.compounds[id], true
}

// CompoundDetectorByID implements CompoundDetectorResolver.
func (m *Memory) CompoundDetectorByID(id int) (*CompoundDetector, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.compounds[id]
	return c, ok
}

// MaintenanceEventByXID implements MaintenanceEventResolver.
func (m *Memory) MaintenanceEventByXID(xid string) (*MaintenanceEvent, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.maintXIDs[xid]
	if !ok {
		return nil, false
	}
	return m.maintenance[id], true
}

// MaintenanceEventByID implements MaintenanceEventResolver.
func (m *Memory) MaintenanceEventByID(id int) (*MaintenanceEvent, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	me, ok := m.maintenance[id]
	return me, ok
}

// Compile-time interface checks.
var (
	_ DataPointResolver        = (*Memory)(nil)
	_ DataSourceResolver       = (*Memory)(nil)
	_ PublisherResolver        = (*Memory)(nil)
	_ ScheduledEventResolver   = (*Memory)(nil)
	_ CompoundDetectorResolver = (*Memory)(nil)
	_ MaintenanceEventResolver = (*Memory)(nil)
)
