// Package registry defines the lookup contracts the import/export codec
// resolves external ids through, together with the entities they return and
// several interchangeable implementations: an in-memory registry for tests
// and small deployments, a SQLite-backed registry, and an LRU-cached
// decorator for import batches that hit the same entities repeatedly.
//
// A resolver either returns an entity or reports not-found with a bool;
// not-found is never an error.
package registry

import (
	"github.com/atoverton/alarmkit/pkg/alarmkit/codes"
	"github.com/atoverton/alarmkit/pkg/alarmkit/event"
)

// DataPoint is a monitored value owned by a data source.
type DataPoint struct {
	ID           int
	XID          string
	Name         string
	DataSourceID int
}

// Detector is a point event detector. Detector ids are unique across the
// platform, but external ids are only unique within the owning data point,
// so resolution by XID is always scoped to a point.
type Detector struct {
	ID          int
	XID         string
	DataPointID int

	// Handling is the detector's configured duplicate handling.
	Handling event.DuplicateHandling

	// ChangeDetector marks detectors that raise on every value change;
	// their event types always allow duplicates.
	ChangeDetector bool
}

// DataSource is an external system the platform collects values from.
// ErrorCodes enumerates the error types this particular implementation can
// raise; the ids in the table are the secondary identity component of its
// event types.
type DataSource struct {
	ID         int
	XID        string
	Name       string
	ErrorCodes *codes.Table
}

// Publisher pushes values to an external system. Like a data source it
// carries its own error type enumeration.
type Publisher struct {
	ID         int
	XID        string
	Name       string
	ErrorCodes *codes.Table
}

// ScheduledEvent is a user-configured schedule the scheduler raises events for.
type ScheduledEvent struct {
	ID   int
	XID  string
	Name string
}

// CompoundDetector evaluates a logical statement over point detectors and
// scheduled events.
type CompoundDetector struct {
	ID   int
	XID  string
	Name string
}

// MaintenanceEvent is a configured maintenance window.
type MaintenanceEvent struct {
	ID   int
	XID  string
	Name string
}

// DataPointResolver resolves data points and their detectors.
type DataPointResolver interface {
	// PointByXID resolves a data point by its external id.
	PointByXID(xid string) (*DataPoint, bool)

	// PointByID resolves a data point by its internal id.
	PointByID(id int) (*DataPoint, bool)

	// DetectorByXID resolves a detector by its external id within the
	// scope of one data point. Detector xids are meaningless without an
	// owning point.
	DetectorByXID(detectorXID string, dataPointID int) (*Detector, bool)

	// DetectorByID resolves a detector by its internal id.
	DetectorByID(id int) (*Detector, bool)
}

// DataSourceResolver resolves data sources.
type DataSourceResolver interface {
	DataSourceByXID(xid string) (*DataSource, bool)
	DataSourceByID(id int) (*DataSource, bool)
}

// PublisherResolver resolves publishers.
type PublisherResolver interface {
	PublisherByXID(xid string) (*Publisher, bool)
	PublisherByID(id int) (*Publisher, bool)
}

// ScheduledEventResolver resolves scheduled events.
type ScheduledEventResolver interface {
	ScheduledEventByXID(xid string) (*ScheduledEvent, bool)
	ScheduledEventByID(id int) (*ScheduledEvent, bool)
}

// CompoundDetectorResolver resolves compound detectors.
type CompoundDetectorResolver interface {
	CompoundDetectorByXID(xid string) (*CompoundDetector, bool)
	CompoundDetectorByID(id int) (*CompoundDetector, bool)
}

// MaintenanceEventResolver resolves maintenance events.
type MaintenanceEventResolver interface {
	MaintenanceEventByXID(xid string) (*MaintenanceEvent, bool)
	MaintenanceEventByID(id int) (*MaintenanceEvent, bool)
}

// Resolvers aggregates one resolver per entity kind. The codec takes a
// Resolvers at construction; tests substitute individual fields with fakes.
type Resolvers struct {
	DataPoints        DataPointResolver
	DataSources       DataSourceResolver
	Publishers        PublisherResolver
	ScheduledEvents   ScheduledEventResolver
	CompoundDetectors CompoundDetectorResolver
	MaintenanceEvents MaintenanceEventResolver
}
