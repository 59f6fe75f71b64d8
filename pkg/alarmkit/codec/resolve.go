package codec

import (
	"github.com/atoverton/alarmkit/pkg/alarmkit/codes"
	"github.com/atoverton/alarmkit/pkg/alarmkit/registry"
)

// requireString returns the string value of field or MissingFieldError.
// A present-but-non-string value counts as missing: the field as specified
// is not there.
func requireString(rec Record, field string) (string, error) {
	s, ok := rec.String(field)
	if !ok {
		return "", &MissingFieldError{Field: field}
	}
	return s, nil
}

// requireInt returns the integer value of field or MissingFieldError.
func requireInt(rec Record, field string) (int, error) {
	n, ok := rec.Int(field)
	if !ok {
		return 0, &MissingFieldError{Field: field}
	}
	return n, nil
}

// requireCode reads a coded field and maps it through table.
// Fails with MissingFieldError when absent and InvalidCodeError when the
// value is outside the table.
func requireCode(rec Record, field string, table *codes.Table) (int, error) {
	text, err := requireString(rec, field)
	if err != nil {
		return 0, err
	}
	id, ok := table.ID(text)
	if !ok {
		return 0, &InvalidCodeError{Field: field, Value: text, ValidCodes: table.List()}
	}
	return id, nil
}

// requireDataPoint resolves a data point reference field.
func (c *Codec) requireDataPoint(rec Record, field string) (*registry.DataPoint, error) {
	xid, err := requireString(rec, field)
	if err != nil {
		return nil, err
	}
	if c.resolvers.DataPoints == nil {
		return nil, &UnresolvedReferenceError{Field: field, XID: xid}
	}
	p, ok := c.resolvers.DataPoints.PointByXID(xid)
	if !ok {
		return nil, &UnresolvedReferenceError{Field: field, XID: xid}
	}
	return p, nil
}

// requirePointDetector resolves a detector reference scoped to the data
// point named by pointField. The point must resolve before the detector is
// even looked at: a detector xid is meaningless without its owning point.
func (c *Codec) requirePointDetector(rec Record, pointField, detectorField string) (*registry.Detector, error) {
	p, err := c.requireDataPoint(rec, pointField)
	if err != nil {
		return nil, err
	}
	xid, err := requireString(rec, detectorField)
	if err != nil {
		return nil, err
	}
	d, ok := c.resolvers.DataPoints.DetectorByXID(xid, p.ID)
	if !ok {
		return nil, &UnresolvedReferenceError{Field: detectorField, XID: xid}
	}
	return d, nil
}

// requireDataSource resolves a data source reference field.
func (c *Codec) requireDataSource(rec Record, field string) (*registry.DataSource, error) {
	xid, err := requireString(rec, field)
	if err != nil {
		return nil, err
	}
	if c.resolvers.DataSources == nil {
		return nil, &UnresolvedReferenceError{Field: field, XID: xid}
	}
	ds, ok := c.resolvers.DataSources.DataSourceByXID(xid)
	if !ok {
		return nil, &UnresolvedReferenceError{Field: field, XID: xid}
	}
	return ds, nil
}

// requirePublisher resolves a publisher reference field.
func (c *Codec) requirePublisher(rec Record, field string) (*registry.Publisher, error) {
	xid, err := requireString(rec, field)
	if err != nil {
		return nil, err
	}
	if c.resolvers.Publishers == nil {
		return nil, &UnresolvedReferenceError{Field: field, XID: xid}
	}
	p, ok := c.resolvers.Publishers.PublisherByXID(xid)
	if !ok {
		return nil, &UnresolvedReferenceError{Field: field, XID: xid}
	}
	return p, nil
}

// requireScheduledEvent resolves a scheduled event reference field.
func (c *Codec) requireScheduledEvent(rec Record, field string) (*registry.ScheduledEvent, error) {
	xid, err := requireString(rec, field)
	if err != nil {
		return nil, err
	}
	if c.resolvers.ScheduledEvents == nil {
		return nil, &UnresolvedReferenceError{Field: field, XID: xid}
	}
	s, ok := c.resolvers.ScheduledEvents.ScheduledEventByXID(xid)
	if !ok {
		return nil, &UnresolvedReferenceError{Field: field, XID: xid}
	}
	return s, nil
}

// requireCompoundDetector resolves a compound detector reference field.
func (c *Codec) requireCompoundDetector(rec Record, field string) (*registry.CompoundDetector, error) {
	xid, err := requireString(rec, field)
	if err != nil {
		return nil, err
	}
	if c.resolvers.CompoundDetectors == nil {
		return nil, &UnresolvedReferenceError{Field: field, XID: xid}
	}
	cd, ok := c.resolvers.CompoundDetectors.CompoundDetectorByXID(xid)
	if !ok {
		return nil, &UnresolvedReferenceError{Field: field, XID: xid}
	}
	return cd, nil
}

// requireMaintenanceEvent resolves a maintenance event reference field.
func (c *Codec) requireMaintenanceEvent(rec Record, field string) (*registry.MaintenanceEvent, error) {
	xid, err := requireString(rec, field)
	if err != nil {
		return nil, err
	}
	if c.resolvers.MaintenanceEvents == nil {
		return nil, &UnresolvedReferenceError{Field: field, XID: xid}
	}
	me, ok := c.resolvers.MaintenanceEvents.MaintenanceEventByXID(xid)
	if !ok {
		return nil, &UnresolvedReferenceError{Field: field, XID: xid}
	}
	return me, nil
}
