package codec

import (
	"github.com/atoverton/alarmkit/pkg/alarmkit/event"
	"github.com/atoverton/alarmkit/pkg/alarmkit/registry"
)

// Encode produces the transport form of an event type. Encoding is total:
// it always returns a record with sourceType set. Internal ids that no
// longer resolve to an entity encode as empty reference fields, which the
// validation on reimport then reports.
func (c *Codec) Encode(t event.Type) Record {
	rec := Record{FieldSourceType: event.CodeForKind(t.Kind())}

	switch v := t.(type) {
	case *event.DataPoint:
		rec[FieldDataPoint] = c.pointXID(v.DataPointID())
		rec[FieldPointEventDetector] = c.detectorXID(v.DetectorID())

	case *event.DataSource:
		rec[FieldDataSource] = ""
		rec[FieldDataSourceErrorType] = ""
		if ds, ok := c.lookupDataSource(v.DataSourceID()); ok {
			rec[FieldDataSource] = ds.XID
			if ds.ErrorCodes != nil {
				rec[FieldDataSourceErrorType] = ds.ErrorCodes.Code(v.ErrorTypeID())
			}
		}

	case *event.System:
		rec[FieldSystemType] = event.SystemTypeCodes.Code(v.SystemTypeID())
		if h := v.DuplicateHandling(); h != event.DoNotAllow {
			rec[FieldDuplicateHandling] = h.String()
		}

	case *event.Compound:
		rec[FieldCompoundDetector] = c.compoundXID(v.CompoundDetectorID())

	case *event.Scheduled:
		rec[FieldScheduledEvent] = c.scheduleXID(v.ScheduleID())

	case *event.Publisher:
		rec[FieldPublisher] = ""
		rec[FieldPublisherErrorType] = ""
		if pub, ok := c.lookupPublisher(v.PublisherID()); ok {
			rec[FieldPublisher] = pub.XID
			if pub.ErrorCodes != nil {
				rec[FieldPublisherErrorType] = pub.ErrorCodes.Code(v.ErrorTypeID())
			}
		}

	case *event.Audit:
		rec[FieldAuditType] = event.AuditObjectCodes.Code(v.ObjectTypeID())
		rec[FieldAuditID] = v.ReferenceID1()

	case *event.Maintenance:
		rec[FieldMaintenanceEvent] = c.maintenanceXID(v.MaintenanceID())
	}

	return rec
}

func (c *Codec) pointXID(id int) string {
	if c.resolvers.DataPoints == nil {
		return ""
	}
	if p, ok := c.resolvers.DataPoints.PointByID(id); ok {
		return p.XID
	}
	return ""
}

func (c *Codec) detectorXID(id int) string {
	if c.resolvers.DataPoints == nil {
		return ""
	}
	if d, ok := c.resolvers.DataPoints.DetectorByID(id); ok {
		return d.XID
	}
	return ""
}

func (c *Codec) lookupDataSource(id int) (*registry.DataSource, bool) {
	if c.resolvers.DataSources == nil {
		return nil, false
	}
	return c.resolvers.DataSources.DataSourceByID(id)
}

func (c *Codec) lookupPublisher(id int) (*registry.Publisher, bool) {
	if c.resolvers.Publishers == nil {
		return nil, false
	}
	return c.resolvers.Publishers.PublisherByID(id)
}

func (c *Codec) compoundXID(id int) string {
	if c.resolvers.CompoundDetectors == nil {
		return ""
	}
	if cd, ok := c.resolvers.CompoundDetectors.CompoundDetectorByID(id); ok {
		return cd.XID
	}
	return ""
}

func (c *Codec) scheduleXID(id int) string {
	if c.resolvers.ScheduledEvents == nil {
		return ""
	}
	if s, ok := c.resolvers.ScheduledEvents.ScheduledEventByID(id); ok {
		return s.XID
	}
	return ""
}

func (c *Codec) maintenanceXID(id int) string {
	if c.resolvers.MaintenanceEvents == nil {
		return ""
	}
	if me, ok := c.resolvers.MaintenanceEvents.MaintenanceEventByID(id); ok {
		return me.XID
	}
	return ""
}
