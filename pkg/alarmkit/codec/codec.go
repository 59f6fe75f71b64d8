package codec

import (
	"github.com/atoverton/alarmkit/pkg/alarmkit/event"
	"github.com/atoverton/alarmkit/pkg/alarmkit/registry"
)

// Transport field names. sourceType is the discriminator every record
// carries; the rest are variant-specific and hold external ids or codes,
// never internal numeric ids.
const (
	FieldSourceType          = "sourceType"
	FieldDataPoint           = "dataPoint"
	FieldPointEventDetector  = "pointEventDetector"
	FieldDataSource          = "dataSource"
	FieldDataSourceErrorType = "dataSourceErrorType"
	FieldSystemType          = "systemType"
	FieldDuplicateHandling   = "duplicateHandling"
	FieldCompoundDetector    = "compoundDetector"
	FieldScheduledEvent      = "scheduledEvent"
	FieldPublisher           = "publisher"
	FieldPublisherErrorType  = "publisherErrorType"
	FieldAuditType           = "auditType"
	FieldAuditID             = "auditId"
	FieldMaintenanceEvent    = "maintenanceEvent"
)

// decodeFunc reconstructs one variant from its transport form.
type decodeFunc func(Record) (event.Type, error)

// Codec converts event types to and from their transport representation,
// resolving external ids through the registries it was constructed with.
//
// A Codec is immutable after New and safe for concurrent use; decoding
// unrelated records concurrently is fine.
type Codec struct {
	resolvers registry.Resolvers
	decoders  map[event.Kind]decodeFunc
}

// New creates a Codec backed by the given resolvers. A nil resolver field
// makes every reference of that kind unresolvable, which is convenient in
// tests that only exercise some variants.
func New(resolvers registry.Resolvers) *Codec {
	c := &Codec{resolvers: resolvers}
	c.decoders = map[event.Kind]decodeFunc{
		event.KindDataPoint:   c.decodeDataPoint,
		event.KindDataSource:  c.decodeDataSource,
		event.KindSystem:      c.decodeSystem,
		event.KindCompound:    c.decodeCompound,
		event.KindScheduled:   c.decodeScheduled,
		event.KindPublisher:   c.decodePublisher,
		event.KindAudit:       c.decodeAudit,
		event.KindMaintenance: c.decodeMaintenance,
	}
	return c
}

// Decode reconstructs an event type from its transport form.
//
// Errors are one of MissingFieldError, InvalidCodeError, or
// UnresolvedReferenceError; they abort this record only and should not be
// retried.
func (c *Codec) Decode(rec Record) (event.Type, error) {
	id, err := requireCode(rec, FieldSourceType, event.SourceCodes)
	if err != nil {
		return nil, err
	}
	// The decoder table is total over the eight kinds requireCode admits.
	return c.decoders[event.Kind(id)](rec)
}

func (c *Codec) decodeDataPoint(rec Record) (event.Type, error) {
	det, err := c.requirePointDetector(rec, FieldDataPoint, FieldPointEventDetector)
	if err != nil {
		return nil, err
	}
	if det.ChangeDetector {
		return event.NewChangeDetector(det.DataPointID, det.ID), nil
	}
	return event.NewDataPoint(det.DataPointID, det.ID, det.Handling), nil
}

func (c *Codec) decodeDataSource(rec Record) (event.Type, error) {
	ds, err := c.requireDataSource(rec, FieldDataSource)
	if err != nil {
		return nil, err
	}
	errorID, err := requireCode(rec, FieldDataSourceErrorType, ds.ErrorCodes)
	if err != nil {
		return nil, err
	}
	return event.NewDataSource(ds.ID, errorID), nil
}

func (c *Codec) decodeSystem(rec Record) (event.Type, error) {
	typeID, err := requireCode(rec, FieldSystemType, event.SystemTypeCodes)
	if err != nil {
		return nil, err
	}
	if !rec.Has(FieldDuplicateHandling) {
		return event.NewSystem(typeID), nil
	}
	handlingID, err := requireCode(rec, FieldDuplicateHandling, event.DuplicateHandlingCodes)
	if err != nil {
		return nil, err
	}
	return event.NewSystemWithHandling(typeID, event.DuplicateHandling(handlingID)), nil
}

func (c *Codec) decodeCompound(rec Record) (event.Type, error) {
	cd, err := c.requireCompoundDetector(rec, FieldCompoundDetector)
	if err != nil {
		return nil, err
	}
	return event.NewCompound(cd.ID), nil
}

func (c *Codec) decodeScheduled(rec Record) (event.Type, error) {
	se, err := c.requireScheduledEvent(rec, FieldScheduledEvent)
	if err != nil {
		return nil, err
	}
	return event.NewScheduled(se.ID), nil
}

func (c *Codec) decodePublisher(rec Record) (event.Type, error) {
	pub, err := c.requirePublisher(rec, FieldPublisher)
	if err != nil {
		return nil, err
	}
	errorID, err := requireCode(rec, FieldPublisherErrorType, pub.ErrorCodes)
	if err != nil {
		return nil, err
	}
	return event.NewPublisher(pub.ID, errorID), nil
}

func (c *Codec) decodeAudit(rec Record) (event.Type, error) {
	objectType, err := requireCode(rec, FieldAuditType, event.AuditObjectCodes)
	if err != nil {
		return nil, err
	}
	auditID, err := requireInt(rec, FieldAuditID)
	if err != nil {
		return nil, err
	}
	// The acting user is runtime state, not configuration; it does not
	// survive export.
	return event.NewAudit(auditID, objectType, 0), nil
}

func (c *Codec) decodeMaintenance(rec Record) (event.Type, error) {
	me, err := c.requireMaintenanceEvent(rec, FieldMaintenanceEvent)
	if err != nil {
		return nil, err
	}
	return event.NewMaintenance(me.ID), nil
}
