package event

import "github.com/atoverton/alarmkit/pkg/alarmkit/codes"

// Audit object type ids. Values are persisted; do not renumber.
const (
	AuditObjectDataSource = iota + 1
	AuditObjectDataPoint
	AuditObjectPointEventDetector
	AuditObjectCompoundDetector
	AuditObjectScheduledEvent
	AuditObjectPointLink
	AuditObjectMaintenanceEvent
)

// AuditObjectCodes maps audit object types to their export codes.
var AuditObjectCodes = codes.New().
	Add(AuditObjectDataSource, "DATA_SOURCE").
	Add(AuditObjectDataPoint, "DATA_POINT").
	Add(AuditObjectPointEventDetector, "POINT_EVENT_DETECTOR").
	Add(AuditObjectCompoundDetector, "COMPOUND_EVENT_DETECTOR").
	Add(AuditObjectScheduledEvent, "SCHEDULED_EVENT").
	Add(AuditObjectPointLink, "POINT_LINK").
	Add(AuditObjectMaintenanceEvent, "MAINTENANCE_EVENT")

// Audit is the event type for a configuration change a user made that
// other users need to acknowledge. The database-generated audit record id
// is the identity; the object type and acting user are descriptive.
type Audit struct {
	base
	auditID      int
	objectTypeID int
	raisedByID   int
}

var _ Type = (*Audit)(nil)

// NewAudit creates an audit event type. raisedByID is the id of the user
// whose change raised the event, or 0 when unknown.
func NewAudit(auditID, objectTypeID, raisedByID int) *Audit {
	return &Audit{auditID: auditID, objectTypeID: objectTypeID, raisedByID: raisedByID}
}

// Kind returns KindAudit.
func (e *Audit) Kind() Kind { return KindAudit }

// ReferenceID1 returns the audit record id.
func (e *Audit) ReferenceID1() int { return e.auditID }

// DuplicateHandling returns Allow: every change needs its own
// acknowledgement.
func (e *Audit) DuplicateHandling() DuplicateHandling { return Allow }

// Override returns OverrideCoexist: each change stays active until it is
// acknowledged, even when another change to the same record follows.
func (e *Audit) Override() OverrideBehavior { return OverrideCoexist }

// ExcludeUser suppresses notification to the user whose change raised the
// event; acknowledging your own change is noise.
func (e *Audit) ExcludeUser(u User) bool {
	return e.raisedByID != 0 && u.ID == e.raisedByID
}

// ObjectTypeID returns the audit object type.
func (e *Audit) ObjectTypeID() int { return e.objectTypeID }

// RaisedByID returns the acting user's id, or 0 when unknown.
func (e *Audit) RaisedByID() int { return e.raisedByID }
