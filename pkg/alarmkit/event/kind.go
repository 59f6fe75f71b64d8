package event

import (
	"strconv"

	"github.com/atoverton/alarmkit/pkg/alarmkit/codes"
)

// Kind identifies which subsystem produced an event type.
// Values are persisted and exported; do not renumber.
type Kind int

const (
	// KindDataPoint covers events raised by point event detectors. All
	// detectors share a single id space, so the detector id alone
	// identifies the event type.
	KindDataPoint Kind = 1

	// KindDataSource covers events a data source raises for its own
	// reasons, such as no response from the external system. Error types
	// are enumerated inside each data source implementation, so the
	// identity is the data source id combined with the error type.
	KindDataSource Kind = 3

	// KindSystem covers events raised by the platform itself, such as
	// low disk space. System event types are enumerated in SystemTypeCodes.
	KindSystem Kind = 4

	// KindCompound covers compound detectors, which listen to point
	// detectors and scheduled events and evaluate a logical statement.
	// Their ids are database-generated.
	KindCompound Kind = 5

	// KindScheduled covers events raised by the scheduler at instants
	// the user configured. Ids are database-generated.
	KindScheduled Kind = 6

	// KindPublisher covers events a publisher raises internally, such as
	// a general publishing failure. Error types are enumerated inside
	// each publisher implementation, so the identity is the publisher id
	// combined with the error type.
	KindPublisher Kind = 7

	// KindAudit covers changes made by a user that other users need to
	// acknowledge. Ids are database-generated.
	KindAudit Kind = 8

	// KindMaintenance covers maintenance mode becoming active. Ids are
	// database-generated.
	KindMaintenance Kind = 9
)

// SourceCodes maps every Kind to its stable export code.
var SourceCodes = codes.New().
	Add(int(KindDataPoint), "DATA_POINT").
	Add(int(KindDataSource), "DATA_SOURCE").
	Add(int(KindSystem), "SYSTEM").
	Add(int(KindCompound), "COMPOUND").
	Add(int(KindScheduled), "SCHEDULED").
	Add(int(KindPublisher), "PUBLISHER").
	Add(int(KindAudit), "AUDIT").
	Add(int(KindMaintenance), "MAINTENANCE")

// CodeForKind returns the export code for k.
// It is total over the eight kinds and returns "" for anything else.
func CodeForKind(k Kind) string {
	return SourceCodes.Code(int(k))
}

// KindForCode returns the Kind named by an export code.
// The second return value reports whether the code is one of the eight.
func KindForCode(code string) (Kind, bool) {
	id, ok := SourceCodes.ID(code)
	return Kind(id), ok
}

// String returns the export code, or a numeric form for unknown kinds.
func (k Kind) String() string {
	if code := CodeForKind(k); code != "" {
		return code
	}
	return "KIND(" + strconv.Itoa(int(k)) + ")"
}
