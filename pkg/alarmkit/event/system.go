package event

import "github.com/atoverton/alarmkit/pkg/alarmkit/codes"

// System event type ids. Values are persisted; do not renumber.
const (
	SystemTypeStartup = iota + 1
	SystemTypeShutdown
	SystemTypeMaxAlarmLevelChanged
	SystemTypeUserLogin
	SystemTypeCompoundDetectorFailure
	SystemTypeSetPointHandlerFailure
	SystemTypeEmailSendFailure
	SystemTypeProcessFailure
)

// SystemTypeCodes maps system event type ids to their export codes.
var SystemTypeCodes = codes.New().
	Add(SystemTypeStartup, "SYSTEM_STARTUP").
	Add(SystemTypeShutdown, "SYSTEM_SHUTDOWN").
	Add(SystemTypeMaxAlarmLevelChanged, "MAX_ALARM_LEVEL_CHANGED").
	Add(SystemTypeUserLogin, "USER_LOGIN").
	Add(SystemTypeCompoundDetectorFailure, "COMPOUND_DETECTOR_FAILURE").
	Add(SystemTypeSetPointHandlerFailure, "SET_POINT_HANDLER_FAILURE").
	Add(SystemTypeEmailSendFailure, "EMAIL_SEND_FAILURE").
	Add(SystemTypeProcessFailure, "PROCESS_FAILURE")

// System is the event type for events the platform raises about itself.
// The system event type id is the identity.
type System struct {
	base
	systemTypeID int
	handling     DuplicateHandling
}

var _ Type = (*System)(nil)

// NewSystem creates a system event type with DoNotAllow handling, the
// right choice for system conditions that return to normal on their own.
func NewSystem(systemTypeID int) *System {
	return &System{systemTypeID: systemTypeID, handling: DoNotAllow}
}

// NewSystemWithHandling creates a system event type with an explicit
// duplicate handling. Types with no return-to-normal, such as email send
// failures, use Ignore or Allow. An invalid handling falls back to
// DoNotAllow.
func NewSystemWithHandling(systemTypeID int, handling DuplicateHandling) *System {
	if !handling.Valid() {
		handling = DoNotAllow
	}
	return &System{systemTypeID: systemTypeID, handling: handling}
}

// Kind returns KindSystem.
func (e *System) Kind() Kind { return KindSystem }

// ReferenceID1 returns the system event type id.
func (e *System) ReferenceID1() int { return e.systemTypeID }

// DuplicateHandling returns the handling configured for this system type.
func (e *System) DuplicateHandling() DuplicateHandling { return e.handling }

// IsSystemMessage returns true.
func (e *System) IsSystemMessage() bool { return true }

// SystemTypeID returns the system event type id.
func (e *System) SystemTypeID() int { return e.systemTypeID }
