package event

// Scheduled is the event type for events the scheduler raises at instants
// the user configured. The database-generated schedule id is the identity.
type Scheduled struct {
	base
	scheduleID int
}

var _ Type = (*Scheduled)(nil)

// NewScheduled creates a scheduled event type.
func NewScheduled(scheduleID int) *Scheduled {
	return &Scheduled{scheduleID: scheduleID}
}

// Kind returns KindScheduled.
func (e *Scheduled) Kind() Kind { return KindScheduled }

// ReferenceID1 returns the schedule id.
func (e *Scheduled) ReferenceID1() int { return e.scheduleID }

// DuplicateHandling returns DoNotAllow: a scheduled event deactivates at
// the end of its window before it can trigger again.
func (e *Scheduled) DuplicateHandling() DuplicateHandling { return DoNotAllow }

// ScheduleID returns the schedule id.
func (e *Scheduled) ScheduleID() int { return e.scheduleID }
