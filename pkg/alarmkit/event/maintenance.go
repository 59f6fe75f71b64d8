package event

// Maintenance is the event type raised when a maintenance window becomes
// active. The database-generated maintenance event id is the identity.
type Maintenance struct {
	base
	maintenanceID int
}

var _ Type = (*Maintenance)(nil)

// NewMaintenance creates a maintenance event type.
func NewMaintenance(maintenanceID int) *Maintenance {
	return &Maintenance{maintenanceID: maintenanceID}
}

// Kind returns KindMaintenance.
func (e *Maintenance) Kind() Kind { return KindMaintenance }

// ReferenceID1 returns the maintenance event id.
func (e *Maintenance) ReferenceID1() int { return e.maintenanceID }

// DuplicateHandling returns DoNotAllow: a maintenance event deactivates
// when its window ends before it can become active again.
func (e *Maintenance) DuplicateHandling() DuplicateHandling { return DoNotAllow }

// MaintenanceID returns the maintenance event id.
func (e *Maintenance) MaintenanceID() int { return e.maintenanceID }
