package event

// Compound is the event type for compound detectors, which watch point
// detectors and scheduled events and evaluate a configured logical
// statement. The database-generated detector id is the identity.
type Compound struct {
	base
	detectorID int
}

var _ Type = (*Compound)(nil)

// NewCompound creates a compound detector event type.
func NewCompound(detectorID int) *Compound {
	return &Compound{detectorID: detectorID}
}

// Kind returns KindCompound.
func (e *Compound) Kind() Kind { return KindCompound }

// ReferenceID1 returns the compound detector id.
func (e *Compound) ReferenceID1() int { return e.detectorID }

// DuplicateHandling returns DoNotAllow: a compound detector deactivates
// before its statement can trigger again.
func (e *Compound) DuplicateHandling() DuplicateHandling { return DoNotAllow }

// CompoundDetectorID returns the compound detector id.
func (e *Compound) CompoundDetectorID() int { return e.detectorID }
