package event

// Absent is the sentinel returned by convenience accessors for id kinds a
// variant does not own.
const Absent = -1

// User identifies a platform user for notification exclusion checks.
type User struct {
	ID       int
	Username string
}

// Type is the identity of an event: which subsystem raised it and which
// entity within that subsystem it concerns. Values are immutable once
// constructed and safe to share across goroutines.
//
// The tuple (Kind, ReferenceID1, ReferenceID2) is the global identity; two
// occurrences with equal tuples are the same event type for deduplication.
type Type interface {
	// Kind returns the producing subsystem.
	Kind() Kind

	// ReferenceID1 is the primary identity component. Its meaning depends
	// on the kind: detector id, data source id, system event type, and so on.
	ReferenceID1() int

	// ReferenceID2 is the secondary identity component, 0 where unused.
	ReferenceID2() int

	// DuplicateHandling returns the fixed policy for this variant.
	DuplicateHandling() DuplicateHandling

	// Override returns how Allow-class duplicates relate to the active
	// occurrence. Only consulted when DuplicateHandling is Allow.
	Override() OverrideBehavior

	// ExcludeUser reports whether notification of this event to the given
	// user should be suppressed, typically because the user's own action
	// raised it.
	ExcludeUser(u User) bool

	// IsSystemMessage is true only for the System variant.
	IsSystemMessage() bool

	// Convenience accessors return the owning id for the one variant that
	// has the concept and Absent everywhere else, saving callers a type
	// assertion.
	DataSourceID() int
	DataPointID() int
	ScheduleID() int
	CompoundDetectorID() int
	PublisherID() int
}

// base supplies the default behavior variants override selectively.
type base struct{}

func (base) ReferenceID2() int          { return 0 }
func (base) Override() OverrideBehavior { return OverrideSupersede }
func (base) ExcludeUser(User) bool      { return false }
func (base) IsSystemMessage() bool      { return false }
func (base) DataSourceID() int          { return Absent }
func (base) DataPointID() int           { return Absent }
func (base) ScheduleID() int            { return Absent }
func (base) CompoundDetectorID() int    { return Absent }
func (base) PublisherID() int           { return Absent }

// Key is the comparable identity tuple of an event type. Use it as a map
// key when tracking active occurrences.
type Key struct {
	Kind Kind
	Ref1 int
	Ref2 int
}

// KeyOf extracts the identity tuple from a Type.
func KeyOf(t Type) Key {
	return Key{Kind: t.Kind(), Ref1: t.ReferenceID1(), Ref2: t.ReferenceID2()}
}

// SameIdentity reports whether two event types are the same for
// deduplication purposes.
func SameIdentity(a, b Type) bool {
	return KeyOf(a) == KeyOf(b)
}
