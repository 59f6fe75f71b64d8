package event

import "github.com/atoverton/alarmkit/pkg/alarmkit/codes"

// DuplicateHandling governs what happens when an event is raised while an
// occurrence of the same identity is still active.
// Values are persisted; do not renumber.
type DuplicateHandling int

const (
	// DoNotAllow suppresses the new occurrence entirely. Used for event
	// types that always return to normal before they can recur.
	DoNotAllow DuplicateHandling = 1

	// Ignore discards the new occurrence regardless of content. The
	// initial occurrence is usually the one of diagnostic interest.
	Ignore DuplicateHandling = 2

	// IgnoreSameMessage discards the new occurrence only when its message
	// matches the active one; a different message supersedes it.
	IgnoreSameMessage DuplicateHandling = 3

	// Allow raises every occurrence so each one can be acknowledged
	// independently. Change detectors use this.
	Allow DuplicateHandling = 4
)

// DuplicateHandlingCodes maps the four handling values to their export codes.
var DuplicateHandlingCodes = codes.New().
	Add(int(DoNotAllow), "DO_NOT_ALLOW").
	Add(int(Ignore), "IGNORE").
	Add(int(IgnoreSameMessage), "IGNORE_SAME_MESSAGE").
	Add(int(Allow), "ALLOW")

// String returns the handling's export code.
func (d DuplicateHandling) String() string {
	if code := DuplicateHandlingCodes.Code(int(d)); code != "" {
		return code
	}
	return "UNKNOWN"
}

// ParseDuplicateHandling returns the handling named by an export code such
// as "IGNORE_SAME_MESSAGE". The second return value reports whether the
// code names one of the four values.
func ParseDuplicateHandling(code string) (DuplicateHandling, bool) {
	id, ok := DuplicateHandlingCodes.ID(code)
	return DuplicateHandling(id), ok
}

// Valid returns true for the four defined handling values.
func (d DuplicateHandling) Valid() bool {
	return d >= DoNotAllow && d <= Allow
}

// Decision is the disposition of a new occurrence relative to an active
// occurrence of the same identity.
type Decision int

const (
	// Discard drops the new occurrence; the active one stays untouched.
	Discard Decision = iota

	// Supersede replaces the active occurrence with the new one.
	Supersede

	// Raise adds the new occurrence alongside the active one.
	Raise
)

// String returns the decision name.
func (d Decision) String() string {
	switch d {
	case Discard:
		return "discard"
	case Supersede:
		return "supersede"
	case Raise:
		return "raise"
	default:
		return "unknown"
	}
}

// OverrideBehavior selects how Allow-class duplicates relate to the active
// occurrence: replace it in place, or coexist as a second active occurrence.
// The raising pipeline configures this per variant.
type OverrideBehavior int

const (
	// OverrideSupersede replaces the active occurrence.
	OverrideSupersede OverrideBehavior = iota

	// OverrideCoexist keeps both occurrences active.
	OverrideCoexist
)

// Decide returns the disposition for a newly raised occurrence whose
// identity matches an already-active occurrence.
//
// The function is pure: same inputs always produce the same decision. It
// must only be consulted when the identity tuples are equal; with no active
// occurrence the new event is simply raised.
func Decide(h DuplicateHandling, override OverrideBehavior, newMessage, oldMessage string) Decision {
	switch h {
	case DoNotAllow, Ignore:
		return Discard
	case IgnoreSameMessage:
		if newMessage == oldMessage {
			return Discard
		}
		return Supersede
	case Allow:
		if override == OverrideCoexist {
			return Raise
		}
		return Supersede
	default:
		// Unknown handling values behave like DoNotAllow, the most
		// conservative disposition.
		return Discard
	}
}
