// Package event defines the identity of the events a monitoring platform
// raises: which of the eight subsystems produced one, which entity it
// concerns, and how a new occurrence relates to an occurrence of the same
// identity that is still active.
//
// # Identity
//
// Every event type is a Type value with a Kind and a pair of reference
// ids. The tuple (Kind, ReferenceID1, ReferenceID2) is the global identity;
// KeyOf extracts it as a comparable Key for use in dedup maps:
//
//	active := map[event.Key]*Occurrence{}
//	et := event.NewDataSource(12, 3)
//	if occ, ok := active[event.KeyOf(et)]; ok {
//	    switch event.Decide(et.DuplicateHandling(), et.Override(), msg, occ.Message) {
//	    case event.Discard:
//	        // drop the new occurrence
//	    case event.Supersede:
//	        // replace occ with the new occurrence
//	    case event.Raise:
//	        // keep both active
//	    }
//	}
//
// # Variants
//
// One concrete type exists per producing subsystem: DataPoint, DataSource,
// System, Compound, Scheduled, Publisher, Audit and Maintenance. Each fixes
// its duplicate handling at construction, and values are immutable, so they
// are freely shareable across raising goroutines.
//
// The duplicate-handling decision is a pure function of the variant; it
// never reads the clock, randomness, or any external state.
package event
