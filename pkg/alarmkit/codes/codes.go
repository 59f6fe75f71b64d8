// Package codes provides bidirectional mappings between internal integer
// identifiers and stable export code strings.
//
// A Table is built once and never modified afterwards, which makes it safe
// for concurrent readers without synchronization. Tables back the source
// taxonomy, the system event type enumeration, and the per-entity error
// type enumerations carried by data sources and publishers.
package codes

// Absent is returned by ID lookups when a code is not in the table.
const Absent = -1

// Table is an immutable bidirectional id <-> code mapping.
// Build it with New and Add; do not mutate after handing it out.
type Table struct {
	byID   map[int]string
	byCode map[string]int
	order  []string
}

// New creates an empty Table.
func New() *Table {
	return &Table{
		byID:   make(map[int]string),
		byCode: make(map[string]int),
	}
}

// Add registers an id/code pair and returns the table for chaining.
// Registering the same id or code twice replaces the earlier entry.
func (t *Table) Add(id int, code string) *Table {
	if old, ok := t.byID[id]; ok {
		delete(t.byCode, old)
		t.removeFromOrder(old)
	}
	if oldID, ok := t.byCode[code]; ok {
		delete(t.byID, oldID)
		t.removeFromOrder(code)
	}
	t.byID[id] = code
	t.byCode[code] = id
	t.order = append(t.order, code)
	return t
}

func (t *Table) removeFromOrder(code string) {
	for i, c := range t.order {
		if c == code {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}

// Code returns the export code for id, or the empty string if unknown.
// Lookups on a nil Table report unknown.
func (t *Table) Code(id int) string {
	if t == nil {
		return ""
	}
	return t.byID[id]
}

// ID returns the internal id for code.
// The second return value reports whether the code is in the table.
func (t *Table) ID(code string) (int, bool) {
	if t == nil {
		return 0, false
	}
	id, ok := t.byCode[code]
	return id, ok
}

// IDOrAbsent returns the internal id for code, or Absent if unknown.
func (t *Table) IDOrAbsent(code string) int {
	if t == nil {
		return Absent
	}
	if id, ok := t.byCode[code]; ok {
		return id
	}
	return Absent
}

// Has returns true if id is registered.
func (t *Table) Has(id int) bool {
	if t == nil {
		return false
	}
	_, ok := t.byID[id]
	return ok
}

// List returns all codes in registration order.
// The returned slice is a copy and may be modified by the caller.
func (t *Table) List() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Size returns the number of registered pairs.
func (t *Table) Size() int {
	if t == nil {
		return 0
	}
	return len(t.byID)
}
