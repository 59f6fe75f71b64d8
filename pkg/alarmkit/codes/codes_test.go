package codes_test

import (
	"testing"

	"github.com/atoverton/alarmkit/pkg/alarmkit/codes"
	"github.com/stretchr/testify/assert"
)

func TestTableRoundTrip(t *testing.T) {
	table := codes.New().
		Add(1, "ALPHA").
		Add(2, "BETA").
		Add(3, "GAMMA")

	for _, tt := range []struct {
		id   int
		code string
	}{
		{1, "ALPHA"},
		{2, "BETA"},
		{3, "GAMMA"},
	} {
		assert.Equal(t, tt.code, table.Code(tt.id))
		id, ok := table.ID(tt.code)
		assert.True(t, ok)
		assert.Equal(t, tt.id, id)
	}
}

func TestTableUnknown(t *testing.T) {
	table := codes.New().Add(1, "ALPHA")

	assert.Equal(t, "", table.Code(99))

	_, ok := table.ID("NOPE")
	assert.False(t, ok)
	assert.Equal(t, codes.Absent, table.IDOrAbsent("NOPE"))
	assert.False(t, table.Has(99))
}

func TestTableListOrder(t *testing.T) {
	table := codes.New().
		Add(3, "THIRD").
		Add(1, "FIRST").
		Add(2, "SECOND")

	// List preserves registration order, not id order.
	assert.Equal(t, []string{"THIRD", "FIRST", "SECOND"}, table.List())
	assert.Equal(t, 3, table.Size())
}

func TestTableReplace(t *testing.T) {
	table := codes.New().
		Add(1, "OLD").
		Add(1, "NEW")

	assert.Equal(t, "NEW", table.Code(1))
	_, ok := table.ID("OLD")
	assert.False(t, ok)
	assert.Equal(t, 1, table.Size())
}

func TestTableListIsCopy(t *testing.T) {
	table := codes.New().Add(1, "ALPHA")
	list := table.List()
	list[0] = "MUTATED"
	assert.Equal(t, []string{"ALPHA"}, table.List())
}
