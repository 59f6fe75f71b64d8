package event_test

import (
	"testing"

	"github.com/atoverton/alarmkit/pkg/alarmkit/event"
	"github.com/stretchr/testify/assert"
)

var allKinds = []event.Kind{
	event.KindDataPoint,
	event.KindDataSource,
	event.KindSystem,
	event.KindCompound,
	event.KindScheduled,
	event.KindPublisher,
	event.KindAudit,
	event.KindMaintenance,
}

func TestKindCodeRoundTrip(t *testing.T) {
	for _, k := range allKinds {
		code := event.CodeForKind(k)
		assert.NotEmpty(t, code, "kind %d has no export code", k)

		back, ok := event.KindForCode(code)
		assert.True(t, ok)
		assert.Equal(t, k, back)
	}
}

func TestKindCodes(t *testing.T) {
	tests := []struct {
		kind event.Kind
		code string
	}{
		{event.KindDataPoint, "DATA_POINT"},
		{event.KindDataSource, "DATA_SOURCE"},
		{event.KindSystem, "SYSTEM"},
		{event.KindCompound, "COMPOUND"},
		{event.KindScheduled, "SCHEDULED"},
		{event.KindPublisher, "PUBLISHER"},
		{event.KindAudit, "AUDIT"},
		{event.KindMaintenance, "MAINTENANCE"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.code, event.CodeForKind(tt.kind))
			assert.Equal(t, tt.code, tt.kind.String())
		})
	}
}

func TestKindForCodeUnknown(t *testing.T) {
	_, ok := event.KindForCode("POINT_LINK")
	assert.False(t, ok)

	// Codes are case sensitive.
	_, ok = event.KindForCode("data_point")
	assert.False(t, ok)
}

func TestSourceCodesComplete(t *testing.T) {
	assert.Len(t, event.SourceCodes.List(), 8)
}

func TestKindStringUnknown(t *testing.T) {
	assert.Equal(t, "KIND(42)", event.Kind(42).String())
}
