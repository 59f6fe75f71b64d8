package registry_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/atoverton/alarmkit/pkg/alarmkit/codes"
	"github.com/atoverton/alarmkit/pkg/alarmkit/event"
	"github.com/atoverton/alarmkit/pkg/alarmkit/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLite(t *testing.T) *registry.SQLite {
	t.Helper()
	s, err := registry.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLitePoints(t *testing.T) {
	s := newSQLite(t)

	require.NoError(t, s.AddDataPoint(&registry.DataPoint{
		ID: 10, XID: "dp-temp", Name: "Temperature", DataSourceID: 20,
	}))

	p, ok := s.PointByXID("dp-temp")
	require.True(t, ok)
	assert.Equal(t, 10, p.ID)
	assert.Equal(t, "Temperature", p.Name)
	assert.Equal(t, 20, p.DataSourceID)

	p, ok = s.PointByID(10)
	require.True(t, ok)
	assert.Equal(t, "dp-temp", p.XID)

	_, ok = s.PointByXID("dp-nope")
	assert.False(t, ok)
	assert.NoError(t, s.Err())
}

func TestSQLiteDetectors(t *testing.T) {
	s := newSQLite(t)

	require.NoError(t, s.AddDataPoint(&registry.DataPoint{ID: 10, XID: "dp-a"}))
	require.NoError(t, s.AddDataPoint(&registry.DataPoint{ID: 11, XID: "dp-b"}))
	require.NoError(t, s.AddDetector(&registry.Detector{
		ID: 100, XID: "ped-a", DataPointID: 10,
		Handling: event.IgnoreSameMessage,
	}))
	require.NoError(t, s.AddDetector(&registry.Detector{
		ID: 101, XID: "ped-a", DataPointID: 11,
		Handling: event.Allow, ChangeDetector: true,
	}))

	// XID lookup is scoped to the owning point.
	d, ok := s.DetectorByXID("ped-a", 10)
	require.True(t, ok)
	assert.Equal(t, 100, d.ID)
	assert.Equal(t, event.IgnoreSameMessage, d.Handling)
	assert.False(t, d.ChangeDetector)

	d, ok = s.DetectorByXID("ped-a", 11)
	require.True(t, ok)
	assert.Equal(t, 101, d.ID)
	assert.True(t, d.ChangeDetector)

	_, ok = s.DetectorByXID("ped-a", 12)
	assert.False(t, ok)

	d, ok = s.DetectorByID(100)
	require.True(t, ok)
	assert.Equal(t, 10, d.DataPointID)
}

func TestSQLiteDataSourceErrorCodes(t *testing.T) {
	s := newSQLite(t)

	require.NoError(t, s.AddDataSource(&registry.DataSource{
		ID: 20, XID: "ds-weather", Name: "Weather",
		ErrorCodes: codes.New().
			Add(1, "DATA_SOURCE_EXCEPTION").
			Add(2, "POLL_ABORTED"),
	}))

	ds, ok := s.DataSourceByXID("ds-weather")
	require.True(t, ok)
	assert.Equal(t, []string{"DATA_SOURCE_EXCEPTION", "POLL_ABORTED"}, ds.ErrorCodes.List())

	id, ok := ds.ErrorCodes.ID("POLL_ABORTED")
	require.True(t, ok)
	assert.Equal(t, 2, id)

	// Re-adding replaces the error type set.
	require.NoError(t, s.AddDataSource(&registry.DataSource{
		ID: 20, XID: "ds-weather", Name: "Weather",
		ErrorCodes: codes.New().Add(1, "TIMEOUT"),
	}))
	ds, ok = s.DataSourceByID(20)
	require.True(t, ok)
	assert.Equal(t, []string{"TIMEOUT"}, ds.ErrorCodes.List())
}

func TestSQLitePublishers(t *testing.T) {
	s := newSQLite(t)

	require.NoError(t, s.AddPublisher(&registry.Publisher{
		ID: 50, XID: "pub-http",
		ErrorCodes: codes.New().Add(1, "SEND_EXCEPTION"),
	}))

	p, ok := s.PublisherByXID("pub-http")
	require.True(t, ok)
	assert.Equal(t, 50, p.ID)
	assert.Equal(t, []string{"SEND_EXCEPTION"}, p.ErrorCodes.List())

	_, ok = s.PublisherByID(999)
	assert.False(t, ok)
}

func TestSQLitePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.db")

	s, err := registry.NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.AddDataPoint(&registry.DataPoint{ID: 10, XID: "dp-temp"}))
	require.NoError(t, s.Close())

	reopened, err := registry.NewSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	p, ok := reopened.PointByXID("dp-temp")
	require.True(t, ok)
	assert.Equal(t, 10, p.ID)
}

func TestSQLiteCloseIdempotent(t *testing.T) {
	s, err := registry.NewSQLite(":memory:")
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	// Lookups after close report not-found rather than panic.
	_, ok := s.PointByID(1)
	assert.False(t, ok)
	assert.Error(t, s.AddDataPoint(&registry.DataPoint{ID: 1, XID: "dp"}))
}

func TestSQLiteConcurrentLookups(t *testing.T) {
	s := newSQLite(t)
	require.NoError(t, s.AddDataPoint(&registry.DataPoint{ID: 10, XID: "dp-temp"}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, ok := s.PointByXID("dp-temp")
				assert.True(t, ok)
			}
		}()
	}
	wg.Wait()
	assert.NoError(t, s.Err())
}
