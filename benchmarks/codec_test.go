package benchmarks

import (
	"testing"

	"github.com/atoverton/alarmkit/pkg/alarmkit/codec"
	"github.com/atoverton/alarmkit/pkg/alarmkit/codes"
	"github.com/atoverton/alarmkit/pkg/alarmkit/event"
	"github.com/atoverton/alarmkit/pkg/alarmkit/registry"
)

// buildRegistry seeds a memory registry with n data points, each with one
// detector, plus one data source.
func buildRegistry(n int) *registry.Memory {
	m := registry.NewMemory()
	m.AddDataSource(&registry.DataSource{
		ID: 1, XID: "ds-1",
		ErrorCodes: codes.New().Add(1, "DATA_SOURCE_EXCEPTION"),
	})
	for i := 0; i < n; i++ {
		p := m.AddDataPoint(&registry.DataPoint{DataSourceID: 1})
		m.AddDetector(&registry.Detector{
			DataPointID: p.ID,
			Handling:    event.DoNotAllow,
		})
	}
	return m
}

// BenchmarkDecode_DataSource decodes a data source record.
func BenchmarkDecode_DataSource(b *testing.B) {
	c := codec.New(buildRegistry(1).Resolvers())
	rec := codec.Record{
		codec.FieldSourceType:          "DATA_SOURCE",
		codec.FieldDataSource:          "ds-1",
		codec.FieldDataSourceErrorType: "DATA_SOURCE_EXCEPTION",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Decode(rec)
	}
}

// BenchmarkDecode_DataPoint decodes a data point record, a two-step
// resolution through the point and its detector.
func BenchmarkDecode_DataPoint(b *testing.B) {
	m := buildRegistry(1)
	p, _ := m.PointByID(2)
	d, _ := m.DetectorByID(3)
	c := codec.New(m.Resolvers())
	rec := codec.Record{
		codec.FieldSourceType:         "DATA_POINT",
		codec.FieldDataPoint:          p.XID,
		codec.FieldPointEventDetector: d.XID,
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Decode(rec)
	}
}

// BenchmarkDecode_Cached decodes through the LRU-cached resolver.
func BenchmarkDecode_Cached(b *testing.B) {
	cached, err := registry.NewCached(buildRegistry(1).Resolvers(), 256)
	if err != nil {
		b.Fatal(err)
	}
	c := codec.New(cached.Resolvers())
	rec := codec.Record{
		codec.FieldSourceType:          "DATA_SOURCE",
		codec.FieldDataSource:          "ds-1",
		codec.FieldDataSourceErrorType: "DATA_SOURCE_EXCEPTION",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Decode(rec)
	}
}

// BenchmarkEncode_System encodes a system event type, which needs no
// registry lookups.
func BenchmarkEncode_System(b *testing.B) {
	c := codec.New(registry.Resolvers{})
	et := event.NewSystem(event.SystemTypeStartup)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Encode(et)
	}
}

// BenchmarkDecide measures the duplicate handling decision alone.
func BenchmarkDecide(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = event.Decide(event.IgnoreSameMessage, event.OverrideSupersede, "new", "old")
	}
}

// BenchmarkKeyOf measures identity key extraction.
func BenchmarkKeyOf(b *testing.B) {
	et := event.NewDataSource(1, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = event.KeyOf(et)
	}
}
