package codec_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atoverton/alarmkit/pkg/alarmkit/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordString(t *testing.T) {
	rec := codec.Record{"a": "x", "b": 3}

	s, ok := rec.String("a")
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = rec.String("b")
	assert.False(t, ok)
	_, ok = rec.String("missing")
	assert.False(t, ok)
}

func TestRecordInt(t *testing.T) {
	rec := codec.Record{
		"int":      7,
		"int64":    int64(8),
		"float":    float64(9), // what encoding/json produces
		"fraction": 9.5,
		"text":     "10",
	}

	tests := []struct {
		field string
		want  int
		ok    bool
	}{
		{"int", 7, true},
		{"int64", 8, true},
		{"float", 9, true},
		{"fraction", 0, false},
		{"text", 0, false},
		{"missing", 0, false},
	}
	for _, tt := range tests {
		n, ok := rec.Int(tt.field)
		assert.Equal(t, tt.ok, ok, tt.field)
		assert.Equal(t, tt.want, n, tt.field)
	}
}

func TestRecordFromJSONNumbers(t *testing.T) {
	rec, err := codec.RecordFromJSON([]byte(`{"sourceType":"AUDIT","auditId":42}`))
	require.NoError(t, err)

	// JSON numbers arrive as float64; Int must still read them.
	n, ok := rec.Int("auditId")
	assert.True(t, ok)
	assert.Equal(t, 42, n)
}

func TestRecordsFromYAML(t *testing.T) {
	records, err := codec.RecordsFromYAML([]byte(`
- sourceType: SYSTEM
  systemType: SYSTEM_STARTUP
- sourceType: MAINTENANCE
  maintenanceEvent: me-pump-service
`))
	require.NoError(t, err)
	require.Len(t, records, 2)

	st, _ := records[0].String("sourceType")
	assert.Equal(t, "SYSTEM", st)
	assert.True(t, records[1].Has("maintenanceEvent"))
}

func TestRecordsFromYAMLMalformed(t *testing.T) {
	_, err := codec.RecordsFromYAML([]byte("sourceType: not-a-sequence"))
	assert.Error(t, err)
}

func TestRecordsFromFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "export.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("- sourceType: SYSTEM\n"), 0o644))
	records, err := codec.RecordsFromFile(yamlPath)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	jsonPath := filepath.Join(dir, "export.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"sourceType":"SYSTEM"}]`), 0o644))
	records, err = codec.RecordsFromFile(jsonPath)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = codec.RecordsFromFile(filepath.Join(dir, "export.txt"))
	assert.Error(t, err)

	_, err = codec.RecordsFromFile(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)
}

func TestRecordJSONRoundTrip(t *testing.T) {
	rec := codec.Record{"sourceType": "AUDIT", "auditType": "DATA_POINT", "auditId": 42}

	data, err := rec.JSON()
	require.NoError(t, err)

	back, err := codec.RecordFromJSON(data)
	require.NoError(t, err)

	st, _ := back.String("sourceType")
	assert.Equal(t, "AUDIT", st)
	n, ok := back.Int("auditId")
	assert.True(t, ok)
	assert.Equal(t, 42, n)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t,
		`missing required field "dataSource"`,
		(&codec.MissingFieldError{Field: "dataSource"}).Error())

	assert.Equal(t,
		`invalid code "BAD" in field "sourceType" (valid: DATA_POINT, SYSTEM)`,
		(&codec.InvalidCodeError{
			Field:      "sourceType",
			Value:      "BAD",
			ValidCodes: []string{"DATA_POINT", "SYSTEM"},
		}).Error())

	assert.Equal(t,
		`reference "ds-404" in field "dataSource" does not resolve`,
		(&codec.UnresolvedReferenceError{Field: "dataSource", XID: "ds-404"}).Error())
}
