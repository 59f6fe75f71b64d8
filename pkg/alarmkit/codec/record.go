package codec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record is the flat string-keyed transport form of an event type. Values
// come from YAML or JSON, so the numeric accessors coerce the types those
// parsers produce.
type Record map[string]any

// String returns the string value for field.
// The second return value is false when the field is missing or not a string.
func (r Record) String(field string) (string, bool) {
	v, ok := r[field]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Int returns the integer value for field.
// Accepts int, int64, and float64 without a fractional part (the JSON
// number type). The second return value is false when the field is missing
// or not convertible.
func (r Record) Int(field string) (int, bool) {
	v, ok := r[field]
	if !ok {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		if val == float64(int(val)) {
			return int(val), true
		}
	}
	return 0, false
}

// Has returns true if the field exists.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// JSON serializes the record as JSON.
func (r Record) JSON() ([]byte, error) {
	return json.Marshal(map[string]any(r))
}

// YAML serializes the record as YAML.
func (r Record) YAML() ([]byte, error) {
	return yaml.Marshal(map[string]any(r))
}

// RecordFromJSON parses a single JSON object into a Record.
func RecordFromJSON(data []byte) (Record, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse json record: %w", err)
	}
	return Record(m), nil
}

// RecordFromYAML parses a single YAML document into a Record.
func RecordFromYAML(data []byte) (Record, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse yaml record: %w", err)
	}
	return Record(m), nil
}

// RecordsFromYAML parses a YAML sequence of objects, the shape of an
// exported configuration batch.
func RecordsFromYAML(data []byte) ([]Record, error) {
	var ms []map[string]any
	if err := yaml.Unmarshal(data, &ms); err != nil {
		return nil, fmt.Errorf("parse yaml records: %w", err)
	}
	records := make([]Record, len(ms))
	for i, m := range ms {
		records[i] = Record(m)
	}
	return records, nil
}

// RecordsFromJSON parses a JSON array of objects.
func RecordsFromJSON(data []byte) ([]Record, error) {
	var ms []map[string]any
	if err := json.Unmarshal(data, &ms); err != nil {
		return nil, fmt.Errorf("parse json records: %w", err)
	}
	records := make([]Record, len(ms))
	for i, m := range ms {
		records[i] = Record(m)
	}
	return records, nil
}

// RecordsFromFile loads an exported batch, auto-detecting format by
// extension. Supported extensions: .yaml, .yml, .json
func RecordsFromFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return RecordsFromYAML(data)
	case ".json":
		return RecordsFromJSON(data)
	default:
		return nil, fmt.Errorf("unsupported export file extension: %s", ext)
	}
}
