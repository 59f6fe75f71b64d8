package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/atoverton/alarmkit/pkg/alarmkit/codes"
	"github.com/atoverton/alarmkit/pkg/alarmkit/event"
)

// Seed is a declarative registry fixture, loadable from YAML or JSON.
// Tests and examples use it to stand up a Memory registry in one call.
type Seed struct {
	DataPoints        []SeedDataPoint  `yaml:"dataPoints" json:"dataPoints"`
	DataSources       []SeedDataSource `yaml:"dataSources" json:"dataSources"`
	Publishers        []SeedPublisher  `yaml:"publishers" json:"publishers"`
	ScheduledEvents   []SeedEntity     `yaml:"scheduledEvents" json:"scheduledEvents"`
	CompoundDetectors []SeedEntity     `yaml:"compoundDetectors" json:"compoundDetectors"`
	MaintenanceEvents []SeedEntity     `yaml:"maintenanceEvents" json:"maintenanceEvents"`
}

// SeedDataPoint declares a data point and its detectors.
type SeedDataPoint struct {
	ID           int            `yaml:"id" json:"id"`
	XID          string         `yaml:"xid" json:"xid"`
	Name         string         `yaml:"name" json:"name"`
	DataSourceID int            `yaml:"dataSourceId" json:"dataSourceId"`
	Detectors    []SeedDetector `yaml:"detectors" json:"detectors"`
}

// SeedDetector declares a point event detector. Handling is an export code
// ("DO_NOT_ALLOW", "IGNORE", "IGNORE_SAME_MESSAGE", "ALLOW"); empty means
// DO_NOT_ALLOW.
type SeedDetector struct {
	ID             int    `yaml:"id" json:"id"`
	XID            string `yaml:"xid" json:"xid"`
	Handling       string `yaml:"duplicateHandling" json:"duplicateHandling"`
	ChangeDetector bool   `yaml:"changeDetector" json:"changeDetector"`
}

// SeedDataSource declares a data source. ErrorTypes lists the error type
// codes in id order, starting at 1.
type SeedDataSource struct {
	ID         int      `yaml:"id" json:"id"`
	XID        string   `yaml:"xid" json:"xid"`
	Name       string   `yaml:"name" json:"name"`
	ErrorTypes []string `yaml:"errorTypes" json:"errorTypes"`
}

// SeedPublisher declares a publisher, shaped like SeedDataSource.
type SeedPublisher struct {
	ID         int      `yaml:"id" json:"id"`
	XID        string   `yaml:"xid" json:"xid"`
	Name       string   `yaml:"name" json:"name"`
	ErrorTypes []string `yaml:"errorTypes" json:"errorTypes"`
}

// SeedEntity declares an entity with no structure beyond its ids.
type SeedEntity struct {
	ID   int    `yaml:"id" json:"id"`
	XID  string `yaml:"xid" json:"xid"`
	Name string `yaml:"name" json:"name"`
}

// LoadSeed reads a seed file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return SeedFromYAML(data)
	case ".json":
		return SeedFromJSON(data)
	default:
		return nil, fmt.Errorf("unsupported seed file extension: %s", ext)
	}
}

// SeedFromYAML parses YAML data into a Seed.
func SeedFromYAML(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse yaml seed: %w", err)
	}
	return &s, nil
}

// SeedFromJSON parses JSON data into a Seed.
func SeedFromJSON(data []byte) (*Seed, error) {
	var s Seed
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse json seed: %w", err)
	}
	return &s, nil
}

// Apply loads every entity in the seed into the registry.
// Unknown duplicate handling codes are rejected.
func (m *Memory) Apply(s *Seed) error {
	for _, sp := range s.DataPoints {
		p := m.AddDataPoint(&DataPoint{
			ID:           sp.ID,
			XID:          sp.XID,
			Name:         sp.Name,
			DataSourceID: sp.DataSourceID,
		})
		for _, sd := range sp.Detectors {
			handling := event.DoNotAllow
			if sd.Handling != "" {
				h, ok := event.ParseDuplicateHandling(sd.Handling)
				if !ok {
					return fmt.Errorf("detector %s: unknown duplicate handling %q", sd.XID, sd.Handling)
				}
				handling = h
			}
			if sd.ChangeDetector {
				handling = event.Allow
			}
			m.AddDetector(&Detector{
				ID:             sd.ID,
				XID:            sd.XID,
				DataPointID:    p.ID,
				Handling:       handling,
				ChangeDetector: sd.ChangeDetector,
			})
		}
	}

	for _, sd := range s.DataSources {
		m.AddDataSource(&DataSource{
			ID:         sd.ID,
			XID:        sd.XID,
			Name:       sd.Name,
			ErrorCodes: errorTable(sd.ErrorTypes),
		})
	}
	for _, sp := range s.Publishers {
		m.AddPublisher(&Publisher{
			ID:         sp.ID,
			XID:        sp.XID,
			Name:       sp.Name,
			ErrorCodes: errorTable(sp.ErrorTypes),
		})
	}
	for _, se := range s.ScheduledEvents {
		m.AddScheduledEvent(&ScheduledEvent{ID: se.ID, XID: se.XID, Name: se.Name})
	}
	for _, sc := range s.CompoundDetectors {
		m.AddCompoundDetector(&CompoundDetector{ID: sc.ID, XID: sc.XID, Name: sc.Name})
	}
	for _, sm := range s.MaintenanceEvents {
		m.AddMaintenanceEvent(&MaintenanceEvent{ID: sm.ID, XID: sm.XID, Name: sm.Name})
	}
	return nil
}

// errorTable numbers codes from 1 in list order.
func errorTable(codesList []string) *codes.Table {
	t := codes.New()
	for i, code := range codesList {
		t.Add(i+1, code)
	}
	return t
}
