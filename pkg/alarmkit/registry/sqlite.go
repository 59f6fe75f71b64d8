package registry

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/atoverton/alarmkit/pkg/alarmkit/codes"
	"github.com/atoverton/alarmkit/pkg/alarmkit/event"
)

// SQLite is a registry for the entity kinds an import deals with in bulk:
// data points with their detectors, data sources, and publishers. It is
// suitable for single-process production use.
//
// Query failures other than no-rows are reported as not-found, matching the
// resolver contract; callers needing the underlying cause can check Err.
type SQLite struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
	err    error
}

// NewSQLite opens or creates a registry database. The path should be a
// file path (e.g. "./registry.db") or ":memory:" for testing.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL improves concurrent read performance during imports
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS data_points (
			id INTEGER PRIMARY KEY,
			xid TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			data_source_id INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS detectors (
			id INTEGER PRIMARY KEY,
			xid TEXT NOT NULL,
			data_point_id INTEGER NOT NULL,
			handling INTEGER NOT NULL,
			change_detector INTEGER NOT NULL DEFAULT 0,
			UNIQUE (xid, data_point_id)
		)`,
		`CREATE TABLE IF NOT EXISTS data_sources (
			id INTEGER PRIMARY KEY,
			xid TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS data_source_error_types (
			data_source_id INTEGER NOT NULL,
			error_id INTEGER NOT NULL,
			code TEXT NOT NULL,
			PRIMARY KEY (data_source_id, error_id)
		)`,
		`CREATE TABLE IF NOT EXISTS publishers (
			id INTEGER PRIMARY KEY,
			xid TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS publisher_error_types (
			publisher_id INTEGER NOT NULL,
			error_id INTEGER NOT NULL,
			code TEXT NOT NULL,
			PRIMARY KEY (publisher_id, error_id)
		)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	return &SQLite{db: db}, nil
}

// Close releases the database handle. Safe to call more than once.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Err returns the error of the most recent failed lookup, if any.
func (s *SQLite) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *SQLite) fail(err error) {
	s.err = err
}

// AddDataPoint inserts or replaces a data point.
func (s *SQLite) AddDataPoint(p *DataPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("registry closed")
	}
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO data_points (id, xid, name, data_source_id)
		VALUES (?, ?, ?, ?)
	`, p.ID, p.XID, p.Name, p.DataSourceID)
	if err != nil {
		return fmt.Errorf("add data point: %w", err)
	}
	return nil
}

// AddDetector inserts or replaces a detector.
func (s *SQLite) AddDetector(d *Detector) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("registry closed")
	}
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO detectors (id, xid, data_point_id, handling, change_detector)
		VALUES (?, ?, ?, ?, ?)
	`, d.ID, d.XID, d.DataPointID, int(d.Handling), boolInt(d.ChangeDetector))
	if err != nil {
		return fmt.Errorf("add detector: %w", err)
	}
	return nil
}

// AddDataSource inserts or replaces a data source and its error type codes.
func (s *SQLite) AddDataSource(ds *DataSource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("registry closed")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("add data source: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO data_sources (id, xid, name) VALUES (?, ?, ?)
	`, ds.ID, ds.XID, ds.Name); err != nil {
		return fmt.Errorf("add data source: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM data_source_error_types WHERE data_source_id = ?`, ds.ID); err != nil {
		return fmt.Errorf("add data source: %w", err)
	}
	if ds.ErrorCodes != nil {
		for _, code := range ds.ErrorCodes.List() {
			id, _ := ds.ErrorCodes.ID(code)
			if _, err := tx.Exec(`
				INSERT INTO data_source_error_types (data_source_id, error_id, code)
				VALUES (?, ?, ?)
			`, ds.ID, id, code); err != nil {
				return fmt.Errorf("add data source error type: %w", err)
			}
		}
	}
	return tx.Commit()
}

// AddPublisher inserts or replaces a publisher and its error type codes.
func (s *SQLite) AddPublisher(p *Publisher) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("registry closed")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("add publisher: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO publishers (id, xid, name) VALUES (?, ?, ?)
	`, p.ID, p.XID, p.Name); err != nil {
		return fmt.Errorf("add publisher: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM publisher_error_types WHERE publisher_id = ?`, p.ID); err != nil {
		return fmt.Errorf("add publisher: %w", err)
	}
	if p.ErrorCodes != nil {
		for _, code := range p.ErrorCodes.List() {
			id, _ := p.ErrorCodes.ID(code)
			if _, err := tx.Exec(`
				INSERT INTO publisher_error_types (publisher_id, error_id, code)
				VALUES (?, ?, ?)
			`, p.ID, id, code); err != nil {
				return fmt.Errorf("add publisher error type: %w", err)
			}
		}
	}
	return tx.Commit()
}

// PointByXID implements DataPointResolver.
func (s *SQLite) PointByXID(xid string) (*DataPoint, bool) {
	return s.point(`SELECT id, xid, name, data_source_id FROM data_points WHERE xid = ?`, xid)
}

// PointByID implements DataPointResolver.
func (s *SQLite) PointByID(id int) (*DataPoint, bool) {
	return s.point(`SELECT id, xid, name, data_source_id FROM data_points WHERE id = ?`, id)
}

func (s *SQLite) point(query string, arg any) (*DataPoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, false
	}
	var p DataPoint
	err := s.db.QueryRow(query, arg).Scan(&p.ID, &p.XID, &p.Name, &p.DataSourceID)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		s.fail(fmt.Errorf("resolve data point: %w", err))
		return nil, false
	}
	return &p, true
}

// DetectorByXID implements DataPointResolver.
func (s *SQLite) DetectorByXID(detectorXID string, dataPointID int) (*Detector, bool) {
	return s.detector(`
		SELECT id, xid, data_point_id, handling, change_detector
		FROM detectors WHERE xid = ? AND data_point_id = ?
	`, detectorXID, dataPointID)
}

// DetectorByID implements DataPointResolver.
func (s *SQLite) DetectorByID(id int) (*Detector, bool) {
	return s.detector(`
		SELECT id, xid, data_point_id, handling, change_detector
		FROM detectors WHERE id = ?
	`, id)
}

func (s *SQLite) detector(query string, args ...any) (*Detector, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, false
	}
	var (
		d        Detector
		handling int
		change   int
	)
	err := s.db.QueryRow(query, args...).Scan(&d.ID, &d.XID, &d.DataPointID, &handling, &change)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		s.fail(fmt.Errorf("resolve detector: %w", err))
		return nil, false
	}
	d.Handling = event.DuplicateHandling(handling)
	d.ChangeDetector = change != 0
	return &d, true
}

// DataSourceByXID implements DataSourceResolver.
func (s *SQLite) DataSourceByXID(xid string) (*DataSource, bool) {
	return s.dataSource(`SELECT id, xid, name FROM data_sources WHERE xid = ?`, xid)
}

// DataSourceByID implements DataSourceResolver.
func (s *SQLite) DataSourceByID(id int) (*DataSource, bool) {
	return s.dataSource(`SELECT id, xid, name FROM data_sources WHERE id = ?`, id)
}

func (s *SQLite) dataSource(query string, arg any) (*DataSource, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, false
	}
	var ds DataSource
	err := s.db.QueryRow(query, arg).Scan(&ds.ID, &ds.XID, &ds.Name)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		s.fail(fmt.Errorf("resolve data source: %w", err))
		return nil, false
	}
	table, err := s.errorCodes(`
		SELECT error_id, code FROM data_source_error_types
		WHERE data_source_id = ? ORDER BY error_id
	`, ds.ID)
	if err != nil {
		s.fail(err)
		return nil, false
	}
	ds.ErrorCodes = table
	return &ds, true
}

// PublisherByXID implements PublisherResolver.
func (s *SQLite) PublisherByXID(xid string) (*Publisher, bool) {
	return s.publisher(`SELECT id, xid, name FROM publishers WHERE xid = ?`, xid)
}

// PublisherByID implements PublisherResolver.
func (s *SQLite) PublisherByID(id int) (*Publisher, bool) {
	return s.publisher(`SELECT id, xid, name FROM publishers WHERE id = ?`, id)
}

func (s *SQLite) publisher(query string, arg any) (*Publisher, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, false
	}
	var p Publisher
	err := s.db.QueryRow(query, arg).Scan(&p.ID, &p.XID, &p.Name)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		s.fail(fmt.Errorf("resolve publisher: %w", err))
		return nil, false
	}
	table, err := s.errorCodes(`
		SELECT error_id, code FROM publisher_error_types
		WHERE publisher_id = ? ORDER BY error_id
	`, p.ID)
	if err != nil {
		s.fail(err)
		return nil, false
	}
	p.ErrorCodes = table
	return &p, true
}

func (s *SQLite) errorCodes(query string, ownerID int) (*codes.Table, error) {
	rows, err := s.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load error types: %w", err)
	}
	defer rows.Close()

	table := codes.New()
	for rows.Next() {
		var (
			id   int
			code string
		)
		if err := rows.Scan(&id, &code); err != nil {
			return nil, fmt.Errorf("load error types: %w", err)
		}
		table.Add(id, code)
	}
	return table, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Compile-time interface checks.
var (
	_ DataPointResolver  = (*SQLite)(nil)
	_ DataSourceResolver = (*SQLite)(nil)
	_ PublisherResolver  = (*SQLite)(nil)
)
