package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/jyotish/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/core/ports/driven"
)

// DatabaseFile is the database name inside the data directory.
const DatabaseFile = "charts.db"

// Store is a SQLite-based storage that hands out typed store views
// over one connection.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.jyotish/data/charts.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".jyotish", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL lets the MCP server read while the CLI writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ChartStore returns a ChartStore interface backed by this store.
func (s *Store) ChartStore() driven.ChartStore {
	return &chartStore{store: s}
}

// migrate runs all pending up migrations and records their versions.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_charts.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v)
	return v, err
}

// ==================== Chart Store ====================

// chartStore implements driven.ChartStore.
type chartStore struct {
	store *Store
}

var _ driven.ChartStore = (*chartStore)(nil)

// Save stores or replaces a chart.
func (s *chartStore) Save(ctx context.Context, chart *domain.Chart) error {
	payload, err := json.Marshal(chart)
	if err != nil {
		return fmt.Errorf("marshalling chart: %w", err)
	}

	createdAt := chart.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	system := ""
	if chart.Dasha != nil {
		system = chart.Dasha.System
	}

	req := chart.Request
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO charts (id, name, moment, jd, latitude, longitude, altitude, dasha_system, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			moment = excluded.moment,
			jd = excluded.jd,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			altitude = excluded.altitude,
			dasha_system = excluded.dasha_system,
			payload = excluded.payload
	`, chart.ID, req.Name, formatTime(req.Time), float64(chart.JD),
		req.Geo.Latitude, req.Geo.Longitude, req.Geo.Altitude,
		system, string(payload), createdAt.UTC().Format(createdLayout))
	if err != nil {
		return fmt.Errorf("saving chart: %w", err)
	}
	return nil
}

// Get retrieves a chart by ID.
func (s *chartStore) Get(ctx context.Context, id string) (*domain.Chart, error) {
	var payload string
	err := s.store.db.QueryRowContext(ctx, `SELECT payload FROM charts WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading chart: %w", err)
	}

	var chart domain.Chart
	if err := json.Unmarshal([]byte(payload), &chart); err != nil {
		return nil, fmt.Errorf("unmarshalling chart: %w", err)
	}
	return &chart, nil
}

// List returns summaries of all charts, newest first.
func (s *chartStore) List(ctx context.Context) ([]domain.ChartSummary, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, moment, latitude, longitude, altitude, created_at
		FROM charts ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing charts: %w", err)
	}
	defer rows.Close()

	var result []domain.ChartSummary
	for rows.Next() {
		var sum domain.ChartSummary
		var moment, createdAt string
		if err := rows.Scan(&sum.ID, &sum.Name, &moment,
			&sum.Geo.Latitude, &sum.Geo.Longitude, &sum.Geo.Altitude, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning chart: %w", err)
		}
		if sum.Time, err = parseTime(moment); err != nil {
			return nil, fmt.Errorf("chart %s moment: %w", sum.ID, err)
		}
		if sum.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("chart %s created_at: %w", sum.ID, err)
		}
		result = append(result, sum)
	}
	return result, rows.Err()
}

// Delete removes a chart.
func (s *chartStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, `DELETE FROM charts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting chart: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting chart: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// createdLayout has fixed-width fractions so UTC values sort lexically.
const createdLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTime keeps the moment's own offset; time.Parse accepts both layouts.
func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
