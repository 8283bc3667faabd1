// Package analytics records privacy-conscious visitor and section-view
// metrics in sqlite. Client addresses are only ever stored as salted hashes.
package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Retention is how long visitor rows are kept.
const Retention = 365 * 24 * time.Hour

// VisitorMetric is one tracked page request.
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// SectionCount is how often a section became active.
type SectionCount struct {
	Section string `json:"section"`
	Views   int64  `json:"views"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	SectionViews     []SectionCount  `json:"section_views"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
}

// Store wraps the analytics database.
type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

// Open creates or opens the database at path and migrates the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "creating database directory")
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	// sqlite allows one writer; a single connection keeps writes serialized.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "pinging database")
	}

	salt, err := randomHex(32)
	if err != nil {
		db.Close()
		return nil, err
	}
	s := &Store{db: db, salt: salt, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "running migrations")
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	timestamp DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS section_views (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	section TEXT NOT NULL,
	hashed_ip TEXT NOT NULL,
	timestamp DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);
CREATE INDEX IF NOT EXISTS idx_section_views_section ON section_views(section);
`

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "reading random bytes")
	}
	return hex.EncodeToString(b), nil
}

// HashIP returns a salted, truncated hash of ip. The same ip maps to the
// same hash for the lifetime of the store.
func (s *Store) HashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + s.salt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// RecordVisit stores a page request.
func (s *Store) RecordVisit(ctx context.Context, ip, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, s.HashIP(ip), userAgent, path, s.now().UTC())
	return errors.Wrap(err, "recording visitor")
}

// RecordSectionView stores that section became active for a visitor.
func (s *Store) RecordSectionView(ctx context.Context, ip, section string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO section_views (section, hashed_ip, timestamp)
		VALUES (?, ?, ?)
	`, section, s.HashIP(ip), s.now().UTC())
	return errors.Wrap(err, "recording section view")
}

// Cleanup removes visitor and section rows older than olderThan.
func (s *Store) Cleanup(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := s.now().UTC().Add(-olderThan)
	var total int64
	for _, table := range []string{"visitors", "section_views"} {
		res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE timestamp < ?", cutoff)
		if err != nil {
			return total, errors.Wrapf(err, "cleaning %s", table)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	if total > 0 {
		log.Printf("Privacy cleanup: removed %d rows older than %s", total, olderThan)
	}
	return total, nil
}

// Stats aggregates the dashboard figures.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, "SELECT COUNT(*) FROM visitors", nil},
		{&stats.UniqueVisitors, "SELECT COUNT(DISTINCT hashed_ip) FROM visitors", nil},
		{&stats.VisitorsToday, "SELECT COUNT(*) FROM visitors WHERE timestamp >= ?", []any{startOfDay}},
		{&stats.VisitorsThisWeek, "SELECT COUNT(*) FROM visitors WHERE timestamp >= ?", []any{now.Add(-7 * 24 * time.Hour)}},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, errors.Wrap(err, "counting visitors")
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT section, COUNT(*) AS views
		FROM section_views
		GROUP BY section
		ORDER BY views DESC, section ASC
	`)
	if err != nil {
		return nil, errors.Wrap(err, "querying section views")
	}
	stats.SectionViews, err = scanSectionCounts(rows)
	if err != nil {
		return nil, err
	}

	recent, err := s.RecentVisitors(ctx, 50)
	if err != nil {
		return nil, err
	}
	stats.RecentVisitors = recent
	return stats, nil
}

// sectionRows is the part of *sql.Rows that scanSectionCounts reads.
type sectionRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

func scanSectionCounts(rows sectionRows) ([]SectionCount, error) {
	defer rows.Close()

	var counts []SectionCount
	for rows.Next() {
		var sc SectionCount
		if err := rows.Scan(&sc.Section, &sc.Views); err != nil {
			return nil, errors.Wrap(err, "scanning section views")
		}
		counts = append(counts, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating section views")
	}
	return counts, nil
}

// RecentVisitors returns the latest limit visitor rows, newest first.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]VisitorMetric, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying visitors")
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			return nil, errors.Wrap(err, "scanning visitor")
		}
		visitors = append(visitors, v)
	}
	return visitors, errors.Wrap(rows.Err(), "iterating visitors")
}
