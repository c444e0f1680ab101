package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"joblists/internal/domain"

	_ "modernc.org/sqlite"
)

// Archive keeps a running history of collected listings across runs.
// It is strictly a side artifact: the CSV is the contract output, so
// callers log archive errors instead of failing the run on them.
type Archive struct {
	Pool *sql.DB
}

func Open(path string) (*Archive, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	pool.SetMaxOpenConns(1) // sqlite typically wants 1 writer
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}

	a := &Archive{Pool: pool}
	if err := a.migrate(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}
	return a, nil
}

func (a *Archive) Close() error {
	if a == nil || a.Pool == nil {
		return nil
	}
	return a.Pool.Close()
}

func (a *Archive) migrate(ctx context.Context) error {
	_, err := a.Pool.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS listings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source TEXT NOT NULL,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT NOT NULL,
  salary TEXT NOT NULL,
  description TEXT NOT NULL,
  job_url TEXT NOT NULL UNIQUE,
  collected_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_listings_source ON listings(source);
`)
	return err
}

// InsertIfNew archives one listing, deduping on job_url across runs.
func (a *Archive) InsertIfNew(ctx context.Context, rec *domain.Record) (added bool, err error) {
	_, err = a.Pool.ExecContext(ctx, `
INSERT OR IGNORE INTO listings (source, title, company, location, salary, description, job_url, collected_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		rec.Get("source"),
		rec.Get("title"),
		rec.Get("company"),
		rec.Get("location"),
		rec.Get("salary"),
		rec.Get("description"),
		rec.Get("job_url"),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("insert listing: %w", err)
	}

	var changes int
	if e := a.Pool.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}

// ArchiveAll inserts every record, returning how many were new.
func (a *Archive) ArchiveAll(ctx context.Context, recs []*domain.Record) (added int, err error) {
	for _, rec := range recs {
		ok, e := a.InsertIfNew(ctx, rec)
		if e != nil {
			return added, e
		}
		if ok {
			added++
		}
	}
	return added, nil
}
