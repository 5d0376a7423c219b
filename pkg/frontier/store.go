package frontier

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/XiaoConstantine/pareto-go/pkg/core"
	"github.com/XiaoConstantine/pareto-go/pkg/errors"
)

// Store persists frontier archives to SQLite so later runs can warm-start
// from earlier high-fitness candidates. The in-memory Frontier stays pure;
// the store is an optional collaborator around it.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore opens (or creates) the archive database at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "pareto_archive.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to open archive database")
	}

	store := &Store{db: db}
	if err := store.initDB(); err != nil {
		db.Close()
		return nil, err
	}

	// WAL keeps concurrent readers cheap during long optimization runs.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to enable WAL mode")
	}

	return store, nil
}

func (s *Store) initDB() error {
	schema := `
	CREATE TABLE IF NOT EXISTS archive (
		run_id       TEXT NOT NULL,
		candidate_id TEXT NOT NULL,
		generation   INTEGER NOT NULL,
		fitness      REAL NOT NULL,
		raw          TEXT NOT NULL,
		normalized   TEXT,
		created_at   TIMESTAMP NOT NULL,
		saved_at     TIMESTAMP NOT NULL,
		PRIMARY KEY (run_id, candidate_id)
	);
	CREATE INDEX IF NOT EXISTS idx_archive_run_fitness ON archive(run_id, fitness DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return errors.Wrap(err, errors.StorageFailed, "failed to initialize archive schema")
	}
	return nil
}

// SaveArchive upserts every archived candidate of the frontier under runID.
func (s *Store) SaveArchive(ctx context.Context, runID string, f Frontier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.StorageFailed, "failed to begin archive transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO archive (run_id, candidate_id, generation, fitness, raw, normalized, created_at, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, candidate_id) DO UPDATE SET
			generation = excluded.generation,
			fitness    = excluded.fitness,
			raw        = excluded.raw,
			normalized = excluded.normalized,
			saved_at   = excluded.saved_at`)
	if err != nil {
		return errors.Wrap(err, errors.StorageFailed, "failed to prepare archive statement")
	}
	defer stmt.Close()

	now := time.Now()
	for _, candidate := range f.Archive {
		raw, err := json.Marshal(candidate.RawObjectives)
		if err != nil {
			return errors.Wrap(err, errors.StorageFailed, "failed to encode raw objectives")
		}
		var normalized []byte
		if candidate.IsNormalized() {
			normalized, err = json.Marshal(candidate.NormalizedObjectives)
			if err != nil {
				return errors.Wrap(err, errors.StorageFailed, "failed to encode normalized objectives")
			}
		}

		if _, err := stmt.ExecContext(ctx, runID, candidate.ID, candidate.Generation,
			candidate.Fitness, string(raw), nullableString(normalized), candidate.CreatedAt, now); err != nil {
			return errors.WithFields(
				errors.Wrap(err, errors.StorageFailed, "failed to save archived candidate"),
				errors.Fields{"candidate": candidate.ID})
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.StorageFailed, "failed to commit archive")
	}
	return nil
}

// LoadArchive returns the archived candidates for runID ordered by fitness,
// best first. An unknown run id yields an empty slice.
func (s *Store) LoadArchive(ctx context.Context, runID string) ([]core.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT candidate_id, generation, fitness, raw, normalized, created_at
		FROM archive WHERE run_id = ?
		ORDER BY fitness DESC, candidate_id ASC`, runID)
	if err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to query archive")
	}
	defer rows.Close()

	var candidates []core.Candidate
	for rows.Next() {
		var (
			candidate  core.Candidate
			raw        string
			normalized sql.NullString
		)
		if err := rows.Scan(&candidate.ID, &candidate.Generation, &candidate.Fitness,
			&raw, &normalized, &candidate.CreatedAt); err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "failed to scan archived candidate")
		}
		if err := json.Unmarshal([]byte(raw), &candidate.RawObjectives); err != nil {
			return nil, errors.WithFields(
				errors.Wrap(err, errors.StorageFailed, "failed to decode raw objectives"),
				errors.Fields{"candidate": candidate.ID})
		}
		if normalized.Valid && normalized.String != "" {
			if err := json.Unmarshal([]byte(normalized.String), &candidate.NormalizedObjectives); err != nil {
				return nil, errors.WithFields(
					errors.Wrap(err, errors.StorageFailed, "failed to decode normalized objectives"),
					errors.Fields{"candidate": candidate.ID})
			}
		}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to read archive rows")
	}
	return candidates, nil
}

// DeleteRun removes every archived candidate for runID.
func (s *Store) DeleteRun(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM archive WHERE run_id = ?", runID); err != nil {
		return errors.Wrap(err, errors.StorageFailed, "failed to delete run archive")
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func nullableString(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
