package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jobbify/internal/database"
	"jobbify/internal/domain/job"
)

type JobCacheRepository interface {
	Upsert(ctx context.Context, entries []job.CachedEntry) error
	ListFresh(ctx context.Context, src job.Source, limit, offset int) ([]job.CachedEntry, error)
	HasFresh(ctx context.Context, src job.Source, maxAge time.Duration) (bool, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type PostgresJobCacheRepository struct {
	db database.DB
}

func NewPostgresJobCacheRepository(db database.DB) *PostgresJobCacheRepository {
	return &PostgresJobCacheRepository{db: db}
}

// Upsert writes one row per job keyed by external_job_id. Re-inserting an id
// already present replaces the payload and pushes the expiry forward, so the
// row count never grows on repeat fetches of the same batch.
func (r *PostgresJobCacheRepository) Upsert(ctx context.Context, entries []job.CachedEntry) error {
	for _, e := range entries {
		if e.ExternalJobID == "" {
			continue
		}
		payload, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("marshal cached job %s: %w", e.ExternalJobID, err)
		}
		_, err = r.db.Exec(ctx,
			`INSERT INTO job_cache (external_job_id, source, payload, expires_at)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (external_job_id)
			 DO UPDATE SET source = EXCLUDED.source,
			               payload = EXCLUDED.payload,
			               expires_at = EXCLUDED.expires_at`,
			e.ExternalJobID, string(e.Source), payload, e.ExpiresAt,
		)
		if err != nil {
			return fmt.Errorf("upsert cached job %s: %w", e.ExternalJobID, err)
		}
	}
	return nil
}

// ListFresh returns unexpired rows, newest first. An empty src matches every
// source. Rows are re-checked against the clock after scanning; the SQL
// predicate and the Go predicate must agree on the boundary (expires_at equal
// to now is expired).
func (r *PostgresJobCacheRepository) ListFresh(ctx context.Context, src job.Source, limit, offset int) ([]job.CachedEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT external_job_id, source, payload, expires_at, created_at
		 FROM job_cache
		 WHERE expires_at > now()
		   AND ($1 = '' OR source = $1)
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		string(src), limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now()
	out := make([]job.CachedEntry, 0, limit)
	for rows.Next() {
		var (
			e       job.CachedEntry
			srcText string
			payload []byte
		)
		if err := rows.Scan(&e.ExternalJobID, &srcText, &payload, &e.ExpiresAt, &e.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &e.Payload); err != nil {
			return nil, fmt.Errorf("decode cached job %s: %w", e.ExternalJobID, err)
		}
		e.Source = job.Source(srcText)
		if e.Expired(now) {
			continue
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// HasFresh reports whether any unexpired row was written within maxAge. The
// feed uses it to decide when a network refetch is worth the latency; a
// non-positive maxAge counts every unexpired row.
func (r *PostgresJobCacheRepository) HasFresh(ctx context.Context, src job.Source, maxAge time.Duration) (bool, error) {
	var cutoff time.Time
	if maxAge > 0 {
		cutoff = time.Now().Add(-maxAge)
	}
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(
		   SELECT 1 FROM job_cache
		   WHERE expires_at > now()
		     AND ($1 = '' OR source = $1)
		     AND created_at > $2
		 )`,
		string(src), cutoff,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresJobCacheRepository) DeleteExpired(ctx context.Context) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM job_cache WHERE expires_at <= now()`)
}
