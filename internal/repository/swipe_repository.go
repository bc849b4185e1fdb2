package repository

import (
	"context"

	"github.com/google/uuid"

	"jobbify/internal/database"
	"jobbify/internal/domain/swipe"
)

type SwipeRepository interface {
	Upsert(ctx context.Context, rec swipe.Record) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]swipe.Record, error)
	ListJobIDs(ctx context.Context, userID uuid.UUID) (map[string]bool, error)
}

type PostgresSwipeRepository struct {
	db database.DB
}

func NewPostgresSwipeRepository(db database.DB) *PostgresSwipeRepository {
	return &PostgresSwipeRepository{db: db}
}

// Upsert records a swipe. Swiping the same job again overwrites the previous
// direction, so (user_id, job_id) stays unique.
func (r *PostgresSwipeRepository) Upsert(ctx context.Context, rec swipe.Record) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO swipes (
		   user_id, job_id, direction,
		   job_title, job_company, job_location, job_tags, match_score,
		   swiped_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		 ON CONFLICT (user_id, job_id) DO UPDATE SET
		   direction = EXCLUDED.direction,
		   job_title = EXCLUDED.job_title,
		   job_company = EXCLUDED.job_company,
		   job_location = EXCLUDED.job_location,
		   job_tags = EXCLUDED.job_tags,
		   match_score = EXCLUDED.match_score,
		   swiped_at = now()`,
		rec.UserID, rec.JobID, string(rec.Direction),
		rec.JobTitle, rec.JobCompany, rec.JobLocation, rec.JobTags, rec.MatchScore,
	)
	return err
}

func (r *PostgresSwipeRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]swipe.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT user_id, job_id, direction,
		        COALESCE(job_title, ''), COALESCE(job_company, ''), COALESCE(job_location, ''),
		        job_tags, match_score, swiped_at
		 FROM swipes
		 WHERE user_id = $1
		 ORDER BY swiped_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]swipe.Record, 0, limit)
	for rows.Next() {
		var (
			rec swipe.Record
			dir string
		)
		if err := rows.Scan(
			&rec.UserID, &rec.JobID, &dir,
			&rec.JobTitle, &rec.JobCompany, &rec.JobLocation,
			&rec.JobTags, &rec.MatchScore, &rec.SwipedAt,
		); err != nil {
			return nil, err
		}
		rec.Direction = swipe.Direction(dir)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListJobIDs returns every job the user has already swiped, as a set, so the
// feed can filter them out in one pass.
func (r *PostgresSwipeRepository) ListJobIDs(ctx context.Context, userID uuid.UUID) (map[string]bool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT job_id FROM swipes WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		seen[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seen, nil
}
