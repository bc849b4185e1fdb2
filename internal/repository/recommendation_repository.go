package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobbify/internal/database"
	"jobbify/internal/domain/scoring"
)

type RecommendationRepository interface {
	UpsertBatch(ctx context.Context, userID uuid.UUID, algorithmVersion string, recs []scoring.Recommendation) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]StoredRecommendation, error)
}

// StoredRecommendation is a persisted scoring result. The job payload is
// denormalized at write time so history survives cache expiry.
type StoredRecommendation struct {
	UserID           uuid.UUID
	JobID            string
	OverallScore     int
	LocationScore    int
	SalaryScore      int
	RoleScore        int
	CompanyScore     int
	Reason           string
	AlgorithmVersion string
	Payload          scoring.Recommendation
	ScoredAt         time.Time
}

const recommendationPersistCap = 50

type PostgresRecommendationRepository struct {
	db database.DB
}

func NewPostgresRecommendationRepository(db database.DB) *PostgresRecommendationRepository {
	return &PostgresRecommendationRepository{db: db}
}

// UpsertBatch persists the top scored jobs for a user. Each row is written
// independently; a failed row skips to the next instead of aborting, since
// this path is best-effort bookkeeping behind the live response.
func (r *PostgresRecommendationRepository) UpsertBatch(ctx context.Context, userID uuid.UUID, algorithmVersion string, recs []scoring.Recommendation) error {
	if len(recs) > recommendationPersistCap {
		recs = recs[:recommendationPersistCap]
	}

	var firstErr error
	for _, rec := range recs {
		payload, err := json.Marshal(rec)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("marshal recommendation %s: %w", rec.Job.ID, err)
			}
			continue
		}
		_, err = r.db.Exec(ctx,
			`INSERT INTO job_recommendations (
			   user_id, job_id,
			   overall_score, location_score, salary_score, role_score, company_score,
			   reason, algorithm_version, payload, scored_at
			 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
			 ON CONFLICT (user_id, job_id) DO UPDATE SET
			   overall_score = EXCLUDED.overall_score,
			   location_score = EXCLUDED.location_score,
			   salary_score = EXCLUDED.salary_score,
			   role_score = EXCLUDED.role_score,
			   company_score = EXCLUDED.company_score,
			   reason = EXCLUDED.reason,
			   algorithm_version = EXCLUDED.algorithm_version,
			   payload = EXCLUDED.payload,
			   scored_at = now()`,
			userID, rec.Job.ID,
			rec.OverallScore, rec.LocationScore, rec.SalaryScore, rec.RoleScore, rec.CompanyScore,
			rec.Reason, algorithmVersion, payload,
		)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("upsert recommendation %s: %w", rec.Job.ID, err)
		}
	}
	return firstErr
}

func (r *PostgresRecommendationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]StoredRecommendation, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > recommendationPersistCap {
		limit = recommendationPersistCap
	}

	rows, err := r.db.Query(ctx,
		`SELECT user_id, job_id,
		        overall_score, location_score, salary_score, role_score, company_score,
		        COALESCE(reason, ''), algorithm_version, payload, scored_at
		 FROM job_recommendations
		 WHERE user_id = $1
		 ORDER BY overall_score DESC, scored_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StoredRecommendation, 0, limit)
	for rows.Next() {
		var (
			s       StoredRecommendation
			payload []byte
		)
		if err := rows.Scan(
			&s.UserID, &s.JobID,
			&s.OverallScore, &s.LocationScore, &s.SalaryScore, &s.RoleScore, &s.CompanyScore,
			&s.Reason, &s.AlgorithmVersion, &payload, &s.ScoredAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &s.Payload); err != nil {
			return nil, fmt.Errorf("decode recommendation %s: %w", s.JobID, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
