package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jobbify/internal/database"
	"jobbify/internal/domain/prefs"
)

var ErrPreferencesNotFound = errors.New("preferences not found")

type PreferencesRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (prefs.Preferences, error)
	Upsert(ctx context.Context, p prefs.Preferences) error
}

type PostgresPreferencesRepository struct {
	db database.DB
}

func NewPostgresPreferencesRepository(db database.DB) *PostgresPreferencesRepository {
	return &PostgresPreferencesRepository{db: db}
}

func (r *PostgresPreferencesRepository) Get(ctx context.Context, userID uuid.UUID) (prefs.Preferences, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id,
		        weight_location, weight_salary, weight_role, weight_company,
		        locations, roles, industries, job_types,
		        remote_preference, min_salary, max_salary, salary_negotiable,
		        willing_to_relocate, experience_level, auto_learn_from_swipes,
		        created_at, updated_at
		 FROM user_job_preferences
		 WHERE user_id = $1`,
		userID,
	)

	var (
		p      prefs.Preferences
		remote string
	)
	err := row.Scan(
		&p.UserID,
		&p.Weights.Location, &p.Weights.Salary, &p.Weights.Role, &p.Weights.Company,
		&p.Locations, &p.Roles, &p.Industries, &p.JobTypes,
		&remote, &p.MinSalary, &p.MaxSalary, &p.SalaryNegotiable,
		&p.WillingToRelocate, &p.ExperienceLevel, &p.AutoLearnFromSwipes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return prefs.Preferences{}, ErrPreferencesNotFound
		}
		return prefs.Preferences{}, err
	}
	p.RemotePreference = prefs.RemotePreference(remote)
	return p, nil
}

// Upsert replaces the whole row. Preferences are submitted as a complete
// document from onboarding or the settings screen, never patched field by
// field.
func (r *PostgresPreferencesRepository) Upsert(ctx context.Context, p prefs.Preferences) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_job_preferences (
		   user_id,
		   weight_location, weight_salary, weight_role, weight_company,
		   locations, roles, industries, job_types,
		   remote_preference, min_salary, max_salary, salary_negotiable,
		   willing_to_relocate, experience_level, auto_learn_from_swipes,
		   updated_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, now())
		 ON CONFLICT (user_id) DO UPDATE SET
		   weight_location = EXCLUDED.weight_location,
		   weight_salary = EXCLUDED.weight_salary,
		   weight_role = EXCLUDED.weight_role,
		   weight_company = EXCLUDED.weight_company,
		   locations = EXCLUDED.locations,
		   roles = EXCLUDED.roles,
		   industries = EXCLUDED.industries,
		   job_types = EXCLUDED.job_types,
		   remote_preference = EXCLUDED.remote_preference,
		   min_salary = EXCLUDED.min_salary,
		   max_salary = EXCLUDED.max_salary,
		   salary_negotiable = EXCLUDED.salary_negotiable,
		   willing_to_relocate = EXCLUDED.willing_to_relocate,
		   experience_level = EXCLUDED.experience_level,
		   auto_learn_from_swipes = EXCLUDED.auto_learn_from_swipes,
		   updated_at = now()`,
		p.UserID,
		p.Weights.Location, p.Weights.Salary, p.Weights.Role, p.Weights.Company,
		p.Locations, p.Roles, p.Industries, p.JobTypes,
		string(p.RemotePreference), p.MinSalary, p.MaxSalary, p.SalaryNegotiable,
		p.WillingToRelocate, p.ExperienceLevel, p.AutoLearnFromSwipes,
	)
	return err
}
