// Package postgres provides PostgreSQL implementation of the analytics repository.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/placementhub/placementhub/internal/domain"
)

// Repository implements the analytics.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CountUsersByRole counts directory users with the given role.
func (r *Repository) CountUsersByRole(ctx context.Context, role domain.Role) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return count, nil
}

// CountPlacedStudents counts students with at least one selected application.
func (r *Repository) CountPlacedStudents(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(DISTINCT student_id) FROM applications WHERE status = 'selected'`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count placed students: %w", err)
	}
	return count, nil
}

// CountJobs counts postings overall and those currently open.
func (r *Repository) CountJobs(ctx context.Context) (int, int, error) {
	var total, open int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'open') FROM jobs`,
	).Scan(&total, &open)
	if err != nil {
		return 0, 0, fmt.Errorf("count jobs: %w", err)
	}
	return total, open, nil
}

// ApplicationFunnel counts applications per funnel stage.
func (r *Repository) ApplicationFunnel(ctx context.Context) (map[domain.ApplicationStatus]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("application funnel: %w", err)
	}
	defer rows.Close()

	funnel := make(map[domain.ApplicationStatus]int)
	for rows.Next() {
		var status domain.ApplicationStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan funnel row: %w", err)
		}
		funnel[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate funnel rows: %w", err)
	}
	return funnel, nil
}

// TopCompanies ranks companies by number of selected candidates.
func (r *Repository) TopCompanies(ctx context.Context, limit int) ([]domain.CompanyPlacements, error) {
	query := `
		SELECT j.company_id, u.name, COUNT(*) AS placements
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users u ON u.id = j.company_id
		WHERE a.status = 'selected'
		GROUP BY j.company_id, u.name
		ORDER BY placements DESC, u.name
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top companies: %w", err)
	}
	defer rows.Close()

	result := make([]domain.CompanyPlacements, 0)
	for rows.Next() {
		var cp domain.CompanyPlacements
		if err := rows.Scan(&cp.CompanyID, &cp.CompanyName, &cp.Placements); err != nil {
			return nil, fmt.Errorf("scan company placements: %w", err)
		}
		result = append(result, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate company placements: %w", err)
	}
	return result, nil
}
