// Package analytics computes placement statistics for the dashboard.
package analytics

import (
	"context"
	"fmt"

	"github.com/placementhub/placementhub/internal/domain"
)

// Default number of companies in the top-companies ranking.
const DefaultTopCompanies = 5

// Repository defines the aggregation queries the service relies on.
type Repository interface {
	CountUsersByRole(ctx context.Context, role domain.Role) (int, error)
	CountPlacedStudents(ctx context.Context) (int, error)
	CountJobs(ctx context.Context) (total, open int, err error)
	ApplicationFunnel(ctx context.Context) (map[domain.ApplicationStatus]int, error)
	TopCompanies(ctx context.Context, limit int) ([]domain.CompanyPlacements, error)
}

// Service assembles placement statistics.
type Service struct {
	repo Repository
}

// NewService creates a new analytics service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// PlacementStats computes the dashboard statistics. The placement rate
// is the share of students with at least one selected application.
func (s *Service) PlacementStats(ctx context.Context) (*domain.PlacementStats, error) {
	stats := &domain.PlacementStats{}

	students, err := s.repo.CountUsersByRole(ctx, domain.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}
	stats.TotalStudents = students

	companies, err := s.repo.CountUsersByRole(ctx, domain.RoleCompany)
	if err != nil {
		return nil, fmt.Errorf("count companies: %w", err)
	}
	stats.TotalCompanies = companies

	placed, err := s.repo.CountPlacedStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("count placed students: %w", err)
	}
	stats.PlacedStudents = placed

	total, open, err := s.repo.CountJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}
	stats.TotalJobs = total
	stats.OpenJobs = open

	funnel, err := s.repo.ApplicationFunnel(ctx)
	if err != nil {
		return nil, fmt.Errorf("application funnel: %w", err)
	}
	stats.Funnel = funnel
	for _, count := range funnel {
		stats.TotalApplications += count
	}

	top, err := s.repo.TopCompanies(ctx, DefaultTopCompanies)
	if err != nil {
		return nil, fmt.Errorf("top companies: %w", err)
	}
	stats.TopCompanies = top

	if stats.TotalStudents > 0 {
		stats.PlacementRate = float64(stats.PlacedStudents) / float64(stats.TotalStudents)
	}

	return stats, nil
}
