package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placementhub/placementhub/internal/domain"
)

// stubRepo returns canned aggregation results.
type stubRepo struct {
	students  int
	companies int
	placed    int
	totalJobs int
	openJobs  int
	funnel    map[domain.ApplicationStatus]int
	top       []domain.CompanyPlacements
	err       error
}

func (s *stubRepo) CountUsersByRole(_ context.Context, role domain.Role) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if role == domain.RoleCompany {
		return s.companies, nil
	}
	return s.students, nil
}

func (s *stubRepo) CountPlacedStudents(_ context.Context) (int, error) {
	return s.placed, s.err
}

func (s *stubRepo) CountJobs(_ context.Context) (int, int, error) {
	return s.totalJobs, s.openJobs, s.err
}

func (s *stubRepo) ApplicationFunnel(_ context.Context) (map[domain.ApplicationStatus]int, error) {
	return s.funnel, s.err
}

func (s *stubRepo) TopCompanies(_ context.Context, _ int) ([]domain.CompanyPlacements, error) {
	return s.top, s.err
}

func TestPlacementStats(t *testing.T) {
	repo := &stubRepo{
		students:  40,
		companies: 6,
		placed:    10,
		totalJobs: 12,
		openJobs:  7,
		funnel: map[domain.ApplicationStatus]int{
			domain.ApplicationStatusApplied:     20,
			domain.ApplicationStatusShortlisted: 8,
			domain.ApplicationStatusSelected:    10,
			domain.ApplicationStatusRejected:    5,
		},
		top: []domain.CompanyPlacements{
			{CompanyID: "company1", CompanyName: "Jordan Company", Placements: 6},
		},
	}
	svc := NewService(repo)

	stats, err := svc.PlacementStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 40, stats.TotalStudents)
	assert.Equal(t, 10, stats.PlacedStudents)
	assert.Equal(t, 6, stats.TotalCompanies)
	assert.Equal(t, 12, stats.TotalJobs)
	assert.Equal(t, 7, stats.OpenJobs)
	assert.Equal(t, 43, stats.TotalApplications)
	assert.InDelta(t, 0.25, stats.PlacementRate, 1e-9)
	require.Len(t, stats.TopCompanies, 1)
	assert.Equal(t, "Jordan Company", stats.TopCompanies[0].CompanyName)
}

func TestPlacementStats_NoStudents(t *testing.T) {
	svc := NewService(&stubRepo{funnel: map[domain.ApplicationStatus]int{}})

	stats, err := svc.PlacementStats(context.Background())

	require.NoError(t, err)
	assert.Zero(t, stats.PlacementRate)
	assert.Zero(t, stats.TotalApplications)
}

func TestPlacementStats_RepositoryError(t *testing.T) {
	svc := NewService(&stubRepo{err: errors.New("connection refused")})

	_, err := svc.PlacementStats(context.Background())

	assert.Error(t, err)
}
