package session

import (
	"context"

	"github.com/placementhub/placementhub/internal/domain"
)

// FixtureDirectory is a static, read-only credential table used in place of a
// real authentication service. It holds one record per role and matches on
// the exact email+role pair; the password is never inspected.
type FixtureDirectory struct {
	records []domain.Identity
}

// NewFixtureDirectory creates a directory with the given records.
func NewFixtureDirectory(records []domain.Identity) *FixtureDirectory {
	return &FixtureDirectory{records: records}
}

// DefaultFixtureDirectory returns the stock demo directory with one account
// per role.
func DefaultFixtureDirectory() *FixtureDirectory {
	return NewFixtureDirectory([]domain.Identity{
		{
			ID:           "student1",
			Email:        "student@example.com",
			Name:         "Alex Student",
			Role:         domain.RoleStudent,
			ProfileImage: "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg?auto=compress&cs=tinysrgb&w=300",
		},
		{
			ID:           "placement1",
			Email:        "placement@example.com",
			Name:         "Taylor Placement",
			Role:         domain.RolePlacement,
			ProfileImage: "https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=300",
		},
		{
			ID:           "company1",
			Email:        "company@example.com",
			Name:         "Jordan Company",
			Role:         domain.RoleCompany,
			ProfileImage: "https://images.pexels.com/photos/532220/pexels-photo-532220.jpeg?auto=compress&cs=tinysrgb&w=300",
		},
	})
}

// Lookup finds the record whose email and role both match exactly.
func (d *FixtureDirectory) Lookup(_ context.Context, email string, role domain.Role) (*domain.Identity, error) {
	for i := range d.records {
		if d.records[i].Email == email && d.records[i].Role == role {
			identity := d.records[i]
			return &identity, nil
		}
	}
	return nil, ErrNoMatch
}
