// Package postgres provides a PostgreSQL-backed credential directory. It is
// the drop-in replacement for the fixture table when the dashboard runs
// against real user records; the session store's login contract is unchanged.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/placementhub/placementhub/internal/domain"
	"github.com/placementhub/placementhub/internal/session"
)

// Directory implements session.CredentialSource using PostgreSQL.
type Directory struct {
	db *pgxpool.Pool
}

// NewDirectory creates a new PostgreSQL directory.
func NewDirectory(db *pgxpool.Pool) *Directory {
	return &Directory{db: db}
}

// Lookup finds the user whose email and role both match exactly.
func (d *Directory) Lookup(ctx context.Context, email string, role domain.Role) (*domain.Identity, error) {
	query := `
		SELECT id, email, name, role, COALESCE(profile_image, '')
		FROM users
		WHERE email = $1 AND role = $2
	`
	var identity domain.Identity
	err := d.db.QueryRow(ctx, query, email, string(role)).Scan(
		&identity.ID,
		&identity.Email,
		&identity.Name,
		&identity.Role,
		&identity.ProfileImage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrNoMatch
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	return &identity, nil
}
