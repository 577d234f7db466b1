package domain

// Role determines which navigational region of the dashboard a user may enter.
type Role string

const (
	RoleStudent   Role = "student"
	RolePlacement Role = "placement"
	RoleCompany   Role = "company"
)

// IsValid checks if the role is one of the three known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RolePlacement, RoleCompany:
		return true
	}
	return false
}

// Roles lists all known roles.
func Roles() []Role {
	return []Role{RoleStudent, RolePlacement, RoleCompany}
}

// Identity represents an authenticated principal. The role is fixed at
// construction; an identity is never mutated after the credential lookup
// builds it.
type Identity struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	ProfileImage string `json:"profileImage,omitempty"`
}
