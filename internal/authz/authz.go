// Package authz decides, for each navigation into a role-scoped region,
// whether to render the region or redirect the client elsewhere. Decisions
// are pure functions of the current identity and the region's allowed roles;
// they carry no state and must be re-evaluated on every navigation.
package authz

import (
	"github.com/placementhub/placementhub/internal/domain"
)

// Well-known paths.
const (
	LoginPath     = "/login"
	StudentPath   = "/student"
	PlacementPath = "/placement"
	CompanyPath   = "/company"
)

// Decision is the outcome of an authorization check: render the requested
// region, or redirect the navigation to Location.
type Decision struct {
	Allow    bool
	Location string
}

// Render grants access to the requested region.
func Render() Decision {
	return Decision{Allow: true}
}

// RedirectTo sends the navigation to the given path.
func RedirectTo(path string) Decision {
	return Decision{Location: path}
}

// Landing returns the default landing region for a role. An unknown role
// lands on the login page.
func Landing(role domain.Role) string {
	switch role {
	case domain.RoleStudent:
		return StudentPath
	case domain.RolePlacement:
		return PlacementPath
	case domain.RoleCompany:
		return CompanyPath
	}
	return LoginPath
}

// Authorize decides access to a region restricted to the given roles. An
// empty allowed set means any authenticated identity may enter.
//
// Unauthenticated navigations always redirect to the login page. An
// authenticated identity whose role is not in the allowed set is sent to its
// own landing region; that redirect is a normal navigation outcome, not an
// error.
func Authorize(identity *domain.Identity, allowed ...domain.Role) Decision {
	if identity == nil {
		return RedirectTo(LoginPath)
	}
	if len(allowed) == 0 {
		return Render()
	}
	for _, role := range allowed {
		if identity.Role == role {
			return Render()
		}
	}
	return RedirectTo(Landing(identity.Role))
}

// ResolveRoot decides where the application root sends a navigation: the
// identity's landing region when authenticated, the login page otherwise.
func ResolveRoot(identity *domain.Identity) Decision {
	if identity == nil {
		return RedirectTo(LoginPath)
	}
	return RedirectTo(Landing(identity.Role))
}

// Region describes one of the role-scoped route subtrees.
type Region struct {
	Path string
	Role domain.Role
}

// Regions lists the three navigational regions and the role each admits.
func Regions() []Region {
	return []Region{
		{Path: StudentPath, Role: domain.RoleStudent},
		{Path: PlacementPath, Role: domain.RolePlacement},
		{Path: CompanyPath, Role: domain.RoleCompany},
	}
}
