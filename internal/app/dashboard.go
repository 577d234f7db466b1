package app

import (
	"fmt"
	"html"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/placementhub/placementhub/internal/authz"
	"github.com/placementhub/placementhub/internal/pkg/httputil"
)

// Region display names for the dashboard shell.
var regionTitles = map[string]string{
	authz.StudentPath:   "Student Dashboard",
	authz.PlacementPath: "Placement Cell Dashboard",
	authz.CompanyPath:   "Company Dashboard",
}

// registerRegions wires the browser-facing navigation: the root resolver,
// the login page and one gated subtree per role.
func (a *App) registerRegions(r chi.Router) {
	r.Get("/", a.rootHandler)
	r.Get(authz.LoginPath, a.loginPageHandler)

	for _, region := range authz.Regions() {
		region := region
		r.Route(region.Path, func(r chi.Router) {
			r.Use(httputil.RequireRegion(region.Path, region.Role))
			r.Get("/", a.regionHandler(region))
		})
	}
}

// rootHandler sends the navigation to the identity's landing region, or to
// the login page when unauthenticated. The root itself never renders.
func (a *App) rootHandler(w http.ResponseWriter, r *http.Request) {
	decision := authz.ResolveRoot(httputil.GetIdentity(r.Context()))
	http.Redirect(w, r, decision.Location, http.StatusSeeOther)
}

// loginPageHandler renders the login form. An already authenticated
// navigation is bounced to its landing region instead.
func (a *App) loginPageHandler(w http.ResponseWriter, r *http.Request) {
	if identity := httputil.GetIdentity(r.Context()); identity != nil {
		http.Redirect(w, r, authz.Landing(identity.Role), http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>PlacementHub - Sign in</title></head>
<body>
    <h1>PlacementHub</h1>
    <form id="login">
        <input name="email" type="email" placeholder="Email" required>
        <input name="password" type="password" placeholder="Password" required>
        <select name="role">
            <option value="student">Student</option>
            <option value="placement">Placement Cell</option>
            <option value="company">Company</option>
        </select>
        <button type="submit">Sign in</button>
        <p id="error"></p>
    </form>
    <script>
        document.getElementById('login').addEventListener('submit', async (e) => {
            e.preventDefault();
            const form = new FormData(e.target);
            const resp = await fetch('/api/v1/auth/login', {
                method: 'POST',
                headers: {'Content-Type': 'application/json'},
                body: JSON.stringify(Object.fromEntries(form)),
            });
            if (resp.ok) {
                window.location = '/';
            } else {
                const body = await resp.json();
                document.getElementById('error').textContent =
                    (body.error && body.error.message) || 'Login failed';
            }
        });
    </script>
</body>
</html>`))
}

// regionHandler renders the dashboard shell for a gated region. The region
// middleware guarantees an identity with the right role is present.
func (a *App) regionHandler(region authz.Region) http.HandlerFunc {
	title := regionTitles[region.Path]

	return func(w http.ResponseWriter, r *http.Request) {
		identity := httputil.GetIdentity(r.Context())

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>PlacementHub - %s</title></head>
<body>
    <h1>%s</h1>
    <p>Signed in as %s (%s)</p>
    <a href="#" onclick="logout()">Sign out</a>
    <script>
        async function logout() {
            await fetch('/api/v1/auth/logout', {method: 'POST'});
            window.location = '/login';
        }
    </script>
</body>
</html>`, title, title, html.EscapeString(identity.Name), identity.Role)
	}
}
