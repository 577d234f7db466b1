//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/placementhub/placementhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_RootRedirectsToLoginWhenAnonymous(t *testing.T) {
	client := newTestClient(t).WithoutRedirects()

	resp, err := client.GET("/")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestDashboard_RootRedirectsToLandingRegion(t *testing.T) {
	cases := []struct {
		login   func(*testing.T)
		landing string
	}{
		{landing: "/student"},
		{landing: "/placement"},
		{landing: "/company"},
	}

	client := newTestClient(t)
	bare := client.WithoutRedirects()
	cases[0].login = client.LoginAsStudent
	cases[1].login = client.LoginAsPlacement
	cases[2].login = client.LoginAsCompany

	for _, tc := range cases {
		t.Run(tc.landing, func(t *testing.T) {
			tc.login(t)

			resp, err := bare.GET("/")
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, tc.landing, resp.Header.Get("Location"))
		})
	}
}

func TestDashboard_RegionRendersForItsRole(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsStudent(t)

	resp, err := client.GET("/student")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := testutil.ReadBody(t, resp)
	assert.Contains(t, body, "Student Dashboard")
	assert.Contains(t, body, "Alex Student")
}

func TestDashboard_WrongRoleIsRedirectedHome(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsCompany(t)
	bare := client.WithoutRedirects()

	resp, err := bare.GET("/student")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/company", resp.Header.Get("Location"))
}

func TestDashboard_RegionRedirectsToLoginWhenAnonymous(t *testing.T) {
	client := newTestClient(t).WithoutRedirects()

	for _, region := range []string{"/student", "/placement", "/company"} {
		resp, err := client.GET(region)
		require.NoError(t, err)
		_ = resp.Body.Close()

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, region)
		assert.Equal(t, "/login", resp.Header.Get("Location"), region)
	}
}

func TestDashboard_LoginPageBouncesAuthenticatedUser(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsPlacement(t)
	bare := client.WithoutRedirects()

	resp, err := bare.GET("/login")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/placement", resp.Header.Get("Location"))
}

func TestDashboard_LoginPageRendersForAnonymous(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/login")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, testutil.ReadBody(t, resp), "Sign in")
}

// Logging out turns the next region navigation into a login redirect.
func TestDashboard_LogoutRevokesRegionAccess(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsStudent(t)

	resp, err := client.GET("/student")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	client.Logout(t)

	bare := client.WithoutRedirects()
	resp, err = bare.GET("/student")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}
