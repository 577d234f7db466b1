//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/placementhub/placementhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type placementStats struct {
	TotalStudents     int                 `json:"total_students"`
	PlacedStudents    int                 `json:"placed_students"`
	TotalCompanies    int                 `json:"total_companies"`
	TotalJobs         int                 `json:"total_jobs"`
	OpenJobs          int                 `json:"open_jobs"`
	TotalApplications int                 `json:"total_applications"`
	PlacementRate     float64             `json:"placement_rate"`
	Funnel            map[string]int      `json:"funnel"`
	TopCompanies      []companyPlacements `json:"top_companies"`
}

type companyPlacements struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	Placements  int    `json:"placements"`
}

func getPlacementStats(t *testing.T, client *testutil.Client) placementStats {
	t.Helper()

	resp, err := client.GET("/api/v1/analytics/placements")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data placementStats `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	return result.Data
}

func TestAnalytics_PlacementOnly(t *testing.T) {
	client := newTestClient(t)

	client.LoginAsStudent(t)
	resp, err := client.GET("/api/v1/analytics/placements")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	client.LoginAsCompany(t)
	resp, err = client.GET("/api/v1/analytics/placements")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAnalytics_CountsSeededDirectory(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsPlacement(t)

	stats := getPlacementStats(t, client)
	assert.Equal(t, 1, stats.TotalStudents)
	assert.Equal(t, 1, stats.TotalCompanies)
}

func TestAnalytics_TracksFunnelAndPlacements(t *testing.T) {
	client := newTestClient(t)
	jobID := createOpenJob(t, client, "Analytics Funnel Role")

	client.LoginAsStudent(t)
	appID := applyToJob(t, client, jobID)

	client.LoginAsPlacement(t)
	before := getPlacementStats(t, client)

	client.LoginAsCompany(t)
	advanceApplication(t, client, appID, "shortlisted")
	advanceApplication(t, client, appID, "interviewed")
	advanceApplication(t, client, appID, "selected")

	client.LoginAsPlacement(t)
	after := getPlacementStats(t, client)

	assert.Equal(t, before.TotalApplications, after.TotalApplications)
	assert.Equal(t, before.Funnel["selected"]+1, after.Funnel["selected"])
	assert.Equal(t, 1, after.PlacedStudents)
	assert.InDelta(t, 1.0, after.PlacementRate, 0.001)
	assert.GreaterOrEqual(t, after.OpenJobs, 1)
	assert.GreaterOrEqual(t, after.TotalJobs, after.OpenJobs)

	require.NotEmpty(t, after.TopCompanies)
	assert.Equal(t, "Jordan Company", after.TopCompanies[0].CompanyName)
	assert.GreaterOrEqual(t, after.TopCompanies[0].Placements, 1)
}

func TestAnalytics_FunnelSumsToTotalApplications(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsPlacement(t)

	stats := getPlacementStats(t, client)

	sum := 0
	for _, count := range stats.Funnel {
		sum += count
	}
	assert.Equal(t, stats.TotalApplications, sum)
}
