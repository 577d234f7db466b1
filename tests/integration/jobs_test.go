//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/placementhub/placementhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobs_CreateDraftAndPublish(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsCompany(t)

	jobID := createTestJob(t, client, "Backend Engineer", withSalary("competitive"))
	assert.Equal(t, "draft", getJobStatus(t, client, jobID))

	resp, err := client.POST("/api/v1/jobs/"+jobID+"/publish", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "open", getJobStatus(t, client, jobID))
}

func TestJobs_CreatePublishedDirectly(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsCompany(t)

	jobID := createTestJob(t, client, "Data Analyst Intern", withPublish(), withType("internship"))
	assert.Equal(t, "open", getJobStatus(t, client, jobID))
}

func TestJobs_StudentCannotCreate(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsStudent(t)

	resp, err := client.POST("/api/v1/jobs", map[string]interface{}{
		"title": "Not Allowed",
		"type":  "full_time",
	})
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestJobs_UnknownTypeIsRejected(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsCompany(t)

	resp, err := client.POST("/api/v1/jobs", map[string]interface{}{
		"title": "Contractor",
		"type":  "contract",
	})
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJobs_StudentSeesOnlyOpenPostings(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsCompany(t)

	draftID := createTestJob(t, client, "Hidden Draft Role")
	openID := createTestJob(t, client, "Visible Open Role", withPublish())

	client.LoginAsStudent(t)

	resp, err := client.GET("/api/v1/jobs?limit=100")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)

	ids := make(map[string]bool, len(result.Data))
	for _, job := range result.Data {
		assert.Equal(t, "open", job.Status)
		ids[job.ID] = true
	}
	assert.True(t, ids[openID], "open posting should be listed")
	assert.False(t, ids[draftID], "draft posting must not be listed")
}

func TestJobs_UpdateDraft(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsCompany(t)

	jobID := createTestJob(t, client, "Junior Engineer")

	resp, err := client.PATCH("/api/v1/jobs/"+jobID, map[string]interface{}{
		"title":  "Junior Go Engineer",
		"type":   "full_time",
		"skills": []string{"go"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data struct {
			Title  string   `json:"title"`
			Skills []string `json:"skills"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, "Junior Go Engineer", result.Data.Title)
	assert.Equal(t, []string{"go"}, result.Data.Skills)
}

func TestJobs_DeleteDraft(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsCompany(t)

	jobID := createTestJob(t, client, "Short Lived Draft")

	resp, err := client.DELETE("/api/v1/jobs/" + jobID)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = client.GET("/api/v1/jobs/" + jobID)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestJobs_DeleteOpenPostingConflicts(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsCompany(t)

	jobID := createTestJob(t, client, "Open Role Stays", withPublish())

	resp, err := client.DELETE("/api/v1/jobs/" + jobID)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestJobs_CloseStopsApplications(t *testing.T) {
	client := newTestClient(t)
	jobID := createOpenJob(t, client, "Closing Soon")

	resp, err := client.POST("/api/v1/jobs/"+jobID+"/close", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	client.LoginAsStudent(t)
	resp, err = client.POST("/api/v1/jobs/"+jobID+"/apply", nil)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestJobs_PlacementStaffMayManageAnyPosting(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsCompany(t)
	jobID := createTestJob(t, client, "Company Owned Draft")

	client.LoginAsPlacement(t)
	resp, err := client.POST("/api/v1/jobs/"+jobID+"/publish", nil)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestJobs_GetUnknownJob(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsStudent(t)

	resp, err := client.GET("/api/v1/jobs/00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestJobs_RequiresAuthentication(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/api/v1/jobs")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
