//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/placementhub/placementhub/internal/testutil"
	"github.com/stretchr/testify/require"
)

// createTestJob creates a job posting as the current client identity and
// returns its ID. Postings start as drafts unless withPublish is used.
func createTestJob(t *testing.T, client *testutil.Client, title string, opts ...jobOption) string {
	t.Helper()

	payload := map[string]interface{}{
		"title":       title,
		"description": "Test job description",
		"location":    "Remote",
		"type":        "full_time",
		"skills":      []string{"go", "sql"},
	}

	for _, opt := range opts {
		opt(payload)
	}

	resp, err := client.POST("/api/v1/jobs", payload)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	return result.Data.ID
}

type jobOption func(map[string]interface{})

func withPublish() jobOption {
	return func(m map[string]interface{}) {
		m["publish"] = true
	}
}

func withType(jobType string) jobOption {
	return func(m map[string]interface{}) {
		m["type"] = jobType
	}
}

func withSalary(salary string) jobOption {
	return func(m map[string]interface{}) {
		m["salary"] = salary
	}
}

func withDeadline(deadline string) jobOption {
	return func(m map[string]interface{}) {
		m["deadline"] = deadline
	}
}

// createOpenJob creates a published posting as the seeded company account and
// leaves the client logged in as that account.
func createOpenJob(t *testing.T, client *testutil.Client, title string) string {
	t.Helper()
	client.LoginAsCompany(t)
	return createTestJob(t, client, title, withPublish())
}

// applyToJob applies to a posting as the current (student) identity and
// returns the application ID.
func applyToJob(t *testing.T, client *testutil.Client, jobID string) string {
	t.Helper()

	resp, err := client.POST("/api/v1/jobs/"+jobID+"/apply", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	return result.Data.ID
}

// advanceApplication moves an application to the given funnel stage as the
// current identity.
func advanceApplication(t *testing.T, client *testutil.Client, appID, status string) {
	t.Helper()

	resp, err := client.PATCH("/api/v1/applications/"+appID, map[string]string{
		"status": status,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

// getJobStatus returns the status of a posting.
func getJobStatus(t *testing.T, client *testutil.Client, jobID string) string {
	t.Helper()

	resp, err := client.GET("/api/v1/jobs/" + jobID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	return result.Data.Status
}

// markAllNotificationsRead clears the unread state for the current identity
// so count assertions start from zero.
func markAllNotificationsRead(t *testing.T, client *testutil.Client) {
	t.Helper()

	resp, err := client.POST("/api/v1/notifications/read-all", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()
}

// unreadCount returns the current identity's unread notification count.
func unreadCount(t *testing.T, client *testutil.Client) int {
	t.Helper()

	resp, err := client.GET("/api/v1/notifications/unread-count")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	return result.Data.Count
}

// notification mirrors the API notification payload in assertions.
type notification struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Read    bool   `json:"read"`
}

// listNotifications returns the current identity's notifications.
func listNotifications(t *testing.T, client *testutil.Client) []notification {
	t.Helper()

	resp, err := client.GET("/api/v1/notifications")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data []notification `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	return result.Data
}
