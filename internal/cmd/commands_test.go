package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/coursedesk/internal/config"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvAPIToken, "")
	t.Setenv(config.EnvPageSize, "")
	t.Setenv(config.EnvLogLevel, "off")
	t.Chdir(dir)
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "ok", "data": data})
}

// courseServer serves a paged student list and records deletes.
type courseServer struct {
	mu      sync.Mutex
	deletes []string
	queries []string
}

func (c *courseServer) start(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.mu.Lock()
		defer c.mu.Unlock()
		assert.Equal(t, "Bearer tok_cli", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/students":
			c.queries = append(c.queries, r.URL.RawQuery)
			writeData(w, map[string]any{
				"content": []map[string]any{
					{"id": 1, "studentCode": "S001", "firstName": "Ada", "lastName": "Lovelace", "email": "ada@school.edu", "active": true, "group": map[string]any{"id": 1, "name": "1A"}},
				},
				"totalElements": 1, "totalPages": 1, "size": 10, "number": 0,
			})
		case r.Method == http.MethodGet && r.URL.Path == "/api/groups":
			writeData(w, []map[string]any{})
		case r.Method == http.MethodDelete:
			c.deletes = append(c.deletes, r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func loggedIn(t *testing.T, url string) {
	t.Helper()
	require.NoError(t, (&config.Config{BaseURL: url, Token: "tok_cli"}).Save())
}

func TestLoginWithTokenSavesConfig(t *testing.T) {
	isolate(t)

	var out bytes.Buffer
	cmd := LoginCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--url", "http://api.school.test/", "--token", "tok_flag"})
	require.NoError(t, cmd.Execute())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok_flag", cfg.Token)
	assert.Equal(t, "http://api.school.test", cfg.BaseURL)
	assert.Contains(t, out.String(), "token saved")
}

func TestLoginPromptsForCredentials(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "registrar", body["username"])
		assert.Equal(t, "s3cret pass", body["password"])
		writeData(w, map[string]any{"token": "tok_issued", "username": "registrar"})
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	cmd := LoginCmd()
	cmd.SetIn(strings.NewReader("registrar\ns3cret pass\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--url", srv.URL})
	require.NoError(t, cmd.Execute())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok_issued", cfg.Token)
	assert.Equal(t, "registrar", cfg.Username)
	assert.Contains(t, out.String(), "logged in as registrar")
}

func TestLoginRejectsEmptyUsername(t *testing.T) {
	isolate(t)

	cmd := LoginCmd()
	cmd.SetIn(strings.NewReader("\n"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username is required")
}

func TestListPrintsPage(t *testing.T) {
	isolate(t)
	srv := &courseServer{}
	loggedIn(t, srv.start(t))

	var out bytes.Buffer
	cmd := ListCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"students", "--sort", "lastName,asc"})
	require.NoError(t, cmd.Execute())

	text := out.String()
	assert.Contains(t, text, "STUDENTCODE")
	assert.Contains(t, text, "Lovelace")
	assert.Contains(t, text, "1A")
	assert.Contains(t, text, "1-1 of 1 (page 1/1)")
	assert.Equal(t, []string{"page=0&size=10&sort=lastName%2Casc"}, srv.queries)
}

func TestListEmptyBulkKind(t *testing.T) {
	isolate(t)
	srv := &courseServer{}
	loggedIn(t, srv.start(t))

	var out bytes.Buffer
	cmd := ListCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"group"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "no groups found")
}

func TestListUnknownKind(t *testing.T) {
	isolate(t)

	cmd := ListCmd()
	cmd.SetArgs([]string{"courses"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}

func TestListNotLoggedIn(t *testing.T) {
	isolate(t)

	cmd := ListCmd()
	cmd.SetArgs([]string{"students"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestDeleteWithYesSkipsPrompt(t *testing.T) {
	isolate(t)
	srv := &courseServer{}
	loggedIn(t, srv.start(t))

	var out bytes.Buffer
	cmd := DeleteCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"student", "1", "--yes"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, []string{"/api/students/1"}, srv.deletes)
	assert.Contains(t, out.String(), "Student deleted successfully")
}

func TestDeletePromptDeclined(t *testing.T) {
	isolate(t)
	srv := &courseServer{}
	loggedIn(t, srv.start(t))

	var out bytes.Buffer
	cmd := DeleteCmd()
	cmd.SetIn(strings.NewReader("n\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"students", "1"})
	require.NoError(t, cmd.Execute())

	assert.Empty(t, srv.deletes)
	assert.Contains(t, out.String(), "Are you sure you want to delete this student? [y/N]")
	assert.Contains(t, out.String(), "cancelled")
}

func TestDeletePromptAccepted(t *testing.T) {
	isolate(t)
	srv := &courseServer{}
	loggedIn(t, srv.start(t))

	cmd := DeleteCmd()
	cmd.SetIn(strings.NewReader("yes\n"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"students", "1"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, []string{"/api/students/1"}, srv.deletes)
}

func TestDeleteRejectsBadID(t *testing.T) {
	isolate(t)

	cmd := DeleteCmd()
	cmd.SetArgs([]string{"students", "abc"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid id "abc"`)
}

func TestDeleteFailureIsReturned(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"message":"student has enrollments"}`))
	}))
	t.Cleanup(srv.Close)
	require.NoError(t, (&config.Config{BaseURL: srv.URL, Token: "tok_cli"}).Save())

	cmd := DeleteCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"students", "7", "-y"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to delete student")
	assert.Contains(t, err.Error(), "student has enrollments")
}
