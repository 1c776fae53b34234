package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func projectBody(members ...string) map[string]any {
	return map[string]any{
		"project_name": "Launch",
		"description":  "Ship it",
		"deadline":     time.Now().Add(30 * 24 * time.Hour).Format(time.RFC3339),
		"members":      members,
	}
}

func (s *testServer) createProject(t *testing.T, token string, members ...string) map[string]any {
	t.Helper()
	w := s.do(t, http.MethodPost, "/projects/create", token, projectBody(members...))
	require.Equal(t, http.StatusCreated, w.Code)
	return decode(t, w)
}

func TestCreateProject(t *testing.T) {
	srv := newTestServer(t)
	creatorID, token := srv.registerAndLogin(t, "creator@example.com")
	memberID, _ := srv.registerAndLogin(t, "member@example.com")

	body := srv.createProject(t, token, memberID)
	require.NotContains(t, body, "secondary_failures")
	project := body["project"].(map[string]any)
	require.Equal(t, "Launch", project["project_name"])
	require.Equal(t, creatorID, project["created_by"])

	// Membership fan-out is visible through the user endpoint.
	w := srv.do(t, http.MethodGet, "/user/"+memberID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, decode(t, w)["project_ids"], project["id"])

	// And the project shows up under the creator's projects.
	w = srv.do(t, http.MethodGet, "/projects/userProjects", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), project["id"].(string))
}

func TestCreateProject_RequiresAuth(t *testing.T) {
	srv := newTestServer(t)
	memberID, _ := srv.registerAndLogin(t, "member@example.com")

	w := srv.do(t, http.MethodPost, "/projects/create", "", projectBody(memberID))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateProject_InvalidMember(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.registerAndLogin(t, "creator@example.com")

	// A well-formed id that references nothing is a 400, and nothing is
	// written.
	w := srv.do(t, http.MethodPost, "/projects/create", token,
		projectBody(primitive.NewObjectID().Hex()))
	require.Equal(t, http.StatusBadRequest, w.Code)

	list := srv.do(t, http.MethodGet, "/projects/userProjects", token, nil)
	require.Equal(t, http.StatusOK, list.Code)
	require.Equal(t, "[]", list.Body.String())

	// A malformed id is rejected before the service runs.
	w = srv.do(t, http.MethodPost, "/projects/create", token, projectBody("not-hex"))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMembers(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.registerAndLogin(t, "creator@example.com")
	memberID, _ := srv.registerAndLogin(t, "member@example.com")

	body := srv.createProject(t, token, memberID)
	projectID := body["project"].(map[string]any)["id"].(string)

	w := srv.do(t, http.MethodGet, "/projects/"+projectID+"/members", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "member@example.com")
}

func TestUpdateProject(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.registerAndLogin(t, "creator@example.com")
	memberID, _ := srv.registerAndLogin(t, "member@example.com")

	body := srv.createProject(t, token, memberID)
	projectID := body["project"].(map[string]any)["id"].(string)

	updated := projectBody(memberID)
	updated["project_name"] = "Relaunch"
	w := srv.do(t, http.MethodPut, "/projects/update/"+projectID, "", updated)
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/projects/get/"+projectID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Relaunch", decode(t, w)["project_name"])
}

func TestDeleteProject(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.registerAndLogin(t, "creator@example.com")
	memberID, _ := srv.registerAndLogin(t, "member@example.com")

	body := srv.createProject(t, token, memberID)
	projectID := body["project"].(map[string]any)["id"].(string)

	w := srv.do(t, http.MethodDelete, "/projects/delete/"+projectID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/projects/get/"+projectID, "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodDelete, "/projects/delete/"+projectID, "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
