package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow-api/internal/constants"
)

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)

	body := srv.register(t, "ada@example.com")
	user := body["user"].(map[string]any)
	require.Equal(t, constants.RoleAdmin, user["role"])

	// The stored hash never leaks into a response body.
	require.NotContains(t, user, "password")
	require.NotContains(t, user, "password_hash")

	token, w := srv.login(t, "ada@example.com")
	loginBody := decode(t, w)
	require.Equal(t, "Ada", loginBody["firstName"])
	require.NotEmpty(t, token)

	// Login also sets the session cookie.
	var found bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == constants.TokenCookieName {
			found = true
			require.True(t, cookie.HttpOnly)
			require.Equal(t, token, cookie.Value)
		}
	}
	require.True(t, found, "session cookie not set")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "ada@example.com")

	w := srv.do(t, http.MethodPost, "/user/register", "", registerBody("ADA@example.com"))
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_InvalidBody(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodPost, "/user/register", "", map[string]string{"email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterByAdmin(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "admin@example.com")
	adminToken, _ := srv.login(t, "admin@example.com")

	w := srv.do(t, http.MethodPost, "/user/registerByAdmin", adminToken, registerBody("worker@example.com"))
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	created := body["user"].(map[string]any)
	require.Equal(t, constants.RoleUser, created["role"])

	// The new account id shows up in the admin's ownerOf list.
	w = srv.do(t, http.MethodGet, "/user/ownerOf", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	owned := decode(t, w)["owner_of"].([]any)
	require.Contains(t, owned, created["id"])
}

func TestRegisterByAdmin_RequiresAdminRole(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "admin@example.com")
	adminToken, _ := srv.login(t, "admin@example.com")

	w := srv.do(t, http.MethodPost, "/user/registerByAdmin", adminToken, registerBody("worker@example.com"))
	require.Equal(t, http.StatusCreated, w.Code)

	// Admin-created accounts are regular users and cannot create accounts.
	workerToken, _ := srv.login(t, "worker@example.com")
	w = srv.do(t, http.MethodPost, "/user/registerByAdmin", workerToken, registerBody("other@example.com"))
	require.Equal(t, http.StatusForbidden, w.Code)

	// No token at all is unauthorized, not forbidden.
	w = srv.do(t, http.MethodPost, "/user/registerByAdmin", "", registerBody("other@example.com"))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "ada@example.com")

	w := srv.do(t, http.MethodPost, "/user/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	unknown := srv.do(t, http.MethodPost, "/user/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, unknown.Code)

	// Unknown account and wrong password read identically.
	require.JSONEq(t, w.Body.String(), unknown.Body.String())
}

func TestChangePassword(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "ada@example.com")
	token, _ := srv.login(t, "ada@example.com")

	w := srv.do(t, http.MethodPost, "/user/change-password", token, map[string]string{
		"current_password":     "s3cret-pass",
		"new_password":         "new-pass-123",
		"confirm_new_password": "new-pass-123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Old credentials stop working, new ones do.
	old := srv.do(t, http.MethodPost, "/user/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusUnauthorized, old.Code)

	fresh := srv.do(t, http.MethodPost, "/user/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "new-pass-123",
	})
	require.Equal(t, http.StatusOK, fresh.Code)
}

func TestChangePassword_MismatchedConfirmation(t *testing.T) {
	srv := newTestServer(t)
	srv.register(t, "ada@example.com")
	token, _ := srv.login(t, "ada@example.com")

	w := srv.do(t, http.MethodPost, "/user/change-password", token, map[string]string{
		"current_password":     "s3cret-pass",
		"new_password":         "new-pass-123",
		"confirm_new_password": "different",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodPost, "/user/logout", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cleared bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == constants.TokenCookieName {
			cleared = cookie.MaxAge < 0 && cookie.Value == ""
		}
	}
	require.True(t, cleared, "session cookie not cleared")
}

func TestDeleteUser_ByQueryParam(t *testing.T) {
	srv := newTestServer(t)
	body := srv.register(t, "ada@example.com")
	id := body["user"].(map[string]any)["id"].(string)

	w := srv.do(t, http.MethodDelete, "/user/delete?id="+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/user/"+id, "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodDelete, "/user/delete?id=not-hex", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
