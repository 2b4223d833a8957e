package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/app/services"
	"github.com/putrawardana/warungsaji/pkg/router"
	"github.com/putrawardana/warungsaji/pkg/testkit"
)

type fakeAuthenticator struct {
	token string
	user  models.User
	err   error
}

func (f *fakeAuthenticator) Login(email, password string) (string, models.User, error) {
	if f.err != nil {
		return "", models.User{}, f.err
	}
	return f.token, f.user, nil
}

func (f *fakeAuthenticator) Me(userID string) (models.User, error) {
	if f.err != nil {
		return models.User{}, f.err
	}
	return f.user, nil
}

func newAuthAPI(auth Authenticator) http.Handler {
	ctrl := NewAuthController(auth)

	r := router.New()
	r.Post("/api/admin/login", "admin.login", ctrl.Login)
	r.Post("/api/admin/logout", "admin.logout", ctrl.Logout)
	return r.Handler()
}

func TestLogin(t *testing.T) {
	auth := &fakeAuthenticator{
		token: "signed.jwt.token",
		user:  models.User{Base: models.Base{ID: "u1"}, Email: "admin@warungsaji.local", Role: "admin"},
	}
	h := newAuthAPI(auth)

	rec := testkit.Do(h, http.MethodPost, "/api/admin/login",
		testkit.JSONBody(map[string]any{"email": "admin@warungsaji.local", "password": "warungsaji-admin"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Token string          `json:"token"`
		User  json.RawMessage `json:"user"`
	}
	testkit.DecodeData(t, rec, &out)
	assert.Equal(t, "signed.jwt.token", out.Token)
	// The password hash never leaves the server.
	assert.NotContains(t, string(out.User), "password")
}

func TestLoginBadCredentials(t *testing.T) {
	h := newAuthAPI(&fakeAuthenticator{err: services.ErrInvalidCredentials})

	rec := testkit.Do(h, http.MethodPost, "/api/admin/login",
		testkit.JSONBody(map[string]any{"email": "admin@warungsaji.local", "password": "wrong-password"}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	env := testkit.DecodeEnvelope(t, rec)
	assert.Equal(t, "Invalid email or password", env.Message)
}

func TestLoginValidation(t *testing.T) {
	h := newAuthAPI(&fakeAuthenticator{})

	rec := testkit.Do(h, http.MethodPost, "/api/admin/login",
		testkit.JSONBody(map[string]any{"email": "not-an-email", "password": "short"}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	env := testkit.DecodeEnvelope(t, rec)
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "password")
}

func TestLogout(t *testing.T) {
	h := newAuthAPI(&fakeAuthenticator{})

	rec := testkit.Do(h, http.MethodPost, "/api/admin/logout")
	assert.Equal(t, http.StatusOK, rec.Code)
}
