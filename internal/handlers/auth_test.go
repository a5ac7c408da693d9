package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/register", "", RegisterRequest{
		Email:    "New@Example.com",
		Password: "secret-pass",
		Name:     "Alex",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AuthResponse
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "new@example.com", resp.User.Email)
	assert.Equal(t, "UTC", resp.User.Timezone)
	assert.False(t, resp.User.OnboardingCompleted)

	// The issued token authenticates immediately.
	me := env.do(t, http.MethodGet, "/user/me", resp.Token, nil)
	assert.Equal(t, http.StatusOK, me.Code)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing email", RegisterRequest{Password: "secret-pass"}},
		{"malformed email", RegisterRequest{Email: "not-an-email", Password: "secret-pass"}},
		{"short password", RegisterRequest{Email: "a@example.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/auth/register", "", tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	req := RegisterRequest{Email: "dup@example.com", Password: "secret-pass"}
	first := env.do(t, http.MethodPost, "/auth/register", "", req)
	require.Equal(t, http.StatusCreated, first.Code)

	second := env.do(t, http.MethodPost, "/auth/register", "", req)
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	reg := env.do(t, http.MethodPost, "/auth/register", "", RegisterRequest{
		Email:    "login@example.com",
		Password: "secret-pass",
	})
	require.Equal(t, http.StatusCreated, reg.Code)

	rec := env.do(t, http.MethodPost, "/auth/login", "", LoginRequest{
		Email:    "login@example.com",
		Password: "secret-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AuthResponse
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	reg := env.do(t, http.MethodPost, "/auth/register", "", RegisterRequest{
		Email:    "login@example.com",
		Password: "secret-pass",
	})
	require.Equal(t, http.StatusCreated, reg.Code)

	wrongPass := env.do(t, http.MethodPost, "/auth/login", "", LoginRequest{
		Email:    "login@example.com",
		Password: "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)

	unknown := env.do(t, http.MethodPost, "/auth/login", "", LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
}

func TestLogoutRevokesSession(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.authedUser(t)

	rec := env.do(t, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	me := env.do(t, http.MethodGet, "/user/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, me.Code)
}
