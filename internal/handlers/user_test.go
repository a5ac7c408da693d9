package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.authedUser(t)

	rec := env.do(t, http.MethodGet, "/user/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	decodeBody(t, rec, &resp)
	assert.Equal(t, user.Email, resp["email"])
	assert.Equal(t, false, resp["telegram_linked"])
	assert.Equal(t, false, resp["onboarding_completed"])

	require.NoError(t, env.users.LinkChat(context.Background(), user.ID, 42))
	rec = env.do(t, http.MethodGet, "/user/me", token, nil)
	decodeBody(t, rec, &resp)
	assert.Equal(t, true, resp["telegram_linked"])
}

func TestUpdateMe(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.authedUser(t)

	rec := env.do(t, http.MethodPatch, "/user/me", token, UpdateMeRequest{
		Name:     "Renamed",
		Timezone: "Europe/Madrid",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	updated, err := env.users.ByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "Europe/Madrid", updated.Timezone)
}

func TestUpdateMeRejectsUnknownTimezone(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.authedUser(t)

	rec := env.do(t, http.MethodPatch, "/user/me", token, UpdateMeRequest{
		Timezone: "Mars/Olympus_Mons",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompleteOnboarding(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.authedUser(t)

	rec := env.do(t, http.MethodPatch, "/user/onboarding", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	updated, err := env.users.ByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, updated.OnboardingCompleted)
}
