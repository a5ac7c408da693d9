package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"habitloop-backend/internal/models"
)

func seedHabits(t *testing.T, env *testEnv, userID bson.ObjectID, names ...string) []models.HabitDefinition {
	t.Helper()
	defs := make([]models.HabitDefinition, 0, len(names))
	for _, name := range names {
		defs = append(defs, models.HabitDefinition{Name: name, Emoji: "✅"})
	}
	stored, err := env.habits.SetDefinitions(context.Background(), userID, defs)
	require.NoError(t, err)
	return stored
}

func TestGetDay(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.authedUser(t)
	defs := seedHabits(t, env, user.ID, "Meditate", "Read")

	_, err := env.habits.Toggle(context.Background(), user.ID, defs[0].ID, "2026-02-18")
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/api/habits/2026-02-18", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DayResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "2026-02-18", resp.Date)
	assert.Equal(t, 1, resp.Completed)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Habits, 2)
	assert.True(t, resp.Habits[0].Completed)
	assert.False(t, resp.Habits[1].Completed)
}

func TestGetDayBadDate(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.authedUser(t)

	rec := env.do(t, http.MethodGet, "/api/habits/18-02-2026", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggle(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.authedUser(t)
	defs := seedHabits(t, env, user.ID, "Meditate")
	path := fmt.Sprintf("/api/habits/2026-02-18/%s/toggle", defs[0].ID.Hex())

	var resp struct {
		Completed bool                 `json:"completed"`
		Habits    []models.HabitStatus `json:"habits"`
	}

	rec := env.do(t, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &resp)
	assert.True(t, resp.Completed)
	require.Len(t, resp.Habits, 1)
	assert.True(t, resp.Habits[0].Completed)

	// Second toggle undoes the first.
	rec = env.do(t, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &resp)
	assert.False(t, resp.Completed)
}

func TestToggleUnknownHabit(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.authedUser(t)

	path := fmt.Sprintf("/api/habits/2026-02-18/%s/toggle", bson.NewObjectID().Hex())
	rec := env.do(t, http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToggleInvalidHabitID(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.authedUser(t)

	rec := env.do(t, http.MethodPost, "/api/habits/2026-02-18/not-hex/toggle", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleIsScopedToUser(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.authedUser(t)
	defs := seedHabits(t, env, owner.ID, "Meditate")

	_, strangerToken := env.authedUser(t)
	path := fmt.Sprintf("/api/habits/2026-02-18/%s/toggle", defs[0].ID.Hex())
	rec := env.do(t, http.MethodPost, path, strangerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWeek(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.authedUser(t)
	defs := seedHabits(t, env, user.ID, "Meditate", "Read")

	// Check one habit off two days back and both off on the target day.
	ctx := context.Background()
	_, err := env.habits.Toggle(ctx, user.ID, defs[0].ID, "2026-02-16")
	require.NoError(t, err)
	_, err = env.habits.Toggle(ctx, user.ID, defs[0].ID, "2026-02-18")
	require.NoError(t, err)
	_, err = env.habits.Toggle(ctx, user.ID, defs[1].ID, "2026-02-18")
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/api/habits/week/2026-02-18", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Week []WeekDay `json:"week"`
	}
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Week, 7)

	assert.Equal(t, "2026-02-12", resp.Week[0].Date)
	assert.Equal(t, "2026-02-18", resp.Week[6].Date)

	for i, day := range resp.Week {
		assert.Equal(t, 2, day.Total, "day %d", i)
	}
	assert.Equal(t, 0, resp.Week[0].Completed)
	assert.Equal(t, 1, resp.Week[4].Completed)
	assert.Equal(t, 2, resp.Week[6].Completed)
}

func TestHabitsRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/habits/2026-02-18", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
