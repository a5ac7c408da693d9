package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"habitloop-backend/internal/middleware"
	"habitloop-backend/internal/models"
	"habitloop-backend/internal/repository"
	"habitloop-backend/internal/session"
	"habitloop-backend/internal/telegram"
)

// fakeBot records every outgoing bot call for assertions.
type fakeBot struct {
	mu        sync.Mutex
	texts     map[int64][]string
	keyboards map[int64][][][]telegram.InlineButton
	edits     map[int64][][][]telegram.InlineButton
	answered  []string
}

func newFakeBot() *fakeBot {
	return &fakeBot{
		texts:     make(map[int64][]string),
		keyboards: make(map[int64][][][]telegram.InlineButton),
		edits:     make(map[int64][][][]telegram.InlineButton),
	}
}

func (b *fakeBot) Send(ctx context.Context, chatID int64, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.texts[chatID] = append(b.texts[chatID], text)
	return nil
}

func (b *fakeBot) SendKeyboard(ctx context.Context, chatID int64, text string, buttons [][]telegram.InlineButton) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.keyboards[chatID] = append(b.keyboards[chatID], buttons)
	return nil
}

func (b *fakeBot) EditKeyboard(ctx context.Context, chatID int64, messageID int64, text string, buttons [][]telegram.InlineButton) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.edits[chatID] = append(b.edits[chatID], buttons)
	return nil
}

func (b *fakeBot) AnswerCallback(ctx context.Context, callbackID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.answered = append(b.answered, callbackID)
	return nil
}

type testEnv struct {
	users     *repository.MemoryUserStore
	habits    *repository.MemoryHabitStore
	routines  *repository.MemoryRoutineStore
	reminders *repository.MemoryReminderStore
	linkCodes *repository.MemoryLinkCodeStore
	sessions  *session.MemoryStore
	bot       *fakeBot
	router    chi.Router
}

// newTestEnv wires the handlers onto a router the same way main does, backed
// by in-memory stores.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:     repository.NewMemoryUserStore(),
		habits:    repository.NewMemoryHabitStore(),
		routines:  repository.NewMemoryRoutineStore(),
		reminders: repository.NewMemoryReminderStore(),
		linkCodes: repository.NewMemoryLinkCodeStore(),
		sessions:  session.NewMemoryStore(),
		bot:       newFakeBot(),
	}

	authHandler := NewAuthHandler(env.users, env.sessions, nil, "UTC")
	userHandler := NewUserHandler(env.users)
	habitsHandler := NewHabitsHandler(env.habits)
	configHandler := NewConfigHandler(env.habits, env.routines, env.reminders)
	telegramHandler := NewTelegramHandler(env.users, env.habits, env.routines, env.linkCodes, env.bot, "habitloop_bot", time.UTC)

	r := chi.NewRouter()
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)
	r.Post("/telegram/webhook", telegramHandler.Webhook)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(env.sessions))

		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/user/me", userHandler.Me)
		r.Patch("/user/me", userHandler.UpdateMe)
		r.Patch("/user/onboarding", userHandler.CompleteOnboarding)

		r.Get("/api/habits/week/{date}", habitsHandler.Week)
		r.Get("/api/habits/{date}", habitsHandler.GetDay)
		r.Post("/api/habits/{date}/{habitID}/toggle", habitsHandler.Toggle)

		r.Get("/api/config/habits", configHandler.GetHabits)
		r.Put("/api/config/habits", configHandler.PutHabits)
		r.Get("/api/config/routines/{kind}", configHandler.GetRoutine)
		r.Put("/api/config/routines/{kind}", configHandler.PutRoutine)
		r.Get("/api/config/reminders", configHandler.GetReminders)
		r.Put("/api/config/reminders", configHandler.PutReminders)

		r.Post("/api/telegram/link", telegramHandler.CreateLink)
	})

	env.router = r
	return env
}

// authedUser creates a user directly in the store and opens a session for it.
func (e *testEnv) authedUser(t *testing.T) (*models.User, string) {
	t.Helper()
	user := &models.User{
		Email:    fmt.Sprintf("user-%d@example.com", time.Now().UnixNano()),
		Name:     "Test User",
		Timezone: "UTC",
	}
	require.NoError(t, e.users.Create(context.Background(), user))
	token, err := e.sessions.Create(user.ID.Hex())
	require.NoError(t, err)
	return user, token
}

// do runs one request through the router. A non-nil body is JSON-encoded.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(into))
}
