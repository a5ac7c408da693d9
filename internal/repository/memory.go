package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"habitloop-backend/internal/models"
	"habitloop-backend/internal/storage"
)

// In-memory counterparts of the Mongo repositories. They back unit tests and
// local development without a MongoDB instance; replace-all saves are atomic
// because the whole slice swaps under one lock.

// --- users ---

type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[bson.ObjectID]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[bson.ObjectID]models.User)}
}

func (s *MemoryUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return storage.ErrConflict
		}
	}
	user.ID = bson.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *MemoryUserStore) ByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (s *MemoryUserStore) ByChatID(ctx context.Context, chatID int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.TelegramChatID != nil && *u.TelegramChatID == chatID {
			copied := u
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *MemoryUserStore) WithChat(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var users []models.User
	for _, u := range s.users {
		if u.TelegramChatID != nil {
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *MemoryUserStore) LinkChat(ctx context.Context, id bson.ObjectID, chatID int64) error {
	return s.update(id, func(u *models.User) { u.TelegramChatID = &chatID })
}

func (s *MemoryUserStore) SetOnboarded(ctx context.Context, id bson.ObjectID) error {
	return s.update(id, func(u *models.User) { u.OnboardingCompleted = true })
}

func (s *MemoryUserStore) UpdateProfile(ctx context.Context, id bson.ObjectID, name, timezone string) error {
	return s.update(id, func(u *models.User) {
		u.Name = name
		u.Timezone = timezone
	})
}

func (s *MemoryUserStore) update(id bson.ObjectID, apply func(*models.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	apply(&u)
	u.UpdatedAt = time.Now()
	s.users[id] = u
	return nil
}

// --- habits ---

type MemoryHabitStore struct {
	mu          sync.RWMutex
	definitions map[bson.ObjectID][]models.HabitDefinition
	completions map[completionKey]bool
}

type completionKey struct {
	userID  bson.ObjectID
	habitID bson.ObjectID
	date    string
}

func NewMemoryHabitStore() *MemoryHabitStore {
	return &MemoryHabitStore{
		definitions: make(map[bson.ObjectID][]models.HabitDefinition),
		completions: make(map[completionKey]bool),
	}
}

func (s *MemoryHabitStore) SetDefinitions(ctx context.Context, userID bson.ObjectID, defs []models.HabitDefinition) ([]models.HabitDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]models.HabitDefinition, 0, len(defs))
	for i, d := range defs {
		d.ID = bson.NewObjectID()
		d.UserID = userID
		d.Order = i
		d.Active = true
		stored = append(stored, d)
	}
	s.definitions[userID] = stored
	return append([]models.HabitDefinition{}, stored...), nil
}

func (s *MemoryHabitStore) Definitions(ctx context.Context, userID bson.ObjectID) ([]models.HabitDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	defs := []models.HabitDefinition{}
	for _, d := range s.definitions[userID] {
		if d.Active {
			defs = append(defs, d)
		}
	}
	return defs, nil
}

func (s *MemoryHabitStore) ForDate(ctx context.Context, userID bson.ObjectID, date string) ([]models.HabitStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	habits := []models.HabitStatus{}
	for _, d := range s.definitions[userID] {
		if !d.Active {
			continue
		}
		habits = append(habits, models.HabitStatus{
			ID:        d.ID,
			Name:      d.Name,
			Emoji:     d.Emoji,
			Order:     d.Order,
			Completed: s.completions[completionKey{userID, d.ID, date}],
		})
	}
	return habits, nil
}

func (s *MemoryHabitStore) Toggle(ctx context.Context, userID, habitID bson.ObjectID, date string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for _, d := range s.definitions[userID] {
		if d.ID == habitID && d.Active {
			found = true
			break
		}
	}
	if !found {
		return false, storage.ErrNotFound
	}
	key := completionKey{userID, habitID, date}
	s.completions[key] = !s.completions[key]
	return s.completions[key], nil
}

// --- routines ---

type MemoryRoutineStore struct {
	mu       sync.RWMutex
	routines map[routineKey][]models.RoutineStep
}

type routineKey struct {
	userID bson.ObjectID
	kind   string
}

func NewMemoryRoutineStore() *MemoryRoutineStore {
	return &MemoryRoutineStore{routines: make(map[routineKey][]models.RoutineStep)}
}

func (s *MemoryRoutineStore) Set(ctx context.Context, userID bson.ObjectID, kind string, steps []models.RoutineStep) ([]models.RoutineStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]models.RoutineStep, 0, len(steps))
	for i, step := range steps {
		step.ID = bson.NewObjectID()
		step.UserID = userID
		step.Kind = kind
		step.Order = i
		stored = append(stored, step)
	}
	s.routines[routineKey{userID, kind}] = stored
	return append([]models.RoutineStep{}, stored...), nil
}

func (s *MemoryRoutineStore) Steps(ctx context.Context, userID bson.ObjectID, kind string) ([]models.RoutineStep, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.RoutineStep{}, s.routines[routineKey{userID, kind}]...), nil
}

// --- reminders ---

type MemoryReminderStore struct {
	mu        sync.RWMutex
	reminders map[bson.ObjectID][]models.ReminderConfig
}

func NewMemoryReminderStore() *MemoryReminderStore {
	return &MemoryReminderStore{reminders: make(map[bson.ObjectID][]models.ReminderConfig)}
}

func (s *MemoryReminderStore) Set(ctx context.Context, userID bson.ObjectID, reminders []models.ReminderConfig) ([]models.ReminderConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]models.ReminderConfig, 0, len(reminders))
	for _, r := range reminders {
		r.ID = bson.NewObjectID()
		r.UserID = userID
		r.Active = true
		stored = append(stored, r)
	}
	s.reminders[userID] = stored
	return append([]models.ReminderConfig{}, stored...), nil
}

func (s *MemoryReminderStore) Active(ctx context.Context, userID bson.ObjectID) ([]models.ReminderConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reminders := []models.ReminderConfig{}
	for _, r := range s.reminders[userID] {
		if r.Active {
			reminders = append(reminders, r)
		}
	}
	return reminders, nil
}

// --- link codes ---

type MemoryLinkCodeStore struct {
	mu    sync.Mutex
	codes map[string]models.LinkCode
}

func NewMemoryLinkCodeStore() *MemoryLinkCodeStore {
	return &MemoryLinkCodeStore{codes: make(map[string]models.LinkCode)}
}

func (s *MemoryLinkCodeStore) Create(ctx context.Context, code *models.LinkCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	code.ID = bson.NewObjectID()
	code.CreatedAt = time.Now()
	s.codes[code.Code] = *code
	return nil
}

func (s *MemoryLinkCodeStore) Consume(ctx context.Context, code string) (*models.LinkCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lc, ok := s.codes[strings.TrimSpace(code)]
	if !ok || lc.IsUsed || lc.IsExpired() {
		return nil, storage.ErrNotFound
	}
	lc.IsUsed = true
	s.codes[lc.Code] = lc
	return &lc, nil
}
