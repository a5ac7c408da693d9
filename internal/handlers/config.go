package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"habitloop-backend/internal/models"
	"habitloop-backend/internal/storage"
)

// ConfigHandler serves the replace-all configuration endpoints for habits,
// routines and reminders.
type ConfigHandler struct {
	habits    storage.HabitStore
	routines  storage.RoutineStore
	reminders storage.ReminderStore
}

func NewConfigHandler(habits storage.HabitStore, routines storage.RoutineStore, reminders storage.ReminderStore) *ConfigHandler {
	return &ConfigHandler{habits: habits, routines: routines, reminders: reminders}
}

// --- GET /api/config/habits ---

func (h *ConfigHandler) GetHabits(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	defs, err := h.habits.Definitions(r.Context(), userID)
	if err != nil {
		writeStoreError(w, err, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"habits": defs})
}

// --- PUT /api/config/habits ---

type HabitInput struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

func (h *ConfigHandler) PutHabits(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		Habits []HabitInput `json:"habits"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	defs := make([]models.HabitDefinition, 0, len(req.Habits))
	for _, in := range req.Habits {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, "habit name is required")
			return
		}
		emoji := in.Emoji
		if emoji == "" {
			emoji = "✅"
		}
		defs = append(defs, models.HabitDefinition{Name: name, Emoji: emoji})
	}

	stored, err := h.habits.SetDefinitions(r.Context(), userID, defs)
	if err != nil {
		writeStoreError(w, err, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"habits": stored})
}

// --- GET /api/config/routines/{kind} ---

func (h *ConfigHandler) GetRoutine(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	kind, ok := routineKind(w, r)
	if !ok {
		return
	}
	steps, err := h.routines.Steps(r.Context(), userID, kind)
	if err != nil {
		writeStoreError(w, err, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"kind": kind, "steps": steps})
}

// --- PUT /api/config/routines/{kind} ---

type RoutineStepInput struct {
	Text  string `json:"text"`
	Emoji string `json:"emoji"`
}

func (h *ConfigHandler) PutRoutine(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	kind, ok := routineKind(w, r)
	if !ok {
		return
	}

	var req struct {
		Steps []RoutineStepInput `json:"steps"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	steps := make([]models.RoutineStep, 0, len(req.Steps))
	for _, in := range req.Steps {
		text := strings.TrimSpace(in.Text)
		if text == "" {
			writeError(w, http.StatusBadRequest, "step text is required")
			return
		}
		emoji := in.Emoji
		if emoji == "" {
			emoji = "▪️"
		}
		steps = append(steps, models.RoutineStep{Text: text, Emoji: emoji})
	}

	stored, err := h.routines.Set(r.Context(), userID, kind, steps)
	if err != nil {
		writeStoreError(w, err, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"kind": kind, "steps": stored})
}

// --- GET /api/config/reminders ---

func (h *ConfigHandler) GetReminders(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	reminders, err := h.reminders.Active(r.Context(), userID)
	if err != nil {
		writeStoreError(w, err, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reminders": reminders})
}

// --- PUT /api/config/reminders ---

type ReminderInput struct {
	Kind string `json:"kind"`
	Time string `json:"time"`
}

func (h *ConfigHandler) PutReminders(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		Reminders []ReminderInput `json:"reminders"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reminders := make([]models.ReminderConfig, 0, len(req.Reminders))
	for _, in := range req.Reminders {
		if !models.ValidReminderKind(in.Kind) {
			writeError(w, http.StatusBadRequest, "unknown reminder kind: "+in.Kind)
			return
		}
		if !models.ValidReminderTime(in.Time) {
			writeError(w, http.StatusBadRequest, "reminder time must be HH:MM")
			return
		}
		reminders = append(reminders, models.ReminderConfig{Kind: in.Kind, Time: in.Time})
	}

	stored, err := h.reminders.Set(r.Context(), userID, reminders)
	if err != nil {
		writeStoreError(w, err, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reminders": stored})
}

func routineKind(w http.ResponseWriter, r *http.Request) (string, bool) {
	kind := chi.URLParam(r, "kind")
	if !models.ValidRoutineKind(kind) {
		writeError(w, http.StatusBadRequest, "routine kind must be morning or evening")
		return "", false
	}
	return kind, true
}
