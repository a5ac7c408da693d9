package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"

	"habitloop-backend/internal/models"
	"habitloop-backend/internal/storage"
)

const dateLayout = "2006-01-02"

type HabitsHandler struct {
	habits storage.HabitStore
}

func NewHabitsHandler(habits storage.HabitStore) *HabitsHandler {
	return &HabitsHandler{habits: habits}
}

type DayResponse struct {
	Date      string               `json:"date"`
	Habits    []models.HabitStatus `json:"habits"`
	Completed int                  `json:"completed"`
	Total     int                  `json:"total"`
}

type WeekDay struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// --- GET /api/habits/{date} ---

func (h *HabitsHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	date, ok := parseDate(w, chi.URLParam(r, "date"))
	if !ok {
		return
	}

	habits, err := h.habits.ForDate(r.Context(), userID, date)
	if err != nil {
		writeStoreError(w, err, "not found")
		return
	}
	writeJSON(w, http.StatusOK, dayResponse(date, habits))
}

// --- POST /api/habits/{date}/{habitID}/toggle ---

func (h *HabitsHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	date, ok := parseDate(w, chi.URLParam(r, "date"))
	if !ok {
		return
	}
	habitID, err := bson.ObjectIDFromHex(chi.URLParam(r, "habitID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid habit id")
		return
	}

	completed, err := h.habits.Toggle(r.Context(), userID, habitID, date)
	if err != nil {
		writeStoreError(w, err, "habit not found")
		return
	}

	habits, err := h.habits.ForDate(r.Context(), userID, date)
	if err != nil {
		writeStoreError(w, err, "not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":      date,
		"habit_id":  habitID.Hex(),
		"completed": completed,
		"habits":    habits,
	})
}

// --- GET /api/habits/week/{date} ---

// Week reports the 7 consecutive calendar dates ending at {date}, ascending.
func (h *HabitsHandler) Week(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	date, ok := parseDate(w, chi.URLParam(r, "date"))
	if !ok {
		return
	}
	base, _ := time.Parse(dateLayout, date)

	week := make([]WeekDay, 0, 7)
	for i := 6; i >= 0; i-- {
		day := base.AddDate(0, 0, -i).Format(dateLayout)
		habits, err := h.habits.ForDate(r.Context(), userID, day)
		if err != nil {
			writeStoreError(w, err, "not found")
			return
		}
		week = append(week, WeekDay{
			Date:      day,
			Completed: models.CompletedCount(habits),
			Total:     len(habits),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"week": week})
}

func dayResponse(date string, habits []models.HabitStatus) DayResponse {
	return DayResponse{
		Date:      date,
		Habits:    habits,
		Completed: models.CompletedCount(habits),
		Total:     len(habits),
	}
}

func parseDate(w http.ResponseWriter, raw string) (string, bool) {
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, use YYYY-MM-DD")
		return "", false
	}
	return parsed.Format(dateLayout), true
}
