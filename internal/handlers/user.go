package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"habitloop-backend/internal/storage"
)

type UserHandler struct {
	users storage.UserStore
}

func NewUserHandler(users storage.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// --- GET /user/me ---

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	user, err := h.users.ByID(r.Context(), userID)
	if err != nil {
		writeStoreError(w, err, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":                   user.ID.Hex(),
		"email":                user.Email,
		"name":                 user.Name,
		"timezone":             user.Timezone,
		"onboarding_completed": user.OnboardingCompleted,
		"telegram_linked":      user.TelegramLinked(),
	})
}

// --- PATCH /user/me ---

type UpdateMeRequest struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req UpdateMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Timezone = strings.TrimSpace(req.Timezone)
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			writeError(w, http.StatusBadRequest, "unknown timezone")
			return
		}
	}

	if err := h.users.UpdateProfile(r.Context(), userID, strings.TrimSpace(req.Name), req.Timezone); err != nil {
		writeStoreError(w, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "profile updated"})
}

// --- PATCH /user/onboarding ---

func (h *UserHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	if err := h.users.SetOnboarded(r.Context(), userID); err != nil {
		log.Printf("Error updating onboarding: %v", err)
		writeStoreError(w, err, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "onboarding marked as completed",
	})
}
