package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"habitloop-backend/internal/email"
	"habitloop-backend/internal/middleware"
	"habitloop-backend/internal/models"
	"habitloop-backend/internal/session"
	"habitloop-backend/internal/storage"
)

const minPasswordLen = 8

type AuthHandler struct {
	users           storage.UserStore
	sessions        session.Store
	mail            *email.Sender
	defaultTimezone string
}

func NewAuthHandler(users storage.UserStore, sessions session.Store, mail *email.Sender, defaultTimezone string) *AuthHandler {
	return &AuthHandler{
		users:           users,
		sessions:        sessions,
		mail:            mail,
		defaultTimezone: defaultTimezone,
	}
}

// --- Request / Response types ---

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// --- POST /auth/register ---

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reqEmail := strings.ToLower(strings.TrimSpace(req.Email))
	if reqEmail == "" || !strings.Contains(reqEmail, "@") {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < minPasswordLen {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user := &models.User{
		Email:        reqEmail,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		Timezone:     h.defaultTimezone,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			writeError(w, http.StatusConflict, "an account with that email already exists")
			return
		}
		log.Printf("Error creating user: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := h.sessions.Create(user.ID.Hex())
	if err != nil {
		log.Printf("Error creating session: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Welcome email is best-effort; registration never fails on it.
	if h.mail != nil {
		go func(to, name string) {
			if err := h.mail.SendWelcome(to, name); err != nil {
				log.Printf("Error sending welcome email: %v", err)
			}
		}(user.Email, user.Name)
	}

	writeJSON(w, http.StatusCreated, AuthResponse{Token: token, User: user})
}

// --- POST /auth/login ---

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.ByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		log.Printf("Error finding user: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.sessions.Create(user.ID.Hex())
	if err != nil {
		log.Printf("Error creating session: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
}

// --- POST /auth/logout ---

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Revoke(middleware.BearerToken(r))
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
