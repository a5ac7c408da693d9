package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"habitloop-backend/internal/models"
	"habitloop-backend/internal/scheduler"
	"habitloop-backend/internal/storage"
	"habitloop-backend/internal/telegram"
)

// ChatBot is the slice of the Telegram client the webhook needs.
type ChatBot interface {
	Send(ctx context.Context, chatID int64, text string) error
	SendKeyboard(ctx context.Context, chatID int64, text string, buttons [][]telegram.InlineButton) error
	EditKeyboard(ctx context.Context, chatID int64, messageID int64, text string, buttons [][]telegram.InlineButton) error
	AnswerCallback(ctx context.Context, callbackID string) error
}

type TelegramHandler struct {
	users       storage.UserStore
	habits      storage.HabitStore
	routines    storage.RoutineStore
	linkCodes   storage.LinkCodeStore
	bot         ChatBot
	botUsername string
	defaultZone *time.Location
}

func NewTelegramHandler(users storage.UserStore, habits storage.HabitStore, routines storage.RoutineStore, linkCodes storage.LinkCodeStore, bot ChatBot, botUsername string, defaultZone *time.Location) *TelegramHandler {
	return &TelegramHandler{
		users:       users,
		habits:      habits,
		routines:    routines,
		linkCodes:   linkCodes,
		bot:         bot,
		botUsername: botUsername,
		defaultZone: defaultZone,
	}
}

const habitsPrompt = "📋 *TODAY'S HABITS*\n\nTap to check off / uncheck:"

// --- POST /api/telegram/link ---

// CreateLink issues a one-time code the user sends to the bot via /start.
func (h *TelegramHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	code := &models.LinkCode{
		UserID:    userID,
		Code:      uuid.New().String(),
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	if err := h.linkCodes.Create(r.Context(), code); err != nil {
		log.Printf("Error creating link code: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"code":     code.Code,
		"deeplink": fmt.Sprintf("https://t.me/%s?start=%s", h.botUsername, code.Code),
	})
}

// --- POST /telegram/webhook ---

// Webhook handles bot updates. It always answers 200: Telegram retries
// non-2xx responses and a poison update would loop forever.
func (h *TelegramHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(r.Context(), update.CallbackQuery)
	case update.Message != nil:
		h.handleMessage(r.Context(), update.Message)
	}
	w.WriteHeader(http.StatusOK)
}

func (h *TelegramHandler) handleMessage(ctx context.Context, msg *telegram.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch {
	case strings.HasPrefix(text, "/start"):
		h.handleStart(ctx, chatID, strings.TrimSpace(strings.TrimPrefix(text, "/start")))
	case text == "/habits":
		h.sendHabits(ctx, chatID)
	case text == "/summary":
		h.sendSummary(ctx, chatID)
	case text == "/morning":
		h.sendRoutine(ctx, chatID, models.RoutineMorning)
	case text == "/evening":
		h.sendRoutine(ctx, chatID, models.RoutineEvening)
	default:
		h.reply(ctx, chatID, "Commands:\n"+
			"✅ /habits — check off today's habits\n"+
			"📊 /summary — today's progress\n"+
			"🌅 /morning — morning routine\n"+
			"🌙 /evening — evening routine")
	}
}

// handleStart links an account when a one-time code is attached, otherwise
// greets the user.
func (h *TelegramHandler) handleStart(ctx context.Context, chatID int64, code string) {
	if code != "" {
		lc, err := h.linkCodes.Consume(ctx, code)
		if err != nil {
			h.reply(ctx, chatID, "That link code is not valid or was already used. Generate a new one from the app.")
			return
		}
		if err := h.users.LinkChat(ctx, lc.UserID, chatID); err != nil {
			log.Printf("webhook: linking chat %d: %v", chatID, err)
			h.reply(ctx, chatID, "Something went wrong linking your account. Try again in a moment.")
			return
		}
		h.reply(ctx, chatID, "Linked ✅ Your reminders are now active.\n\nSend /habits to get started.")
		return
	}

	user, err := h.users.ByChatID(ctx, chatID)
	if err != nil {
		h.reply(ctx, chatID, "Hi! 👋 This bot pairs with your HabitLoop account.\n\nOpen the app, go to settings and tap \"Link Telegram\" to connect.")
		return
	}

	name := user.Name
	if name == "" {
		name = "there"
	}
	h.reply(ctx, chatID, fmt.Sprintf("Hi %s! 👋\n\nHere's what I can do:\n\n"+
		"🌅 /morning — morning routine\n"+
		"🌙 /evening — evening routine\n"+
		"✅ /habits — check off today's habits\n"+
		"📊 /summary — today's progress\n\n"+
		"I'll also send reminders at the times you configured. Let's go! 🚀", name))
}

func (h *TelegramHandler) sendHabits(ctx context.Context, chatID int64) {
	_, habits, ok := h.todaysHabits(ctx, chatID)
	if !ok {
		return
	}
	if len(habits) == 0 {
		h.reply(ctx, chatID, "No habits configured yet — set them up from the web app.")
		return
	}
	if err := h.bot.SendKeyboard(ctx, chatID, habitsPrompt, habitKeyboard(habits)); err != nil {
		log.Printf("webhook: sending habit keyboard to %d: %v", chatID, err)
	}
}

func (h *TelegramHandler) sendSummary(ctx context.Context, chatID int64) {
	user, habits, ok := h.todaysHabits(ctx, chatID)
	if !ok {
		return
	}
	h.reply(ctx, chatID, scheduler.SummaryMessage(h.today(user), habits))
}

func (h *TelegramHandler) sendRoutine(ctx context.Context, chatID int64, kind string) {
	user, err := h.users.ByChatID(ctx, chatID)
	if err != nil {
		h.replyUnlinked(ctx, chatID)
		return
	}
	steps, err := h.routines.Steps(ctx, user.ID, kind)
	if err != nil {
		log.Printf("webhook: routine %s for chat %d: %v", kind, chatID, err)
		return
	}
	h.reply(ctx, chatID, scheduler.RoutineMessage(kind, steps))
}

// handleCallback processes habit toggle button taps and re-renders the
// keyboard in place.
func (h *TelegramHandler) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) {
	// Always acknowledge first so the client drops its loading spinner.
	if err := h.bot.AnswerCallback(ctx, cb.ID); err != nil {
		log.Printf("webhook: answering callback %s: %v", cb.ID, err)
	}
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	habitHex, ok := parseToggleCallback(cb.Data)
	if !ok {
		return
	}
	habitID, err := bson.ObjectIDFromHex(habitHex)
	if err != nil {
		return
	}

	user, err := h.users.ByChatID(ctx, chatID)
	if err != nil {
		h.replyUnlinked(ctx, chatID)
		return
	}

	date := h.today(user)
	if _, err := h.habits.Toggle(ctx, user.ID, habitID, date); err != nil {
		log.Printf("webhook: toggle %s for chat %d: %v", habitHex, chatID, err)
		return
	}

	habits, err := h.habits.ForDate(ctx, user.ID, date)
	if err != nil {
		log.Printf("webhook: refreshing habits for chat %d: %v", chatID, err)
		return
	}
	if err := h.bot.EditKeyboard(ctx, chatID, cb.Message.MessageID, habitsPrompt, habitKeyboard(habits)); err != nil {
		log.Printf("webhook: editing keyboard for chat %d: %v", chatID, err)
	}
}

func (h *TelegramHandler) todaysHabits(ctx context.Context, chatID int64) (*models.User, []models.HabitStatus, bool) {
	user, err := h.users.ByChatID(ctx, chatID)
	if err != nil {
		h.replyUnlinked(ctx, chatID)
		return nil, nil, false
	}
	habits, err := h.habits.ForDate(ctx, user.ID, h.today(user))
	if err != nil {
		log.Printf("webhook: habits for chat %d: %v", chatID, err)
		return nil, nil, false
	}
	return user, habits, true
}

func (h *TelegramHandler) today(user *models.User) string {
	loc := h.defaultZone
	if user.Timezone != "" {
		if userLoc, err := time.LoadLocation(user.Timezone); err == nil {
			loc = userLoc
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc).Format(dateLayout)
}

func (h *TelegramHandler) reply(ctx context.Context, chatID int64, text string) {
	if err := h.bot.Send(ctx, chatID, text); err != nil {
		log.Printf("webhook: replying to %d: %v", chatID, err)
	}
}

func (h *TelegramHandler) replyUnlinked(ctx context.Context, chatID int64) {
	h.reply(ctx, chatID, "Your chat isn't linked to an account yet. Open the app and tap \"Link Telegram\".")
}

// habitKeyboard builds one button row per habit, callback "habit_<id>_toggle".
func habitKeyboard(habits []models.HabitStatus) [][]telegram.InlineButton {
	keyboard := make([][]telegram.InlineButton, 0, len(habits))
	for _, habit := range habits {
		icon := "❌"
		if habit.Completed {
			icon = "✅"
		}
		keyboard = append(keyboard, []telegram.InlineButton{{
			Text:         fmt.Sprintf("%s %s %s", icon, habit.Emoji, habit.Name),
			CallbackData: fmt.Sprintf("habit_%s_toggle", habit.ID.Hex()),
		}})
	}
	return keyboard
}

func parseToggleCallback(data string) (string, bool) {
	if !strings.HasPrefix(data, "habit_") || !strings.HasSuffix(data, "_toggle") {
		return "", false
	}
	return strings.TrimSuffix(strings.TrimPrefix(data, "habit_"), "_toggle"), true
}
