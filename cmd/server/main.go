package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"habitloop-backend/internal/config"
	"habitloop-backend/internal/database"
	"habitloop-backend/internal/email"
	"habitloop-backend/internal/handlers"
	customMiddleware "habitloop-backend/internal/middleware"
	"habitloop-backend/internal/notify"
	"habitloop-backend/internal/repository"
	"habitloop-backend/internal/scheduler"
	"habitloop-backend/internal/session"
	"habitloop-backend/internal/telegram"
)

func main() {
	cfg := config.Load()

	// Connect to MongoDB
	db, err := database.Connect(cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepo(db)
	habitRepo := repository.NewHabitRepo(db)
	routineRepo := repository.NewRoutineRepo(db)
	reminderRepo := repository.NewReminderRepo(db)
	linkCodeRepo := repository.NewLinkCodeRepo(db)

	// Ensure indexes
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("⚠️  Warning: failed to create user indexes: %v", err)
	}
	if err := habitRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("⚠️  Warning: failed to create habit indexes: %v", err)
	}
	if err := routineRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("⚠️  Warning: failed to create routine indexes: %v", err)
	}
	if err := reminderRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("⚠️  Warning: failed to create reminder indexes: %v", err)
	}
	if err := linkCodeRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("⚠️  Warning: failed to create link code indexes: %v", err)
	}
	cancel()

	// Default dispatch zone
	defaultZone, err := time.LoadLocation(cfg.DefaultTimezone)
	if err != nil {
		log.Printf("⚠️  Unknown DEFAULT_TIMEZONE %q, using UTC", cfg.DefaultTimezone)
		defaultZone = time.UTC
	}

	// Sessions live in process memory and are lost on restart.
	sessions := session.NewMemoryStore()

	// Bot client, or a logging mock when no token is configured
	bot := telegramOrMock(cfg.TelegramToken)

	// Reminder dispatch engine
	dispatcher := &scheduler.Dispatcher{
		Users:       userRepo,
		Reminders:   reminderRepo,
		Routines:    routineRepo,
		Habits:      habitRepo,
		Notifier:    bot.notifier,
		Clock:       scheduler.SystemClock{},
		DefaultZone: defaultZone,
		SendTimeout: 10 * time.Second,
	}
	if cfg.TickInterval != time.Minute {
		log.Printf("⚠️  TICK_INTERVAL is %s; once-per-reminder delivery is only guaranteed at 1m", cfg.TickInterval)
	}
	cronRunner := dispatcher.Start(cfg.TickInterval)
	log.Printf("✅ Reminder dispatcher started (tick %s)", cfg.TickInterval)

	// Initialize handlers
	mailer := email.NewSender(cfg.ResendAPIKey, cfg.FromEmail)
	authHandler := handlers.NewAuthHandler(userRepo, sessions, mailer, cfg.DefaultTimezone)
	userHandler := handlers.NewUserHandler(userRepo)
	habitsHandler := handlers.NewHabitsHandler(habitRepo)
	configHandler := handlers.NewConfigHandler(habitRepo, routineRepo, reminderRepo)
	telegramHandler := handlers.NewTelegramHandler(userRepo, habitRepo, routineRepo, linkCodeRepo, bot.chat, cfg.BotUsername, defaultZone)

	// Setup chi router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"habitloop-backend"}`))
	})

	// Public routes
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)
	r.Post("/telegram/webhook", telegramHandler.Webhook)

	// Protected routes (session token required)
	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.SessionAuth(sessions))

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

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("🚀 HabitLoop backend starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	<-shutdownCh
	log.Println("🛑 Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	// Let an in-flight reminder tick finish before exiting.
	<-cronRunner.Stop().Done()
	log.Println("👋 Shutdown complete.")
}

// botPair carries the same client under both of the interfaces consumers use.
type botPair struct {
	notifier notify.Notifier
	chat     handlers.ChatBot
}

func telegramOrMock(token string) botPair {
	if token == "" {
		log.Println("⚠️  TELEGRAM_BOT_TOKEN not set, using mock notifier")
		mock := notify.NewMock()
		return botPair{notifier: mock, chat: mock}
	}
	b := telegram.NewBot(token)
	return botPair{notifier: b, chat: b}
}
