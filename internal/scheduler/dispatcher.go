package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"habitloop-backend/internal/models"
	"habitloop-backend/internal/notify"
	"habitloop-backend/internal/storage"
)

// Dispatcher is the reminder engine: a level-triggered poller that compares
// each user's configured HH:MM strings against the formatted current time
// once per tick. It keeps no state between ticks; a reminder fires exactly
// once per configured minute only because the tick interval equals the
// one-minute match granularity.
type Dispatcher struct {
	Users       storage.UserStore
	Reminders   storage.ReminderStore
	Routines    storage.RoutineStore
	Habits      storage.HabitStore
	Notifier    notify.Notifier
	Clock       Clock
	DefaultZone *time.Location
	SendTimeout time.Duration
}

// Start schedules Tick on the given interval and returns the cron runner.
// cron.Stop's context completes only after an in-flight tick returns, which
// is how main waits out a scan during shutdown.
func (d *Dispatcher) Start(interval time.Duration) *cron.Cron {
	c := cron.New()
	_, _ = c.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		d.Tick(context.Background())
	})
	c.Start()
	return c
}

// Tick runs one scan over every user with a linked chat identity. A failure
// for one recipient is logged and never aborts the rest of the scan.
func (d *Dispatcher) Tick(ctx context.Context) {
	users, err := d.Users.WithChat(ctx)
	if err != nil {
		log.Printf("reminder tick: listing users: %v", err)
		return
	}

	now := d.Clock.Now()
	for _, user := range users {
		if err := d.dispatchUser(ctx, user, now); err != nil {
			log.Printf("reminder tick: user %s: %v", user.ID.Hex(), err)
		}
	}
}

func (d *Dispatcher) dispatchUser(ctx context.Context, user models.User, now time.Time) error {
	local := now.In(d.userZone(user))
	hhmm := local.Format("15:04")
	date := local.Format("2006-01-02")

	reminders, err := d.Reminders.Active(ctx, user.ID)
	if err != nil {
		return err
	}

	for _, rem := range reminders {
		if rem.Time != hhmm {
			continue
		}
		text, err := d.render(ctx, user, rem.Kind, date)
		if err != nil {
			log.Printf("reminder %s for %s: render: %v", rem.Kind, user.ID.Hex(), err)
			continue
		}
		if err := d.send(ctx, *user.TelegramChatID, text); err != nil {
			log.Printf("reminder %s for %s: send: %v", rem.Kind, user.ID.Hex(), err)
			continue
		}
		log.Printf("reminder %s sent to %s", rem.Kind, user.ID.Hex())
	}
	return nil
}

// send bounds each delivery so one hung recipient cannot stall the tick.
func (d *Dispatcher) send(ctx context.Context, chatID int64, text string) error {
	timeout := d.SendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	sctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return d.Notifier.Send(sctx, chatID, text)
}

func (d *Dispatcher) render(ctx context.Context, user models.User, kind, date string) (string, error) {
	switch kind {
	case models.ReminderMorning:
		steps, err := d.Routines.Steps(ctx, user.ID, models.RoutineMorning)
		if err != nil {
			return "", err
		}
		return RoutineMessage(models.RoutineMorning, steps), nil
	case models.ReminderEvening:
		steps, err := d.Routines.Steps(ctx, user.ID, models.RoutineEvening)
		if err != nil {
			return "", err
		}
		return RoutineMessage(models.RoutineEvening, steps), nil
	case models.ReminderSummary:
		habits, err := d.Habits.ForDate(ctx, user.ID, date)
		if err != nil {
			return "", err
		}
		return SummaryMessage(date, habits), nil
	default:
		return MiddayMessage(), nil
	}
}

// userZone resolves the user's IANA zone, falling back to the configured
// default when unset or invalid.
func (d *Dispatcher) userZone(user models.User) *time.Location {
	if user.Timezone != "" {
		if loc, err := time.LoadLocation(user.Timezone); err == nil {
			return loc
		}
	}
	if d.DefaultZone != nil {
		return d.DefaultZone
	}
	return time.UTC
}
