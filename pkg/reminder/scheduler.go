package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/adhocore/gronx"

	"github.com/dumalabs/duma/pkg/logger"
)

// DeliverFunc pushes one notification to its recipient. Errors are
// logged and the notification is discarded; there is no retry.
type DeliverFunc func(r Reminder) error

// Announcement is a recurring broadcast on a cron schedule, evaluated on
// every scheduler tick.
type Announcement struct {
	Cron    string
	Channel string
	ChatID  string
	Text    string
}

// Scheduler polls the store at a fixed cadence and dispatches due
// reminders through the delivery capability. A tick never aborts the
// loop: per-item delivery failures are isolated, and any panic in the
// polling logic is recovered at the tick boundary.
type Scheduler struct {
	store         *Store
	deliver       DeliverFunc
	interval      time.Duration
	announcements []Announcement
	nextFire      []time.Time
}

func NewScheduler(store *Store, interval time.Duration, deliver DeliverFunc) *Scheduler {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Scheduler{
		store:    store,
		deliver:  deliver,
		interval: interval,
	}
}

// AddAnnouncement registers a recurring broadcast. The cron expression
// must be valid; call before Run.
func (s *Scheduler) AddAnnouncement(a Announcement) error {
	if !gronx.IsValid(a.Cron) {
		return fmt.Errorf("invalid cron expression %q", a.Cron)
	}
	next, err := gronx.NextTickAfter(a.Cron, time.Now(), false)
	if err != nil {
		return fmt.Errorf("computing next tick for %q: %w", a.Cron, err)
	}
	s.announcements = append(s.announcements, a)
	s.nextFire = append(s.nextFire, next)
	return nil
}

// Run executes the polling loop until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	logger.InfoCF("scheduler", "Reminder scheduler started", map[string]any{
		"interval":      s.interval.String(),
		"announcements": len(s.announcements),
	})

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.InfoC("scheduler", "Reminder scheduler stopped")
			return
		case now := <-ticker.C:
			s.tick(now)
		}
	}
}

func (s *Scheduler) tick(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorCF("scheduler", "Recovered from tick panic", map[string]any{"panic": r})
		}
	}()

	for _, r := range s.store.DrainDue(now) {
		s.deliverOne(r)
	}

	s.fireAnnouncements(now)
}

// deliverOne isolates a single delivery so one bad item cannot take the
// rest of the tick down with it.
func (s *Scheduler) deliverOne(r Reminder) {
	defer func() {
		if p := recover(); p != nil {
			logger.ErrorCF("scheduler", "Recovered from delivery panic", map[string]any{
				"reminder": r.ID,
				"panic":    p,
			})
		}
	}()

	if err := s.deliver(r); err != nil {
		// No requeue: a failed delivery discards the reminder.
		logger.ErrorCF("scheduler", "Reminder delivery failed", map[string]any{
			"reminder": r.ID,
			"owner":    r.Owner,
			"error":    err.Error(),
		})
		return
	}

	logger.InfoCF("scheduler", "Reminder delivered", map[string]any{
		"reminder": r.ID,
		"owner":    r.Owner,
	})
}

func (s *Scheduler) fireAnnouncements(now time.Time) {
	for i, a := range s.announcements {
		if now.Before(s.nextFire[i]) {
			continue
		}

		s.deliverOne(Reminder{
			ID:      fmt.Sprintf("announcement-%d", i),
			Owner:   "class",
			Channel: a.Channel,
			ChatID:  a.ChatID,
			Text:    a.Text,
			DueAt:   s.nextFire[i],
		})

		next, err := gronx.NextTickAfter(a.Cron, now, false)
		if err != nil {
			logger.ErrorCF("scheduler", "Cron evaluation failed", map[string]any{
				"cron":  a.Cron,
				"error": err.Error(),
			})
			continue
		}
		s.nextFire[i] = next
	}
}
