// FILE: connect4/internal/server/service/reminder.go
package service

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Mailer delivers a reminder to one recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

// StartScheduler runs the background jobs: lock pruning, and open-game
// email reminders when a mailer is configured. The caller owns the returned
// scheduler and shuts it down on exit.
func (s *Service) StartScheduler(mailer Mailer, reminderInterval time.Duration) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(s.PruneLocks),
	)
	if err != nil {
		scheduler.Shutdown()
		return nil, fmt.Errorf("failed to schedule lock pruning: %w", err)
	}

	if mailer != nil {
		_, err = scheduler.NewJob(
			gocron.DurationJob(reminderInterval),
			gocron.NewTask(s.SendReminders, mailer),
		)
		if err != nil {
			scheduler.Shutdown()
			return nil, fmt.Errorf("failed to schedule reminders: %w", err)
		}
	}

	scheduler.Start()
	return scheduler, nil
}

// SendReminders emails every player that has a contact address and at least
// one open game. Delivery failures are logged and skipped so one bad
// address cannot stall the batch.
func (s *Service) SendReminders(mailer Mailer) {
	users, err := s.store.ListUsersWithEmail()
	if err != nil {
		log.Printf("Reminder job: failed to list users: %v", err)
		return
	}

	sent := 0
	for _, user := range users {
		count, err := s.store.CountActiveGamesByUser(user.UserID)
		if err != nil {
			log.Printf("Reminder job: failed to count games for %s: %v", user.Username, err)
			continue
		}
		if count == 0 {
			continue
		}

		body := fmt.Sprintf(
			"Hello %s,\r\n\r\nYou have %d unfinished Connect4 game(s) waiting for your next move.\r\n",
			user.Username, count)
		if err := mailer.Send(user.Email, "You have open Connect4 games!", body); err != nil {
			log.Printf("Reminder job: failed to mail %s: %v", user.Username, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		log.Printf("Reminder job: sent %d reminders", sent)
	}
}
