// Package cron runs the background trip-reminder worker: an asynq
// consumer that fires a reminder email the morning before each trip.
package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"scoutai/config"
	ledgerRepo "scoutai/database/repository/ledger"
	"scoutai/models"
	"scoutai/services/notification"
	"scoutai/utils"
)

const TypeReminderSend = "reminder:send"

// reminderHour is the local hour at which reminder emails fire.
const reminderHour = 9

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}
}

// ReminderScheduler enqueues reminder tasks. It satisfies the
// conversation service's scheduler contract.
type ReminderScheduler struct {
	client *asynq.Client
}

func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{client: asynq.NewClient(redisOpts())}
}

// ScheduleReminder enqueues a reminder for the day before the trip at
// 09:00 local time. Trips starting within a day get no reminder.
func (s *ReminderScheduler) ScheduleReminder(bookingID int64, startDate string) error {
	start, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	fireAt := start.AddDate(0, 0, -1).Add(reminderHour * time.Hour)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		BookingID: bookingID,
		FireDate:  fireAt.Format(time.RFC3339),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeReminderSend, b)
	_, err = s.client.Enqueue(task, asynq.ProcessAt(fireAt))
	return err
}

func (s *ReminderScheduler) Close() error {
	return s.client.Close()
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(ledger ledgerRepo.LedgerRepository, notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(ledger, notifSvc))

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("reminder worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("reminder worker exhausted retries")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

// handleReminderTask re-reads the booking at fire time so reminders for
// bookings cancelled in the meantime are silently dropped.
func handleReminderTask(ledger ledgerRepo.LedgerRepository, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		vb, err := ledger.GetByID(ctx, p.BookingID)
		if err != nil {
			logger.Warn("reminder target booking not found, dropping",
				zap.Int64("bookingID", p.BookingID), zap.Error(err))
			return nil
		}
		if vb.Status == models.StatusCancelled {
			logger.Debug("skipping reminder for cancelled booking", zap.Int64("bookingID", p.BookingID))
			return nil
		}

		if !notifSvc.SendReminderEmail(vb.Email, vb.Name, vb.Booking) {
			return fmt.Errorf("reminder email for booking #%d failed", p.BookingID)
		}
		logger.Info("trip reminder sent", zap.Int64("bookingID", p.BookingID))
		return nil
	}
}
