// Package tasks enqueues deferred work onto the Redis-backed task queue.
package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"stayhub/config"
	"stayhub/models"

	"github.com/hibiken/asynq"
)

// TypeCheckInReminder is the task type for pre-arrival guest reminders.
const TypeCheckInReminder = "booking:checkin_reminder"

// CheckInReminderPayload is the serialized task body.
type CheckInReminderPayload struct {
	BookingID string    `json:"bookingId"`
	GuestID   string    `json:"guestId"`
	ListingID string    `json:"listingId"`
	CheckIn   time.Time `json:"checkIn"`
}

// ReminderClient schedules check-in reminders for confirmed bookings.
type ReminderClient struct {
	client *asynq.Client
}

// NewReminderClient connects a task producer to the reminder queue.
func NewReminderClient() *ReminderClient {
	return &ReminderClient{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		}),
	}
}

// ScheduleCheckInReminder enqueues a reminder to fire one day before
// check-in. A booking confirmed inside that window fires immediately.
func (c *ReminderClient) ScheduleCheckInReminder(b *models.Booking) error {
	payload, err := json.Marshal(CheckInReminderPayload{
		BookingID: b.ID,
		GuestID:   b.GuestID,
		ListingID: b.ListingID,
		CheckIn:   b.Dates.CheckIn,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	fireAt := b.Dates.CheckIn.AddDate(0, 0, -1)
	opts := []asynq.Option{asynq.MaxRetry(3), asynq.Queue("default")}
	if fireAt.After(time.Now()) {
		opts = append(opts, asynq.ProcessAt(fireAt))
	}

	task := asynq.NewTask(TypeCheckInReminder, payload)
	if _, err := c.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue check-in reminder: %w", err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (c *ReminderClient) Close() error {
	return c.client.Close()
}
