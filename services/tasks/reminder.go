package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"runway/models"

	"github.com/hibiken/asynq"
)

const (
	TypeLandingReminder = "landing:reminder"
	ReminderQueue       = "default"
)

// NewLandingReminderTask builds the task that announces a landing at fireAt.
func NewLandingReminderTask(payload models.LandingReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeLandingReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(reminderTaskID(payload.Minute)),
		asynq.Queue(ReminderQueue),
	}

	return task, opts, nil
}

func reminderTaskID(minute int) string {
	return fmt.Sprintf("landing-%d", minute)
}

// NextOccurrence returns the next wall-clock instant at minute past midnight,
// today if it has not passed yet, otherwise tomorrow.
func NextOccurrence(now time.Time, minute int) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	at := midnight.Add(time.Duration(minute) * time.Minute)
	if at.Before(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

// enqueuer is the slice of *asynq.Client the scheduler needs.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// deleter is the slice of *asynq.Inspector the scheduler needs.
type deleter interface {
	DeleteTask(queue, id string) error
}

// AsynqReminderScheduler schedules landing reminders on an asynq queue.
type AsynqReminderScheduler struct {
	client    enqueuer
	inspector deleter
	now       func() time.Time
}

func NewAsynqReminderScheduler(client *asynq.Client, inspector *asynq.Inspector) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{
		client:    client,
		inspector: inspector,
		now:       time.Now,
	}
}

// ScheduleLanding enqueues a reminder for the reservation carried by event.
func (s *AsynqReminderScheduler) ScheduleLanding(ctx context.Context, event models.RunwayEvent) error {
	payload := models.LandingReminderPayload{
		EventID: event.ID,
		Minute:  event.Minute,
		Time:    event.Time,
	}
	task, opts, err := NewLandingReminderTask(payload, NextOccurrence(s.now(), event.Minute))
	if err != nil {
		return fmt.Errorf("build landing reminder: %w", err)
	}
	_, err = s.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		// A reminder left over from an earlier reservation of this minute
		// (retrying or never cancelled) still holds the ID.
		if derr := s.inspector.DeleteTask(ReminderQueue, reminderTaskID(event.Minute)); derr != nil {
			return fmt.Errorf("replace landing reminder for %s: %w", event.Time, derr)
		}
		_, err = s.client.EnqueueContext(ctx, task, opts...)
	}
	if err != nil {
		return fmt.Errorf("enqueue landing reminder for %s: %w", event.Time, err)
	}
	return nil
}

// CancelLanding drops a pending reminder. A reminder that already fired or
// never existed is not an error.
func (s *AsynqReminderScheduler) CancelLanding(_ context.Context, minute int) error {
	err := s.inspector.DeleteTask(ReminderQueue, reminderTaskID(minute))
	if err == nil || errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	return fmt.Errorf("cancel landing reminder %d: %w", minute, err)
}
