package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"runway/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOccurrence(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		minute int
		want   time.Time
	}{
		{"later today", 555, time.Date(2026, 10, 19, 9, 15, 0, 0, time.UTC)},
		{"right now", 540, now},
		{"already passed", 480, time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC)},
		{"last minute of day", 1439, time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextOccurrence(now, tt.minute))
		})
	}
}

func TestNewLandingReminderTask(t *testing.T) {
	payload := models.LandingReminderPayload{EventID: "ev-1", Minute: 555, Time: "9:15"}
	task, opts, err := NewLandingReminderTask(payload, time.Now())
	require.NoError(t, err)

	assert.Equal(t, TypeLandingReminder, task.Type())
	assert.Len(t, opts, 3)

	var got models.LandingReminderPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &got))
	assert.Equal(t, payload, got)
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
	// errs, when set, is consumed one error per call before err applies.
	errs []error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return &asynq.TaskInfo{}, nil
}

type fakeDeleter struct {
	ids []string
	err error
}

func (f *fakeDeleter) DeleteTask(queue, id string) error {
	f.ids = append(f.ids, queue+"/"+id)
	return f.err
}

func newTestScheduler() (*AsynqReminderScheduler, *fakeEnqueuer, *fakeDeleter) {
	enq, del := &fakeEnqueuer{}, &fakeDeleter{}
	s := &AsynqReminderScheduler{
		client:    enq,
		inspector: del,
		now:       func() time.Time { return time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC) },
	}
	return s, enq, del
}

func TestSchedulerScheduleAndCancel(t *testing.T) {
	s, enq, del := newTestScheduler()
	ctx := context.Background()

	ev := models.RunwayEvent{ID: "ev-1", Type: models.EventRequestAccepted, Minute: 540, Time: "9:00"}
	require.NoError(t, s.ScheduleLanding(ctx, ev))
	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TypeLandingReminder, enq.tasks[0].Type())

	require.NoError(t, s.CancelLanding(ctx, 540))
	assert.Equal(t, []string{"default/landing-540"}, del.ids)
}

func TestSchedulerErrors(t *testing.T) {
	s, enq, del := newTestScheduler()
	ctx := context.Background()

	enq.err = errors.New("redis down")
	assert.ErrorIs(t, s.ScheduleLanding(ctx, models.RunwayEvent{Minute: 1, Time: "0:01"}), enq.err)

	del.err = asynq.ErrTaskNotFound
	assert.NoError(t, s.CancelLanding(ctx, 1))
	del.err = asynq.ErrQueueNotFound
	assert.NoError(t, s.CancelLanding(ctx, 1))

	boom := errors.New("inspector down")
	del.err = boom
	assert.ErrorIs(t, s.CancelLanding(ctx, 1), boom)
}

func TestSchedulerReplacesLeftoverReminder(t *testing.T) {
	s, enq, del := newTestScheduler()
	ctx := context.Background()
	ev := models.RunwayEvent{ID: "ev-2", Minute: 600, Time: "10:00"}

	enq.errs = []error{asynq.ErrTaskIDConflict}
	require.NoError(t, s.ScheduleLanding(ctx, ev))
	assert.Len(t, enq.tasks, 2)
	assert.Equal(t, []string{"default/landing-600"}, del.ids)

	// A leftover that cannot be removed surfaces as an error.
	enq.errs = []error{asynq.ErrTaskIDConflict}
	del.err = errors.New("task is active")
	assert.ErrorIs(t, s.ScheduleLanding(ctx, ev), del.err)
}
