package cron

import (
	"context"
	"encoding/json"
	"time"

	"runway/config"
	"runway/models"
	"runway/services/events"
	"runway/services/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt is the asynq connection for the reminder queue.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the landing reminder worker in the background.
// The caller owns the returned server and must Shutdown it.
func InitReminderWorker(pub events.Publisher, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				tasks.ReminderQueue: 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeLandingReminder, handleLandingReminder(pub, logger))

	go func() {
		logger.Info("[ReminderWorker] starting landing reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("[ReminderWorker] failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("[ReminderWorker] max retry attempts reached; reminders disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

func handleLandingReminder(pub events.Publisher, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.LandingReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("[ReminderHandler] invalid payload", zap.Error(err))
			return asynq.SkipRetry
		}

		logger.Info("[ReminderHandler] landing slot reached",
			zap.Int("minute", p.Minute), zap.String("time", p.Time), zap.String("eventId", p.EventID))

		ev := models.RunwayEvent{
			ID:     uuid.New().String(),
			Type:   models.EventApproach,
			Minute: p.Minute,
			Time:   p.Time,
			At:     time.Now().UTC(),
		}
		if err := pub.Publish(ctx, ev); err != nil {
			logger.Warn("[ReminderHandler] failed to publish approach event", zap.Error(err))
			return err
		}
		return nil
	}
}
