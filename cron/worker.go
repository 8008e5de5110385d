package cron

import (
	"context"
	"encoding/json"
	"time"

	"palco/config"
	"palco/services/approval"
	"palco/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitBlockWorker runs the derived-block async worker in the background.
// Blocks that could not be created synchronously during approval are
// retried here until the upstream accepts them.
func InitBlockWorker(bridge *approval.Bridge) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(approval.TypeDerivedBlock, handleDerivedBlockTask(bridge))

	go func() {
		logger := utils.GetLogger()
		logger.Info("Starting derived-block worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("Derived-block worker failed to start",
					zap.Int("attempt", attempts),
					zap.Int("maxAttempts", maxAttempts),
					zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("Derived-block worker: max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleDerivedBlockTask(bridge *approval.Bridge) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p approval.DerivedBlockPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Derived-block task has invalid payload", zap.Error(err))
			return err
		}

		if err := bridge.CreateDerivedBlock(ctx, p); err != nil {
			logger.Warn("Failed to create derived block",
				zap.String("sourceEventId", p.SourceEventID),
				zap.String("date", p.Date),
				zap.Int("hour", p.Hour),
				zap.Error(err))
			return err
		}
		return nil
	}
}

// NewQueueClient constructs the asynq client the approval bridge enqueues
// derived blocks through.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
}
