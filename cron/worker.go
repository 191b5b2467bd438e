package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"travelorbit/config"
	"travelorbit/models"
	"travelorbit/services/engine"
	"travelorbit/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitNudgeWorker runs the async worker in background.
func InitNudgeWorker(eng *engine.Engine) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeFeedbackNudge, handleNudgeTask(eng))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[NudgeWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NudgeWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NudgeWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleNudgeTask(eng *engine.Engine) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.FeedbackNudgePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[NudgeHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		log.Printf("[NudgeHandler] ⏰ Nudging session %s for trip %s feedback", p.SessionID, p.TripID)

		if err := eng.NudgeFeedback(ctx, p.SessionID, p.TripID); err != nil {
			log.Printf("[NudgeHandler] ❌ Failed to deliver nudge: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[NudgeWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
