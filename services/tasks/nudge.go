package tasks

import (
	"encoding/json"
	"time"

	"travelorbit/models"

	"github.com/hibiken/asynq"
)

const TypeFeedbackNudge = "feedback:nudge"

func NewFeedbackNudgeTask(payload models.FeedbackNudgePayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeFeedbackNudge, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// Scheduler enqueues delayed feedback nudges. It satisfies the engine's
// FeedbackNudger interface.
type Scheduler struct {
	client *asynq.Client
}

func NewScheduler(redisOpts asynq.RedisClientOpt) *Scheduler {
	return &Scheduler{client: asynq.NewClient(redisOpts)}
}

func (s *Scheduler) ScheduleNudge(sessionID, tripID string, delay time.Duration) error {
	task, opts, err := NewFeedbackNudgeTask(models.FeedbackNudgePayload{
		SessionID: sessionID,
		TripID:    tripID,
	}, time.Now().Add(delay))
	if err != nil {
		return err
	}
	_, err = s.client.Enqueue(task, opts...)
	return err
}

func (s *Scheduler) Close() error {
	return s.client.Close()
}
