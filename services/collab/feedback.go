package collab

import (
	"context"

	"go.uber.org/zap"
)

// DefaultFeedbackService records trip ratings with the trip-plan backend.
type DefaultFeedbackService struct {
	api *apiClient
}

func NewFeedbackService(baseURL string, logger *zap.Logger) *DefaultFeedbackService {
	return &DefaultFeedbackService{api: newAPIClient(baseURL, logger)}
}

func (s *DefaultFeedbackService) Submit(ctx context.Context, tripID string, rating int, comments string) error {
	body := map[string]interface{}{
		"rating":   rating,
		"comments": comments,
	}
	return s.api.doJSON(ctx, "POST", "/trip-plan/"+tripID+"/feedback", body, nil)
}

// LocalFeedbackService records ratings to the log when no remote trip-plan
// backend is configured.
type LocalFeedbackService struct {
	logger *zap.Logger
}

func NewLocalFeedbackService(logger *zap.Logger) *LocalFeedbackService {
	return &LocalFeedbackService{logger: logger}
}

func (s *LocalFeedbackService) Submit(ctx context.Context, tripID string, rating int, comments string) error {
	s.logger.Info("trip feedback received",
		zap.String("tripId", tripID),
		zap.Int("rating", rating),
		zap.String("comments", comments))
	return nil
}
