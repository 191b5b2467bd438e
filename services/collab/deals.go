package collab

import (
	"context"

	"travelorbit/models"

	"go.uber.org/zap"
)

// DefaultDealsService talks to the deals catalog over HTTP.
type DefaultDealsService struct {
	api *apiClient
}

func NewDealsService(baseURL string, logger *zap.Logger) *DefaultDealsService {
	return &DefaultDealsService{api: newAPIClient(baseURL, logger)}
}

func (s *DefaultDealsService) ListDeals(ctx context.Context) ([]models.DealSummary, error) {
	var resp struct {
		Deals []models.DealSummary `json:"deals"`
		Count int                  `json:"count"`
	}
	if err := s.api.doJSON(ctx, "GET", "/deals", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Deals, nil
}

func (s *DefaultDealsService) GetDeal(ctx context.Context, dealID string) (*models.DealDetail, error) {
	var deal models.DealDetail
	if err := s.api.doJSON(ctx, "GET", "/deals/"+dealID+"/details", nil, &deal); err != nil {
		return nil, err
	}
	return &deal, nil
}

func (s *DefaultDealsService) StartPlanFromDeal(ctx context.Context, dealID string, identity models.Identity, passengers []models.Passenger, fromCity, contactPhone string) (*models.PlannerReply, error) {
	body := map[string]interface{}{
		"register_id":   identity.RegisterID,
		"email":         identity.Email,
		"from_city":     fromCity,
		"contact_phone": contactPhone,
		"passengers":    passengers,
	}
	var reply models.PlannerReply
	if err := s.api.doJSON(ctx, "POST", "/deals/"+dealID+"/start-plan", body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
