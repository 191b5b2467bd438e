package collab

import (
	"context"

	"travelorbit/models"

	"go.uber.org/zap"
)

// DefaultTripPlanService talks to the remote trip-plan collaborator.
type DefaultTripPlanService struct {
	api *apiClient
}

func NewTripPlanService(baseURL string, logger *zap.Logger) *DefaultTripPlanService {
	return &DefaultTripPlanService{api: newAPIClient(baseURL, logger)}
}

func (s *DefaultTripPlanService) StartSession(ctx context.Context, identity models.Identity) (string, error) {
	body := map[string]string{
		"register_id": identity.RegisterID,
		"email":       identity.Email,
	}
	var resp struct {
		TripID string `json:"trip_id"`
	}
	if err := s.api.doJSON(ctx, "POST", "/trip-plan/session/start", body, &resp); err != nil {
		return "", err
	}
	return resp.TripID, nil
}

func (s *DefaultTripPlanService) SendMessage(ctx context.Context, tripID string, identity models.Identity, text string) (*models.PlannerReply, error) {
	body := map[string]string{
		"trip_id":     tripID,
		"register_id": identity.RegisterID,
		"email":       identity.Email,
		"message":     text,
	}
	var reply models.PlannerReply
	if err := s.api.doJSON(ctx, "POST", "/trip-plan/session/message", body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (s *DefaultTripPlanService) GetTrip(ctx context.Context, tripID string) (*models.TripDetail, error) {
	var trip models.TripDetail
	if err := s.api.doJSON(ctx, "GET", "/trip-plan/"+tripID, nil, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (s *DefaultTripPlanService) SavePassengers(ctx context.Context, tripID string, passengers []models.Passenger, contactPhone string) error {
	body := map[string]interface{}{
		"passengers":    passengers,
		"contact_phone": contactPhone,
	}
	return s.api.doJSON(ctx, "POST", "/trip-plan/"+tripID+"/passengers", body, nil)
}

func (s *DefaultTripPlanService) ListPackages(ctx context.Context, tripID string) ([]models.Package, error) {
	var resp struct {
		TripID   string           `json:"trip_id"`
		Packages []models.Package `json:"packages"`
	}
	if err := s.api.doJSON(ctx, "GET", "/trip-plan/"+tripID+"/packages", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Packages, nil
}

func (s *DefaultTripPlanService) SelectPackage(ctx context.Context, tripID, packageID string, identity models.Identity) (*models.Package, error) {
	body := map[string]string{
		"register_id": identity.RegisterID,
		"email":       identity.Email,
	}
	var resp struct {
		SelectedPackage models.Package `json:"selected_package"`
	}
	if err := s.api.doJSON(ctx, "POST", "/trip-plan/"+tripID+"/packages/"+packageID+"/select", body, &resp); err != nil {
		return nil, err
	}
	return &resp.SelectedPackage, nil
}

func (s *DefaultTripPlanService) ApplyAddOns(ctx context.Context, tripID string, addOnIDs []string) (*models.AddOnQuote, error) {
	body := map[string]interface{}{"addon_ids": addOnIDs}
	var quote models.AddOnQuote
	if err := s.api.doJSON(ctx, "POST", "/trip-plan/"+tripID+"/addons", body, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}
