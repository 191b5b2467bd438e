package collab

import (
	"context"

	"travelorbit/models"

	"go.uber.org/zap"
)

// DefaultGroupsService talks to the group-vote collaborator over HTTP.
type DefaultGroupsService struct {
	api *apiClient
}

func NewGroupsService(baseURL string, logger *zap.Logger) *DefaultGroupsService {
	return &DefaultGroupsService{api: newAPIClient(baseURL, logger)}
}

func (s *DefaultGroupsService) CreateGroup(ctx context.Context, leader models.Identity, name, fromCity string, expectedCount int, options []string) (*models.GroupCreated, error) {
	body := map[string]interface{}{
		"leader_id":           leader.RegisterID,
		"leader_email":        leader.Email,
		"group_name":          name,
		"from_city":           fromCity,
		"expected_count":      expectedCount,
		"destination_options": options,
	}
	var created models.GroupCreated
	if err := s.api.doJSON(ctx, "POST", "/groups/create", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *DefaultGroupsService) GetResult(ctx context.Context, groupID string) (*models.GroupTally, error) {
	var tally models.GroupTally
	if err := s.api.doJSON(ctx, "GET", "/groups/"+groupID+"/result", nil, &tally); err != nil {
		return nil, err
	}
	return &tally, nil
}

func (s *DefaultGroupsService) ConvertToTrip(ctx context.Context, groupID string) (string, error) {
	var resp struct {
		TripID string `json:"trip_id"`
	}
	if err := s.api.doJSON(ctx, "POST", "/groups/"+groupID+"/convert-to-trip", nil, &resp); err != nil {
		return "", err
	}
	return resp.TripID, nil
}

func (s *DefaultGroupsService) SubmitVote(ctx context.Context, groupID string, voter models.VoterInfo, choices models.VoteChoices) error {
	body := map[string]interface{}{
		"voter_email": voter.Email,
		"voter_name":  voter.Name,
		"voter_phone": voter.Phone,
		"destination": choices.Destination,
		"budget":      choices.Budget,
		"start_date":  choices.StartDate,
		"end_date":    choices.EndDate,
		"activities":  choices.Activities,
	}
	return s.api.doJSON(ctx, "POST", "/groups/"+groupID+"/vote", body, nil)
}
