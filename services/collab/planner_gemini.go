package collab

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"travelorbit/models"

	"github.com/go-redis/redis/v8"
	genai "github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const plannerSystemPrompt = `You are TravelOrbit AI, an expert travel itinerary planner.
Collect the trip details step by step (from city, to city, party type,
budget level, duration in days, interests, special requirements, dates).
When everything is known, produce the final day-by-day itinerary.
Always answer with a human section, then a line containing exactly
---JSON---
followed by one JSON object:
{"is_final_itinerary": true/false, "updated_fields": {...}, "itinerary": {"title": "...", "days": [...]}}
Set "is_final_itinerary" to true only when the full itinerary is ready, and
include "itinerary" only then.`

const plannerMarker = "---JSON---"

const plannerContextPrefix = "planner:ctx:"

type plannerTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// plannerContextStore keeps per-trip conversation history in redis.
type plannerContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func newPlannerContextStore(client *redis.Client, ttl time.Duration) *plannerContextStore {
	return &plannerContextStore{client: client, ttl: ttl}
}

func (s *plannerContextStore) Get(ctx context.Context, tripID string) ([]plannerTurn, error) {
	data, err := s.client.Get(ctx, plannerContextPrefix+tripID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var turns []plannerTurn
	if err := json.Unmarshal([]byte(data), &turns); err != nil {
		return nil, err
	}
	return turns, nil
}

func (s *plannerContextStore) Set(ctx context.Context, tripID string, turns []plannerTurn) error {
	b, err := json.Marshal(turns)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, plannerContextPrefix+tripID, b, s.ttl).Err()
}

func (s *plannerContextStore) Clear(ctx context.Context, tripID string) error {
	return s.client.Del(ctx, plannerContextPrefix+tripID).Err()
}

// plannerTail is the machine half of a planner reply.
type plannerTail struct {
	IsFinalItinerary bool              `json:"is_final_itinerary"`
	UpdatedFields    map[string]any    `json:"updated_fields"`
	Itinerary        *models.Itinerary `json:"itinerary"`
}

// GeminiPlannerService is the local trip-plan responder used when no remote
// planner URL is configured. Trip records live in process; conversation
// history lives in redis so replies stay coherent across turns.
type GeminiPlannerService struct {
	model  *genai.GenerativeModel
	store  *plannerContextStore
	logger *zap.Logger

	mu    sync.RWMutex
	trips map[string]*models.TripDetail
}

func NewGeminiPlannerService(apiKey string, cache *redis.Client, logger *zap.Logger) (*GeminiPlannerService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	model := client.GenerativeModel("models/gemini-1.5-pro")
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(plannerSystemPrompt)}}

	return &GeminiPlannerService{
		model:  model,
		store:  newPlannerContextStore(cache, 30*time.Minute),
		logger: logger,
		trips:  make(map[string]*models.TripDetail),
	}, nil
}

func (s *GeminiPlannerService) StartSession(ctx context.Context, identity models.Identity) (string, error) {
	tripID := strings.ReplaceAll(uuid.New().String(), "-", "")
	s.mu.Lock()
	s.trips[tripID] = &models.TripDetail{
		ID:         tripID,
		RegisterID: identity.RegisterID,
		Email:      identity.Email,
		Status:     "draft",
	}
	s.mu.Unlock()
	if err := s.store.Clear(ctx, tripID); err != nil {
		s.logger.Warn("planner: failed to clear context", zap.String("tripId", tripID), zap.Error(err))
	}
	return tripID, nil
}

func (s *GeminiPlannerService) SendMessage(ctx context.Context, tripID string, identity models.Identity, text string) (*models.PlannerReply, error) {
	trip := s.getTrip(tripID)
	if trip == nil {
		return nil, NewError(NotFound, "planner.SendMessage", "trip not found")
	}

	turns, err := s.store.Get(ctx, tripID)
	if err != nil {
		s.logger.Warn("planner: context load failed, starting fresh", zap.Error(err))
		turns = nil
	}
	turns = append(turns, plannerTurn{Role: "user", Content: text})

	var prompt strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&prompt, "%s: %s\n", t.Role, t.Content)
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		return nil, &Error{Kind: Transient, Op: "planner.SendMessage", Message: "generation failed", Err: err}
	}

	raw := collectText(resp)
	human, tail := splitPlannerReply(raw)

	if tail != nil && tail.IsFinalItinerary {
		s.mu.Lock()
		trip.Status = "planned"
		if tail.Itinerary != nil {
			trip.Title = tail.Itinerary.Title
			trip.Plan = tail.Itinerary
		}
		trip.Summary = human
		applyUpdatedFields(trip, tail.UpdatedFields)
		s.mu.Unlock()
	} else if tail != nil {
		s.mu.Lock()
		applyUpdatedFields(trip, tail.UpdatedFields)
		s.mu.Unlock()
	}

	turns = append(turns, plannerTurn{Role: "assistant", Content: human})
	if err := s.store.Set(ctx, tripID, turns); err != nil {
		s.logger.Warn("planner: context save failed", zap.Error(err))
	}

	return &models.PlannerReply{
		TripID:           tripID,
		AIMessage:        human,
		IsFinalItinerary: tail != nil && tail.IsFinalItinerary,
	}, nil
}

func (s *GeminiPlannerService) GetTrip(ctx context.Context, tripID string) (*models.TripDetail, error) {
	trip := s.getTrip(tripID)
	if trip == nil {
		return nil, NewError(NotFound, "planner.GetTrip", "trip not found")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := *trip
	return &copied, nil
}

func (s *GeminiPlannerService) SavePassengers(ctx context.Context, tripID string, passengers []models.Passenger, contactPhone string) error {
	trip := s.getTrip(tripID)
	if trip == nil {
		return NewError(NotFound, "planner.SavePassengers", "trip not found")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	trip.Passengers = passengers
	if len(passengers) > 1 {
		trip.PartyType = "family"
	} else {
		trip.PartyType = "solo"
	}
	return nil
}

// Budget tiers offered once a plan is final. Add-ons mirror the catalog the
// booking backend sells (guide, photographer, insurance).
var plannerPackages = []models.Package{
	{ID: "essential", Name: "Essential", Description: "Stays and transfers only", MinPrice: 8000, MaxPrice: 15000},
	{ID: "comfort", Name: "Comfort", Description: "3-star stays, guided day tours", MinPrice: 15000, MaxPrice: 30000},
	{ID: "luxury", Name: "Luxury", Description: "Premium stays, private transport", MinPrice: 30000, MaxPrice: 80000},
}

var plannerAddOns = map[string]models.AddOn{
	"guide":        {ID: "guide", Name: "Local guide", Price: 2000},
	"photographer": {ID: "photographer", Name: "Trip photographer", Price: 3500},
	"insurance":    {ID: "insurance", Name: "Travel insurance", Price: 900},
}

func (s *GeminiPlannerService) ListPackages(ctx context.Context, tripID string) ([]models.Package, error) {
	if s.getTrip(tripID) == nil {
		return nil, NewError(NotFound, "planner.ListPackages", "trip not found")
	}
	return plannerPackages, nil
}

func (s *GeminiPlannerService) SelectPackage(ctx context.Context, tripID, packageID string, identity models.Identity) (*models.Package, error) {
	trip := s.getTrip(tripID)
	if trip == nil {
		return nil, NewError(NotFound, "planner.SelectPackage", "trip not found")
	}
	for _, p := range plannerPackages {
		if p.ID == packageID {
			s.mu.Lock()
			trip.BudgetLevel = p.ID
			trip.TotalPrice = float64(p.MinPrice)
			s.mu.Unlock()
			return &p, nil
		}
	}
	return nil, NewError(ValidationFailed, "planner.SelectPackage", "unknown package")
}

func (s *GeminiPlannerService) ApplyAddOns(ctx context.Context, tripID string, addOnIDs []string) (*models.AddOnQuote, error) {
	trip := s.getTrip(tripID)
	if trip == nil {
		return nil, NewError(NotFound, "planner.ApplyAddOns", "trip not found")
	}
	quote := &models.AddOnQuote{TripID: tripID, Currency: "INR"}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range addOnIDs {
		addOn, ok := plannerAddOns[id]
		if !ok {
			return nil, NewError(ValidationFailed, "planner.ApplyAddOns", "unknown add-on: "+id)
		}
		trip.TotalPrice += addOn.Price
		quote.Applied = append(quote.Applied, addOn.ID)
	}
	quote.TotalPrice = trip.TotalPrice
	return quote, nil
}

func (s *GeminiPlannerService) getTrip(tripID string) *models.TripDetail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trips[tripID]
}

func collectText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String()
}

// splitPlannerReply separates the human text from the machine tail. A reply
// without the marker, or with an unparsable tail, is treated as a plain
// non-final answer.
func splitPlannerReply(raw string) (string, *plannerTail) {
	idx := strings.Index(raw, plannerMarker)
	if idx < 0 {
		return strings.TrimSpace(raw), nil
	}
	human := strings.TrimSpace(raw[:idx])
	jsonPart := strings.TrimSpace(raw[idx+len(plannerMarker):])
	jsonPart = strings.TrimPrefix(jsonPart, "```json")
	jsonPart = strings.TrimPrefix(jsonPart, "```")
	jsonPart = strings.TrimSuffix(jsonPart, "```")

	var tail plannerTail
	if err := json.Unmarshal([]byte(strings.TrimSpace(jsonPart)), &tail); err != nil {
		return human, nil
	}
	return human, &tail
}

func applyUpdatedFields(trip *models.TripDetail, fields map[string]any) {
	for key, value := range fields {
		switch key {
		case "from_city":
			if v, ok := value.(string); ok {
				trip.FromCity = v
			}
		case "to_city":
			if v, ok := value.(string); ok {
				trip.ToCity = v
			}
		case "party_type":
			if v, ok := value.(string); ok {
				trip.PartyType = v
			}
		case "budget_level":
			if v, ok := value.(string); ok {
				trip.BudgetLevel = v
			}
		case "duration_days":
			if v, ok := value.(float64); ok {
				trip.DurationDays = int(v)
			}
		case "start_date":
			if v, ok := value.(string); ok {
				trip.StartDate = v
			}
		case "end_date":
			if v, ok := value.(string); ok {
				trip.EndDate = v
			}
		case "special_requirements":
			if v, ok := value.(string); ok {
				trip.SpecialRequirements = v
			}
		case "interests":
			if vs, ok := value.([]any); ok {
				trip.Interests = trip.Interests[:0]
				for _, item := range vs {
					if v, ok := item.(string); ok {
						trip.Interests = append(trip.Interests, v)
					}
				}
			}
		}
	}
}
