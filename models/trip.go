package models

// Passenger is one traveler collected during the booking flow.
type Passenger struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"` // "adult" or "child"
}

// PlannerReply is the trip-plan collaborator's answer to one chat turn.
type PlannerReply struct {
	TripID           string `json:"trip_id"`
	AIMessage        string `json:"ai_message"`
	IsFinalItinerary bool   `json:"is_final_itinerary"`
}

// Activity is a single itinerary entry.
type Activity struct {
	Name        string `json:"name"`
	MapURL      string `json:"map_url,omitempty"`
	ImageSearch string `json:"image_search,omitempty"`
	Time        string `json:"time,omitempty"`
	Category    string `json:"category,omitempty"`
}

// DayPlan is one day of a final itinerary.
type DayPlan struct {
	Day        int        `json:"day"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

// Itinerary is the structured final plan produced by the planner.
type Itinerary struct {
	Title string    `json:"title"`
	Days  []DayPlan `json:"days"`
}

// TripDetail is the trip record as the trip-plan collaborator reports it.
// Unknown fields in the collaborator's response are ignored.
type TripDetail struct {
	ID                  string      `json:"id"`
	RegisterID          string      `json:"register_id"`
	Email               string      `json:"email"`
	Title               string      `json:"title,omitempty"`
	FromCity            string      `json:"from_city,omitempty"`
	ToCity              string      `json:"to_city,omitempty"`
	PartyType           string      `json:"party_type,omitempty"`
	BudgetLevel         string      `json:"budget_level,omitempty"`
	DurationDays        int         `json:"duration_days,omitempty"`
	StartDate           string      `json:"start_date,omitempty"`
	EndDate             string      `json:"end_date,omitempty"`
	Interests           []string    `json:"interests,omitempty"`
	SpecialRequirements string      `json:"special_requirements,omitempty"`
	Status              string      `json:"status"`
	TotalPrice          float64     `json:"total_price,omitempty"`
	Passengers          []Passenger `json:"passengers,omitempty"`
	Summary             string      `json:"ai_summary_text,omitempty"`
	Plan                *Itinerary  `json:"ai_summary_json,omitempty"`
}

// Package is a bookable tier offered for a planned trip.
type Package struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MinPrice    int    `json:"min_price"`
	MaxPrice    int    `json:"max_price"`
}

// AddOn is an upsell item applied on top of a selected package.
type AddOn struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// AddOnQuote is the new total after add-ons were applied.
type AddOnQuote struct {
	TripID     string   `json:"trip_id"`
	Applied    []string `json:"applied"`
	TotalPrice float64  `json:"total_price"`
	Currency   string   `json:"currency"`
}
