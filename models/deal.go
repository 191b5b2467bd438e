package models

// DealSummary is one card of the deal-of-the-day rail.
type DealSummary struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title,omitempty"`
	Destination        string  `json:"destination"`
	Description        string  `json:"description,omitempty"`
	OriginalPrice      float64 `json:"original_price"`
	DiscountedPrice    float64 `json:"discounted_price"`
	DiscountPercentage float64 `json:"discount_percentage,omitempty"`
	Currency           string  `json:"currency"`
	ImageURL           string  `json:"image_url,omitempty"`
	DurationDays       int     `json:"duration_days,omitempty"`
	IsInternational    bool    `json:"is_international,omitempty"`
}

// DealDetail is the full record for one deal.
type DealDetail struct {
	DealSummary
	MinPersons int        `json:"min_persons,omitempty"`
	MaxPersons int        `json:"max_persons,omitempty"`
	StartDate  string     `json:"start_date,omitempty"`
	EndDate    string     `json:"end_date,omitempty"`
	Inclusions []string   `json:"inclusions,omitempty"`
	Plan       *Itinerary `json:"itinerary,omitempty"`
}
