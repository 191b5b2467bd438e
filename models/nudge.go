package models

// FeedbackNudgePayload is the queued reminder asking a traveler to rate a
// confirmed booking.
type FeedbackNudgePayload struct {
	SessionID string `json:"sessionId"`
	TripID    string `json:"tripId"`
}
