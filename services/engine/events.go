package engine

import (
	"fmt"
	"strings"

	"travelorbit/models"
)

// Event is one unit of input processed by the transition table. Raw text is
// normalized into a typed event exactly once, at the classifier boundary.
type Event interface {
	// Fingerprint identifies the event for duplicate suppression. Two
	// events with the same fingerprint submitted while the first is still
	// in flight are treated as one.
	Fingerprint() string
}

// TextEvent is a free-form user utterance.
type TextEvent struct {
	Text string
}

func (e TextEvent) Fingerprint() string { return "text:" + e.Text }

// ResetEvent discards all scratch state and returns the session to idle
// with a fresh guest identity.
type ResetEvent struct{}

func (ResetEvent) Fingerprint() string { return "reset" }

// ShowDealsEvent asks for the current deals catalog.
type ShowDealsEvent struct{}

func (ShowDealsEvent) Fingerprint() string { return "deals:list" }

// SelectDealEvent picks one deal and starts the booking gate for it.
type SelectDealEvent struct {
	DealID string
}

func (e SelectDealEvent) Fingerprint() string { return "deals:select:" + e.DealID }

// GroupPlanEvent starts the group-destination sub-flow.
type GroupPlanEvent struct{}

func (GroupPlanEvent) Fingerprint() string { return "group:plan" }

// ThirdPartyStartEvent is the "google" choice at the authentication gate.
type ThirdPartyStartEvent struct{}

func (ThirdPartyStartEvent) Fingerprint() string { return "auth:thirdparty:start" }

// ThirdPartyLoginEvent is the out-of-band result of a third-party
// authorization window, delivered to the owning session via a correlation
// token. Either Identity is set (login complete) or TempID is set (a phone
// number must still be linked).
type ThirdPartyLoginEvent struct {
	TempID   string
	Identity *models.Identity
}

func (e ThirdPartyLoginEvent) Fingerprint() string {
	if e.Identity != nil {
		return "auth:thirdparty:done:" + e.Identity.RegisterID
	}
	return "auth:thirdparty:temp:" + e.TempID
}

// SoloEvent is the "alone" answer at the group-type question.
type SoloEvent struct{}

func (SoloEvent) Fingerprint() string { return "group:solo" }

// ConvertGroupEvent turns a finished group vote into a bookable trip.
type ConvertGroupEvent struct {
	GroupID string
}

func (e ConvertGroupEvent) Fingerprint() string { return "group:convert:" + e.GroupID }

// SelectPackageEvent books a package tier for the current trip.
type SelectPackageEvent struct {
	PackageID string
}

func (e SelectPackageEvent) Fingerprint() string { return "pkg:select:" + e.PackageID }

// ApplyAddOnsEvent applies upsell items to the current trip.
type ApplyAddOnsEvent struct {
	AddOnIDs []string
}

func (e ApplyAddOnsEvent) Fingerprint() string {
	return "pkg:addons:" + strings.Join(e.AddOnIDs, ",")
}

// PayEvent requests a payment order for the current trip.
type PayEvent struct{}

func (PayEvent) Fingerprint() string { return "pay:order" }

// PaymentProofEvent is the gateway callback carrying the payment proof.
type PaymentProofEvent struct {
	Proof models.PaymentProof
}

func (e PaymentProofEvent) Fingerprint() string { return "pay:proof:" + e.Proof.OrderID }

// FeedbackEvent is a post-booking rating.
type FeedbackEvent struct {
	Rating   int
	Comments string
}

func (e FeedbackEvent) Fingerprint() string {
	return fmt.Sprintf("feedback:%d:%s", e.Rating, e.Comments)
}
