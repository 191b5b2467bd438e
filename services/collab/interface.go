package collab

import (
	"context"

	"travelorbit/models"
)

// EmailLoginStatus reports whether an email belongs to a registered user.
type EmailLoginStatus string

const (
	EmailExisting EmailLoginStatus = "existing"
	EmailNew      EmailLoginStatus = "new"
)

// TripPlanService wraps the trip-plan collaborator (AI responder + trip
// records).
type TripPlanService interface {
	StartSession(ctx context.Context, identity models.Identity) (string, error)
	SendMessage(ctx context.Context, tripID string, identity models.Identity, text string) (*models.PlannerReply, error)
	GetTrip(ctx context.Context, tripID string) (*models.TripDetail, error)
	SavePassengers(ctx context.Context, tripID string, passengers []models.Passenger, contactPhone string) error
	ListPackages(ctx context.Context, tripID string) ([]models.Package, error)
	SelectPackage(ctx context.Context, tripID, packageID string, identity models.Identity) (*models.Package, error)
	ApplyAddOns(ctx context.Context, tripID string, addOnIDs []string) (*models.AddOnQuote, error)
}

// DealsService wraps the deals catalog collaborator.
type DealsService interface {
	ListDeals(ctx context.Context) ([]models.DealSummary, error)
	GetDeal(ctx context.Context, dealID string) (*models.DealDetail, error)
	StartPlanFromDeal(ctx context.Context, dealID string, identity models.Identity, passengers []models.Passenger, fromCity, contactPhone string) (*models.PlannerReply, error)
}

// AuthService wraps the auth/OTP issuer.
type AuthService interface {
	EmailLogin(ctx context.Context, email string) (EmailLoginStatus, error)
	EmailVerifyOTP(ctx context.Context, email, code string) (*models.Identity, error)
	ThirdPartyAuthURL(ctx context.Context) (string, error)
	PhoneSignupSendOTP(ctx context.Context, phone, email, name string) error
	PhoneSignupVerifyOTP(ctx context.Context, phone, code string) (*models.Identity, error)
	ThirdPartyPhoneSendOTP(ctx context.Context, tempID, phone string) (string, error)
	ThirdPartyPhoneVerifyOTP(ctx context.Context, tempID, code string) (*models.Identity, error)
}

// GroupsService wraps the group-vote collaborator.
type GroupsService interface {
	CreateGroup(ctx context.Context, leader models.Identity, name, fromCity string, expectedCount int, options []string) (*models.GroupCreated, error)
	GetResult(ctx context.Context, groupID string) (*models.GroupTally, error)
	ConvertToTrip(ctx context.Context, groupID string) (string, error)
	SubmitVote(ctx context.Context, groupID string, voter models.VoterInfo, choices models.VoteChoices) error
}

// PaymentsService wraps the payment processor.
type PaymentsService interface {
	CreateOrder(ctx context.Context, tripID string) (*models.OrderDescriptor, error)
	VerifyPayment(ctx context.Context, tripID string, proof models.PaymentProof) (*models.PaymentReceipt, error)
}

// FeedbackService records post-trip ratings.
type FeedbackService interface {
	Submit(ctx context.Context, tripID string, rating int, comments string) error
}
