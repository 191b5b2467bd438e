package handlers

import (
	"travelorbit/services/collab"
	"travelorbit/services/engine"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Chat endpoints
	StartChatHandler   gin.HandlerFunc
	ChatMessageHandler gin.HandlerFunc
	TranscriptHandler  gin.HandlerFunc
	ResetChatHandler   gin.HandlerFunc

	// Booking actions
	SelectDealHandler      gin.HandlerFunc
	SelectPackageHandler   gin.HandlerFunc
	ApplyAddOnsHandler     gin.HandlerFunc
	PayHandler             gin.HandlerFunc
	PaymentCallbackHandler gin.HandlerFunc
	FeedbackHandler        gin.HandlerFunc

	// Third-party login callback
	GoogleCallbackHandler gin.HandlerFunc

	// Deals browsing
	ListDealsHandler   gin.HandlerFunc
	DealDetailsHandler gin.HandlerFunc

	// Group voting
	GroupVoteHandler    gin.HandlerFunc
	GroupResultHandler  gin.HandlerFunc
	ConvertGroupHandler gin.HandlerFunc
}

// NewHandlerBundle wires every handler against the engine and the
// collaborators the voter-facing endpoints talk to directly.
func NewHandlerBundle(eng *engine.Engine, deals collab.DealsService, groups collab.GroupsService) *HandlerBundle {
	return &HandlerBundle{
		StartChatHandler:   StartChatHandler(eng),
		ChatMessageHandler: ChatMessageHandler(eng),
		TranscriptHandler:  TranscriptHandler(eng),
		ResetChatHandler:   ResetChatHandler(eng),

		SelectDealHandler:      SelectDealHandler(eng),
		SelectPackageHandler:   SelectPackageHandler(eng),
		ApplyAddOnsHandler:     ApplyAddOnsHandler(eng),
		PayHandler:             PayHandler(eng),
		PaymentCallbackHandler: PaymentCallbackHandler(eng),
		FeedbackHandler:        FeedbackHandler(eng),

		GoogleCallbackHandler: GoogleCallbackHandler(eng),

		ListDealsHandler:   ListDealsHandler(deals),
		DealDetailsHandler: DealDetailsHandler(deals),

		GroupVoteHandler:    GroupVoteHandler(groups),
		GroupResultHandler:  GroupResultHandler(groups),
		ConvertGroupHandler: ConvertGroupHandler(eng),
	}
}
