package handlers

import (
	"travelorbit/models"
	"travelorbit/services/engine"

	"github.com/gin-gonic/gin"
)

// dispatchAndReply runs one typed event and returns the new transcript
// entries, mirroring the chat endpoint's response shape.
func dispatchAndReply(c *gin.Context, eng *engine.Engine, id string, ev engine.Event) {
	res, err := eng.HandleEvent(c.Request.Context(), id, ev)
	if err != nil {
		respondError(c, err)
		return
	}
	if res == nil {
		c.JSON(200, gin.H{"message": "Duplicate request ignored"})
		return
	}
	c.JSON(200, gin.H{
		"state":    res.State.String(),
		"messages": res.Messages,
	})
}

// SelectDealHandler opens a deal booking from the deal card the user
// tapped.
func SelectDealHandler(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}
		var req struct {
			DealID string `json:"deal_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		dispatchAndReply(c, eng, id, engine.SelectDealEvent{DealID: req.DealID})
	}
}

func SelectPackageHandler(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}
		var req struct {
			PackageID string `json:"package_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		dispatchAndReply(c, eng, id, engine.SelectPackageEvent{PackageID: req.PackageID})
	}
}

func ApplyAddOnsHandler(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}
		var req struct {
			AddOnIDs []string `json:"add_on_ids" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		dispatchAndReply(c, eng, id, engine.ApplyAddOnsEvent{AddOnIDs: req.AddOnIDs})
	}
}

// PayHandler asks the payment processor for an order descriptor the
// checkout widget can open.
func PayHandler(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}
		dispatchAndReply(c, eng, id, engine.PayEvent{})
	}
}

// PaymentCallbackHandler receives the gateway proof after checkout.
func PaymentCallbackHandler(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}
		var req struct {
			OrderID   string `json:"order_id" binding:"required"`
			PaymentID string `json:"payment_id" binding:"required"`
			Signature string `json:"signature"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		dispatchAndReply(c, eng, id, engine.PaymentProofEvent{Proof: models.PaymentProof{
			OrderID:   req.OrderID,
			PaymentID: req.PaymentID,
			Signature: req.Signature,
		}})
	}
}

func FeedbackHandler(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}
		var req struct {
			Rating   int    `json:"rating" binding:"required"`
			Comments string `json:"comments"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		dispatchAndReply(c, eng, id, engine.FeedbackEvent{Rating: req.Rating, Comments: req.Comments})
	}
}
