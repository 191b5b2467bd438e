package handlers

import (
	"travelorbit/models"
	"travelorbit/services/engine"

	"github.com/gin-gonic/gin"
)

// GoogleCallbackHandler receives the out-of-band result of a third-party
// authorization window. The correlation token ties it back to the session
// that opened the popup; the result then flows through the normal
// transition table.
func GoogleCallbackHandler(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			CorrelationToken string `json:"correlation_token" binding:"required"`
			GoogleTempID     string `json:"google_temp_id"`
			RegisterID       string `json:"register_id"`
			Email            string `json:"email"`
			Phone            string `json:"phone"`
			Name             string `json:"name"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if req.GoogleTempID == "" && req.RegisterID == "" {
			c.JSON(400, gin.H{"error": "Either google_temp_id or register_id is required"})
			return
		}

		ev := engine.ThirdPartyLoginEvent{TempID: req.GoogleTempID}
		if req.RegisterID != "" {
			ev.Identity = &models.Identity{
				RegisterID:   req.RegisterID,
				Email:        req.Email,
				Phone:        req.Phone,
				Name:         req.Name,
				AuthProvider: "google",
			}
		}

		if _, err := eng.HandleThirdPartyCallback(c.Request.Context(), req.CorrelationToken, ev); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, gin.H{"message": "Login delivered to session"})
	}
}
