package handlers

import (
	"errors"

	"travelorbit/services/collab"
	"travelorbit/services/engine"

	"github.com/gin-gonic/gin"
)

// respondError maps engine and collaborator failures to HTTP statuses.
func respondError(c *gin.Context, err error) {
	var fatal *engine.FatalError
	if errors.As(err, &fatal) {
		c.JSON(500, gin.H{"error": "Internal engine error"})
		return
	}
	if errors.Is(err, engine.ErrUnknownCorrelation) {
		c.JSON(404, gin.H{"error": "Unknown or expired login request"})
		return
	}
	switch collab.KindOf(err) {
	case collab.NotFound:
		c.JSON(404, gin.H{"error": err.Error()})
	case collab.Unauthorized:
		c.JSON(401, gin.H{"error": err.Error()})
	case collab.ValidationFailed:
		c.JSON(400, gin.H{"error": err.Error()})
	case collab.Transient:
		c.JSON(503, gin.H{"error": "Service temporarily unavailable"})
	default:
		c.JSON(500, gin.H{"error": "Something went wrong"})
	}
}

// sessionID pulls the session id placed on the context by the auth
// middleware.
func sessionID(c *gin.Context) (string, bool) {
	id := c.GetString("sessionID")
	if id == "" {
		c.JSON(401, gin.H{"error": "Insufficient authorization"})
		return "", false
	}
	return id, true
}
