package handlers

import (
	"strconv"
	"time"

	"travelorbit/services/engine"
	"travelorbit/utils"

	"github.com/gin-gonic/gin"
)

const sessionTokenTTL = 24 * time.Hour

// StartChatHandler opens a fresh conversation and returns its bearer token.
func StartChatHandler(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := eng.StartSession(c.Request.Context())
		token, err := utils.GenerateSessionToken(sess.SessionID, sessionTokenTTL)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to create session token"})
			return
		}
		c.JSON(200, gin.H{
			"session_id": sess.SessionID,
			"token":      token,
			"messages":   sess.Transcript.Messages(),
		})
	}
}

// ChatMessageHandler feeds one user utterance through the engine and
// returns the transcript entries it produced.
func ChatMessageHandler(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}
		var req struct {
			Message string `json:"message" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		res, err := eng.HandleText(c.Request.Context(), id, req.Message)
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
}

// TranscriptHandler returns the transcript, optionally only entries at or
// after the "since" index for polling clients.
func TranscriptHandler(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}
		sess := eng.Registry().Get(c.Request.Context(), id)
		if sess == nil {
			c.JSON(404, gin.H{"error": "Unknown session"})
			return
		}
		since := 0
		if raw := c.Query("since"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				c.JSON(400, gin.H{"error": "Invalid since parameter"})
				return
			}
			since = parsed
		}
		c.JSON(200, gin.H{
			"state":    sess.CurrentState().String(),
			"total":    sess.Transcript.Len(),
			"messages": sess.Transcript.Since(since),
		})
	}
}

// ResetChatHandler is the explicit "book again" operation.
func ResetChatHandler(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}
		if _, err := eng.HandleEvent(c.Request.Context(), id, engine.ResetEvent{}); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, gin.H{"message": "Session reset"})
	}
}
