package handlers

import (
	"travelorbit/models"
	"travelorbit/services/collab"
	"travelorbit/services/engine"

	"github.com/gin-gonic/gin"
)

// GroupVoteHandler records a vote from the shareable link. Voters are not
// chat sessions, so this endpoint talks to the groups collaborator
// directly.
func GroupVoteHandler(groups collab.GroupsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Param("groupId")
		var req struct {
			VoterEmail  string   `json:"voter_email" binding:"required"`
			VoterName   string   `json:"voter_name"`
			VoterPhone  string   `json:"voter_phone"`
			Destination string   `json:"destination" binding:"required"`
			Budget      string   `json:"budget"`
			StartDate   string   `json:"start_date"`
			EndDate     string   `json:"end_date"`
			Activities  []string `json:"activities"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		voter := models.VoterInfo{Email: req.VoterEmail, Name: req.VoterName, Phone: req.VoterPhone}
		choices := models.VoteChoices{
			Destination: req.Destination,
			Budget:      req.Budget,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Activities:  req.Activities,
		}
		if err := groups.SubmitVote(c.Request.Context(), groupID, voter, choices); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, gin.H{"message": "Vote recorded"})
	}
}

func GroupResultHandler(groups collab.GroupsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tally, err := groups.GetResult(c.Request.Context(), c.Param("groupId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, tally)
	}
}

// ConvertGroupHandler turns a finished vote into the leader's bookable
// trip, run through the leader's own session.
func ConvertGroupHandler(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}
		dispatchAndReply(c, eng, id, engine.ConvertGroupEvent{GroupID: c.Param("groupId")})
	}
}
