package handlers

import (
	"travelorbit/services/collab"

	"github.com/gin-gonic/gin"
)

// ListDealsHandler serves the deals catalog for browsing without a
// session, e.g. the landing page.
func ListDealsHandler(deals collab.DealsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := deals.ListDeals(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, gin.H{"deals": list, "count": len(list)})
	}
}

func DealDetailsHandler(deals collab.DealsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		deal, err := deals.GetDeal(c.Request.Context(), c.Param("dealId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, deal)
	}
}
