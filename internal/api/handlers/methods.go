package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"consumption-solver/internal/api/models"
)

// ListMethods handles GET /api/v1/methods
func ListMethods(c *gin.Context) {
	methods := []models.MethodInfo{
		{
			Name:        "EGM",
			Description: "Endogenous grid method with linear or cubic interpolation of the consumption function",
		},
		{
			Name:        "MOM",
			Description: "Method of moderation: consumption interpolated between pessimist and optimist bounds via a logit transform",
		},
		{
			Name:        "MOM_CUSP",
			Description: "Method of moderation with a three-piece consumption function split at the cusp where the realist meets the pessimist",
		},
		{
			Name:        "MOM_STOCHASTIC_R",
			Description: "Method of moderation under lognormal risky returns, with the perfect-foresight bounds rebuilt around the stochastic MPC limit",
		},
	}

	c.JSON(http.StatusOK, gin.H{"methods": methods})
}
