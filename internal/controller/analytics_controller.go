package controller

import (
	"strconv"

	"nutricoach_backend/internal/service"
	"nutricoach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// @Summary Trending custom goals
// @Description Most frequently stated goal phrases no proxy covers, candidates for catalog promotion
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Max entries" default(20)
// @Success 200 {object} util.Response{data=[]service.TrendingGoal}
// @Router /api/admin/analytics/custom-goals [get]
func (c *AnalyticsController) TrendingCustomGoals(ctx *gin.Context) {
	limit, err := strconv.ParseInt(ctx.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit <= 0 {
		util.BadRequest(ctx, "invalid limit")
		return
	}

	trends, err := c.AnalyticsService.TrendingCustomGoals(ctx.Request.Context(), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, trends)
}
