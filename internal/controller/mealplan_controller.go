package controller

import (
	"errors"
	"net/http"

	"nutricoach_backend/internal/service"
	"nutricoach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MealPlanController struct {
	MealPlanService *service.MealPlanService
}

func NewMealPlanController(mealPlanService *service.MealPlanService) *MealPlanController {
	return &MealPlanController{MealPlanService: mealPlanService}
}

// @Summary Meal plan preview
// @Description One-day meal suggestion from the AI collaborator, honoring the merged constraints
// @Tags meal-plan
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Failure 422 {object} util.Response "no active goals"
// @Router /api/meal-plan/preview [post]
func (c *MealPlanController) PreviewPlan(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	plan, err := c.MealPlanService.PreviewPlan(ctx.Request.Context(), user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrProfileNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrNoActiveGoals):
			util.Error(ctx, http.StatusUnprocessableEntity, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"plan": plan})
}
