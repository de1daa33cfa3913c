package controller

import (
	"errors"
	"net/http"

	"nutricoach_backend/internal/model"
	"nutricoach_backend/internal/service"
	"nutricoach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// GoalController exposes the goal engine to the conversational layer and the
// meal-planning optimizer.
type GoalController struct {
	GoalService *service.GoalService
}

func NewGoalController(goalService *service.GoalService) *GoalController {
	return &GoalController{GoalService: goalService}
}

// AddGoalRequest carries the user's stated goal text.
type AddGoalRequest struct {
	Text     string             `json:"text" binding:"required,max=255"`
	Priority model.GoalPriority `json:"priority" binding:"omitempty,min=1,max=4"`
}

// UpdatePrioritiesRequest re-ranks a batch of goals.
type UpdatePrioritiesRequest struct {
	Updates []service.PriorityUpdate `json:"updates" binding:"required,min=1,dive"`
}

// @Summary Add a nutrition goal
// @Description Classify free-text goal statement, resolve constraints, and append to the profile
// @Tags goals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param goal body AddGoalRequest true "Goal statement"
// @Success 201 {object} util.Response{data=service.AddGoalResult}
// @Failure 404 {object} util.Response "profile not found"
// @Router /api/goals [post]
func (c *GoalController) AddGoal(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AddGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	priority := req.Priority
	if priority == 0 {
		priority = model.PriorityMedium
	}

	result, err := c.GoalService.AddGoal(user.UserID, req.Text, priority)
	if err != nil {
		if errors.Is(err, util.ErrProfileNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, result)
}

// @Summary List active goals
// @Tags goals
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.UserGoal}
// @Router /api/goals [get]
func (c *GoalController) ListGoals(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	goals, err := c.GoalService.UserGoals(user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrProfileNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, goals)
}

// @Summary Re-prioritize goals
// @Description Apply a batch of priority updates; updates referencing unknown goals are skipped
// @Tags goals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param updates body UpdatePrioritiesRequest true "Priority updates"
// @Success 200 {object} util.Response
// @Router /api/goals/priorities [put]
func (c *GoalController) UpdatePriorities(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdatePrioritiesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	applied, err := c.GoalService.UpdatePriorities(user.UserID, req.Updates)
	if err != nil {
		if errors.Is(err, util.ErrProfileNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"applied": applied,
		"skipped": len(req.Updates) - applied,
	})
}

// @Summary Merged constraint set
// @Description Recompute the merged constraints from the current goal list
// @Tags goals
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.MergedConstraintSet}
// @Router /api/goals/constraints [get]
func (c *GoalController) GetMergedConstraints(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	merged, err := c.GoalService.MergedConstraints(user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrProfileNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, merged)
}

// @Summary Planner context block
// @Description Free-text context handed verbatim to the meal-planning collaborator
// @Tags goals
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/goals/planner-context [get]
func (c *GoalController) GetPlannerContext(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	context, err := c.GoalService.PlannerContext(user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrProfileNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusOK, util.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    gin.H{"context": context},
	})
}
