package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mindmate/mindmate-api/internal/core/domain"
	"github.com/mindmate/mindmate-api/internal/core/ports"
)

type goalRequest struct {
	Title       string    `json:"title"                 validate:"required,min=1,max=200"`
	Description string    `json:"description,omitempty" validate:"max=2000"`
	Category    string    `json:"category,omitempty"    validate:"max=50"`
	TargetDate  time.Time `json:"targetDate"            validate:"required"`
	Milestones  []string  `json:"milestones,omitempty"  validate:"max=20,dive,min=1,max=200"`
}

type goalPatchRequest struct {
	Title       *string    `json:"title,omitempty"       validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category    *string    `json:"category,omitempty"    validate:"omitempty,max=50"`
	Progress    *int       `json:"progress,omitempty"`
	TargetDate  *time.Time `json:"targetDate,omitempty"`
	Milestones  []string   `json:"milestones,omitempty"  validate:"omitempty,max=20,dive,min=1,max=200"`
}

type goalResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Progress    int       `json:"progress"`
	Milestones  []string  `json:"milestones"`
	TargetDate  time.Time `json:"targetDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toGoalResponse(g *domain.Goal) goalResponse {
	milestones := g.Milestones
	if milestones == nil {
		milestones = []string{}
	}
	return goalResponse{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Category:    g.Category,
		Progress:    g.Progress,
		Milestones:  milestones,
		TargetDate:  g.TargetDate,
		CreatedAt:   g.CreatedAt,
	}
}

// GoalHandler exposes the goal tracker endpoints.
type GoalHandler struct {
	goals ports.GoalService
}

func NewGoalHandler(goals ports.GoalService) *GoalHandler {
	return &GoalHandler{goals: goals}
}

// List returns the caller's goals, newest first.
//
// @Summary      List goals
// @Tags         goals
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   goalResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/goals [get]
func (h *GoalHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	goals, err := h.goals.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g))
	}
	return c.JSON(http.StatusOK, out)
}

// Create adds a new goal for the caller.
//
// @Summary      Create a goal
// @Tags         goals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      goalRequest  true  "Goal details"
// @Success      201   {object}  goalResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/goals [post]
func (h *GoalHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req goalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	goal, err := h.goals.Create(c.Request().Context(), userID, ports.CreateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		TargetDate:  req.TargetDate,
		Milestones:  req.Milestones,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toGoalResponse(goal))
}

// Update applies partial changes to one of the caller's goals.
//
// @Summary      Update a goal
// @Tags         goals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Goal ID"
// @Param        body  body      goalPatchRequest  true  "Fields to change"
// @Success      200   {object}  goalResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/goals/{id} [patch]
func (h *GoalHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req goalPatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	goal, err := h.goals.Update(c.Request().Context(), userID, c.Param("id"), ports.UpdateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Progress:    req.Progress,
		TargetDate:  req.TargetDate,
		Milestones:  req.Milestones,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// Delete removes one of the caller's goals.
//
// @Summary      Delete a goal
// @Tags         goals
// @Security     BearerAuth
// @Param        id  path  string  true  "Goal ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/goals/{id} [delete]
func (h *GoalHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.goals.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
