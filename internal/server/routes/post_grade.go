package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/johnkimo5/architect-design-ai/internal/metrics"
	"github.com/johnkimo5/architect-design-ai/internal/server/middleware"
	"github.com/johnkimo5/architect-design-ai/internal/store"
	"github.com/johnkimo5/architect-design-ai/pkg/diagram"
	"github.com/johnkimo5/architect-design-ai/pkg/grader"
	"github.com/johnkimo5/architect-design-ai/pkg/logger"

	"github.com/labstack/echo/v4"
)

// GradeBoardHandler grades a board's diagram against a problem statement.
// The snapshot may be supplied inline (the editor's current state); when
// absent, the persisted snapshot is graded instead.
func GradeBoardHandler(c echo.Context) error {
	type gradeBody struct {
		ProblemStatement string          `json:"problem_statement" validate:"required"`
		Snapshot         json.RawMessage `json:"snapshot,omitempty"`
	}

	type gradeErrorResponse struct {
		Message string `json:"message"`
	}

	data := new(gradeBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, gradeErrorResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, gradeErrorResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, gradeErrorResponse{
			Message: "Unauthorized",
		})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	raw := data.Snapshot
	if len(raw) == 0 {
		_, persisted, err := app.Boards.GetBoard(ctx, c.Param("id"), user.UserID)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, gradeErrorResponse{
				Message: "Board not found",
			})
		}
		if err != nil {
			logger.Error("Failed to fetch board for grading", "err", err)
			return c.JSON(http.StatusInternalServerError, gradeErrorResponse{
				Message: "Internal server error",
			})
		}
		raw = persisted
	}

	start := time.Now()
	result := app.Grader.Grade(ctx, user.UserID, diagram.ParseSnapshot(raw), data.ProblemStatement)
	metrics.GradeDuration.Observe(time.Since(start).Seconds())
	metrics.GradeRequests.WithLabelValues(gradeOutcome(result)).Inc()

	return c.JSON(gradeStatus(result), result)
}

func gradeOutcome(result grader.Result) string {
	switch {
	case result.Success:
		return metrics.OutcomeSuccess
	case result.Error == grader.MsgQuotaExceeded:
		return metrics.OutcomeQuota
	case result.Error == grader.MsgEmptyBoard:
		return metrics.OutcomeEmptyBoard
	default:
		return metrics.OutcomeOracleFailed
	}
}

func gradeStatus(result grader.Result) int {
	switch {
	case result.Success:
		return http.StatusOK
	case result.Error == grader.MsgQuotaExceeded:
		return http.StatusTooManyRequests
	case result.Error == grader.MsgEmptyBoard:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
