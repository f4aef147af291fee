package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/johnkimo5/architect-design-ai/internal/server/middleware"
	"github.com/johnkimo5/architect-design-ai/internal/store"
	"github.com/johnkimo5/architect-design-ai/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SaveSnapshotHandler replaces a board's document snapshot. The payload is
// stored opaquely; it is only interpreted at grading time.
func SaveSnapshotHandler(c echo.Context) error {
	type saveSnapshotBody struct {
		Snapshot json.RawMessage `json:"snapshot" validate:"required"`
	}

	type saveSnapshotResponse struct {
		Message string `json:"message"`
	}

	data := new(saveSnapshotBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, saveSnapshotResponse{
			Message: "Invalid request body",
		})
	}
	if len(data.Snapshot) == 0 || !json.Valid(data.Snapshot) {
		return c.JSON(http.StatusBadRequest, saveSnapshotResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, saveSnapshotResponse{
			Message: "Unauthorized",
		})
	}

	app := c.(*middleware.AppContext).App
	err := app.Boards.SaveSnapshot(c.Request().Context(), c.Param("id"), user.UserID, data.Snapshot)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, saveSnapshotResponse{
			Message: "Board not found",
		})
	}
	if err != nil {
		logger.Error("Failed to save snapshot", "err", err)
		return c.JSON(http.StatusInternalServerError, saveSnapshotResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, saveSnapshotResponse{
		Message: "Snapshot saved",
	})
}
