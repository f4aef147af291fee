package routes

import (
	"errors"
	"net/http"

	"github.com/johnkimo5/architect-design-ai/internal/server/middleware"
	"github.com/johnkimo5/architect-design-ai/internal/store"
	"github.com/johnkimo5/architect-design-ai/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DeleteBoardHandler removes a board and its snapshot.
func DeleteBoardHandler(c echo.Context) error {
	type deleteBoardResponse struct {
		Message string `json:"message"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, deleteBoardResponse{
			Message: "Unauthorized",
		})
	}

	app := c.(*middleware.AppContext).App
	err := app.Boards.DeleteBoard(c.Request().Context(), c.Param("id"), user.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, deleteBoardResponse{
			Message: "Board not found",
		})
	}
	if err != nil {
		logger.Error("Failed to delete board", "err", err)
		return c.JSON(http.StatusInternalServerError, deleteBoardResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, deleteBoardResponse{
		Message: "Board deleted",
	})
}
