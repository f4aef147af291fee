package routes

import (
	"errors"
	"net/http"

	"github.com/johnkimo5/architect-design-ai/internal/server/middleware"
	"github.com/johnkimo5/architect-design-ai/internal/store"
	"github.com/johnkimo5/architect-design-ai/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RenameBoardHandler updates a board's title.
func RenameBoardHandler(c echo.Context) error {
	type renameBoardBody struct {
		Title string `json:"title" validate:"required"`
	}

	type renameBoardResponse struct {
		Message string `json:"message"`
	}

	data := new(renameBoardBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, renameBoardResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, renameBoardResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, renameBoardResponse{
			Message: "Unauthorized",
		})
	}

	app := c.(*middleware.AppContext).App
	err := app.Boards.RenameBoard(c.Request().Context(), c.Param("id"), user.UserID, data.Title)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, renameBoardResponse{
			Message: "Board not found",
		})
	}
	if err != nil {
		logger.Error("Failed to rename board", "err", err)
		return c.JSON(http.StatusInternalServerError, renameBoardResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, renameBoardResponse{
		Message: "Board updated",
	})
}
