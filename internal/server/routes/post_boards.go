package routes

import (
	"net/http"

	"github.com/johnkimo5/architect-design-ai/internal/server/middleware"
	"github.com/johnkimo5/architect-design-ai/internal/store"
	"github.com/johnkimo5/architect-design-ai/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CreateBoardHandler creates an empty board for the caller.
func CreateBoardHandler(c echo.Context) error {
	type createBoardBody struct {
		Title string `json:"title"`
	}

	type createBoardResponse struct {
		Message string       `json:"message,omitempty"`
		Board   *store.Board `json:"board,omitempty"`
	}

	data := new(createBoardBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createBoardResponse{
			Message: "Invalid request body",
		})
	}
	if data.Title == "" {
		data.Title = "Untitled Board"
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, createBoardResponse{
			Message: "Unauthorized",
		})
	}

	app := c.(*middleware.AppContext).App
	board, err := app.Boards.CreateBoard(c.Request().Context(), user.UserID, data.Title)
	if err != nil {
		logger.Error("Failed to create board", "err", err)
		return c.JSON(http.StatusInternalServerError, createBoardResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusCreated, createBoardResponse{
		Message: "Board created",
		Board:   &board,
	})
}
