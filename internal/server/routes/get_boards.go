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

// GetBoardsHandler lists the caller's boards, most recently updated first.
func GetBoardsHandler(c echo.Context) error {
	type getBoardsResponse struct {
		Message string        `json:"message,omitempty"`
		Boards  []store.Board `json:"boards,omitempty"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, getBoardsResponse{
			Message: "Unauthorized",
		})
	}

	app := c.(*middleware.AppContext).App
	boards, err := app.Boards.ListBoards(c.Request().Context(), user.UserID)
	if err != nil {
		logger.Error("Failed to list boards", "err", err)
		return c.JSON(http.StatusInternalServerError, getBoardsResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getBoardsResponse{Boards: boards})
}

// GetBoardHandler returns one board along with its snapshot payload.
func GetBoardHandler(c echo.Context) error {
	type getBoardResponse struct {
		Message  string          `json:"message,omitempty"`
		Board    *store.Board    `json:"board,omitempty"`
		Snapshot json.RawMessage `json:"snapshot,omitempty"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, getBoardResponse{
			Message: "Unauthorized",
		})
	}

	app := c.(*middleware.AppContext).App
	board, snapshot, err := app.Boards.GetBoard(c.Request().Context(), c.Param("id"), user.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, getBoardResponse{
			Message: "Board not found",
		})
	}
	if err != nil {
		logger.Error("Failed to fetch board", "err", err)
		return c.JSON(http.StatusInternalServerError, getBoardResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getBoardResponse{
		Board:    &board,
		Snapshot: snapshot,
	})
}
