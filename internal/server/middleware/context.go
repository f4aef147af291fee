package middleware

import (
	"github.com/johnkimo5/architect-design-ai/internal/store"
	"github.com/johnkimo5/architect-design-ai/pkg/grader"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// AppUser is the authenticated caller resolved by AuthMiddleware.
type AppUser struct {
	UserID string
	Role   string
}

// App bundles the process-wide dependencies handlers need. Everything here
// is constructed once at server start and shared across requests.
type App struct {
	DBConn       *pgxpool.Pool
	Key          *keyfunc.Keyfunc
	Boards       *store.BoardStore
	Grader       grader.Service
	MasterAPIKey string
	MasterUserID string
}

// AppContext wraps the echo context with the app dependencies and the
// authenticated user (nil until AuthMiddleware has run).
type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

// AppContextMiddleware injects the shared App into every request context.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{c, app, nil})
		}
	}
}
