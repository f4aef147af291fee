package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mid "github.com/johnkimo5/architect-design-ai/internal/server/middleware"
	"github.com/johnkimo5/architect-design-ai/internal/store"
	"github.com/johnkimo5/architect-design-ai/internal/util"
	"github.com/johnkimo5/architect-design-ai/pkg/ai"
	oai "github.com/johnkimo5/architect-design-ai/pkg/ai/ollama"
	gai "github.com/johnkimo5/architect-design-ai/pkg/ai/openai"
	"github.com/johnkimo5/architect-design-ai/pkg/grader"
	"github.com/johnkimo5/architect-design-ai/pkg/logger"
	"github.com/johnkimo5/architect-design-ai/pkg/ratelimit"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/go-playground/validator"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	jwksUrl := util.GetEnv("AUTH_URL") + "/jwks"
	k, err := keyfunc.NewDefault([]string{jwksUrl})
	if err != nil {
		logger.Fatal("Failed to load jwks keys", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	databaseURL := util.GetEnv("DATABASE_URL")
	runMigrations(databaseURL)

	conn, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", "err", err)
	}
	defer conn.Close()

	limiter := ratelimit.New(ratelimit.Config{
		Addr:     util.GetEnv("REDIS_ADDR"),
		Password: util.GetEnv("REDIS_PASSWORD"),
		DB:       int(util.GetEnvNumeric("REDIS_DB", 0)),
		Limit:    int(util.GetEnvNumeric("GRADE_RATE_LIMIT", ratelimit.DefaultLimit)),
		Window:   time.Duration(util.GetEnvNumeric("GRADE_RATE_WINDOW", 3600)) * time.Second,
	})

	gradeService := grader.NewGrader(grader.NewGraderParams{
		AiClient: newAIClient(),
		Limiter:  limiter,
		Model:    util.GetEnv("AI_GRADE_MODEL"),
	})

	app := &mid.App{
		DBConn:       conn,
		Key:          &k,
		Boards:       store.NewBoardStore(conn),
		Grader:       gradeService,
		MasterAPIKey: util.GetEnv("MASTER_API_KEY"),
		MasterUserID: util.GetEnv("MASTER_USER_ID"),
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("16M"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}

func runMigrations(databaseURL string) {
	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize migrations", "err", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Failed to run migrations", "err", err)
	}
}

// newAIClient selects the reasoning backend by AI_ADAPTER. The OpenAI
// adapter is the default and also covers OpenAI-compatible endpoints via
// AI_CHAT_URL.
func newAIClient() ai.GradeAIClient {
	switch util.GetEnv("AI_ADAPTER") {
	case "ollama":
		client, err := oai.NewOllamaClient(oai.NewOllamaClientParams{
			GradeModel: util.GetEnv("AI_GRADE_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 15)),
		})
		if err != nil {
			logger.Fatal("Failed to create Ollama client", "err", err)
		}
		return client
	default:
		client, err := gai.NewOpenAIClient(gai.NewOpenAIClientParams{
			GradeModel: util.GetEnv("AI_GRADE_MODEL"),

			ChatURL: util.GetEnv("AI_CHAT_URL"),
			ChatKey: util.GetEnv("AI_CHAT_KEY"),
		})
		if err != nil {
			logger.Fatal("Failed to create OpenAI client", "err", err)
		}
		return client
	}
}
