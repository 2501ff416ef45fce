package main

import (
	"context"
	"html/template"
	"log/slog"
	"os"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"time"

	"interviewsim/internal/ai"
	"interviewsim/internal/bank"
	"interviewsim/internal/envstruct"
	"interviewsim/internal/errors"
	"interviewsim/internal/interview"
	"interviewsim/internal/logging"
	"interviewsim/internal/pprofserver"
	"interviewsim/internal/repositories"
	"interviewsim/internal/sqlite"
)

type application struct {
	logger         *slog.Logger
	bank           *bank.Bank
	controller     *interview.Controller
	sessions       *interview.Manager
	sessionManager *scs.SessionManager
	users          *repositories.UserRepository
	interviews     *repositories.InterviewRepository
	htmx           *htmx.HTMX
	templates      map[string]*template.Template
}

type config struct {
	Addr         string `env:"INTERVIEWSIM_ADDR" envDefault:"localhost:4000"`
	SqliteURL    string `env:"INTERVIEWSIM_SQLITE_URL" envDefault:"./interviewsim.sqlite"`
	QuestionFile string `env:"INTERVIEWSIM_QUESTION_FILE" envDefault:"./questions.csv"`
	OpenAIKey    string `env:"OPENAI_API_KEY" envDefault:""`
	AIBaseURL    string `env:"INTERVIEWSIM_AI_BASE_URL" envDefault:""`
	TemplatePath string `env:"INTERVIEWSIM_TEMPLATE_PATH" envDefault:"./ui/templates"`
}

// run wires the application and serves it. Dependencies that tests want to
// fake come in as arguments, following the pattern from
// https://grafana.com/blog/2024/02/09/how-i-write-http-services-in-go-after-13-years/
func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse config")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL)
	if err != nil {
		return errors.Wrap(err, "connect database", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to database", slog.String("url", cfg.SqliteURL))

	questionBank := bank.New(cfg.QuestionFile, logger)
	if err = questionBank.Load(); err != nil {
		return errors.Wrap(err, "load question bank", slog.String("path", cfg.QuestionFile))
	}

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite.DB, 24*time.Hour)
	sessionManager.Lifetime = 12 * time.Hour

	templates, err := newTemplateCache(cfg.TemplatePath)
	if err != nil {
		return errors.Wrap(err, "parse templates", slog.String("path", cfg.TemplatePath))
	}

	users := repositories.NewUserRepository(db, logger)
	interviews := repositories.NewInterviewRepository(db, logger)
	aiClient := ai.NewClient(cfg.OpenAIKey, cfg.AIBaseURL)
	controller := interview.NewController(questionBank, aiClient, interviews, logger)

	app := application{
		logger:         logger,
		bank:           questionBank,
		controller:     controller,
		sessions:       interview.NewManager(),
		sessionManager: sessionManager,
		users:          users,
		interviews:     interviews,
		htmx:           htmx.New(),
		templates:      templates,
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}))
	logger := slog.New(loggerHandler)

	// The .env file is optional; environment variables win either way.
	_ = godotenv.Load()

	// Initialise pprof listening on localhost so that it's not open to the world.
	pprofserver.Launch(":6060", logger)

	if err := run(context.Background(), logger, os.LookupEnv); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
