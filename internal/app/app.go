package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/text/language"

	"github.com/objectifs/objectifs/internal/ai"
	"github.com/objectifs/objectifs/internal/config"
	"github.com/objectifs/objectifs/internal/db"
	"github.com/objectifs/objectifs/internal/markdown"
	"github.com/objectifs/objectifs/internal/report"
	"github.com/objectifs/objectifs/internal/repository"
	"github.com/objectifs/objectifs/internal/scheduler"
	"github.com/objectifs/objectifs/internal/service"
	"github.com/objectifs/objectifs/internal/storage"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	AuthService         *service.AuthService
	UserService         *service.UserService
	EmailService        *service.EmailService
	ObjectiveService    *service.ObjectiveService
	ResourceService     *service.ResourceService
	FinanceService      *service.FinanceService
	ConversationService *service.ConversationService
	QuranService        *service.QuranService
	ArticleService      *service.ArticleService
	ExportService       *service.ExportService
	FileService         *service.FileService
	Scheduler           *scheduler.Scheduler
}

// New opens the database, applies pending migrations and wires every service.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	fileStorage, err := storage.New(ctx, cfg)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	a, err := Build(cfg, database, fileStorage, time.Now)
	if err != nil {
		database.Close()
		return nil, err
	}
	return a, nil
}

// Build wires services over an open database. fileStorage may be nil.
func Build(cfg *config.Config, database *sqlx.DB, fileStorage storage.Storage, now func() time.Time) (*App, error) {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	objectiveRepository := repository.NewObjectiveRepository(database)
	resourceRepository := repository.NewResourceRepository(database)
	financeRepository := repository.NewFinanceRepository(database)
	settingsRepository := repository.NewSettingsRepository(database)
	conversationRepository := repository.NewConversationRepository(database)
	quranRepository := repository.NewQuranRepository(database)
	articleRepository := repository.NewArticleRepository(database)
	fileRepository := repository.NewFileRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(userRepository, emailService, cfg.JWTSecret, cfg.JWTExpiry, now)
	userService := service.NewUserService(userRepository)
	objectiveService := service.NewObjectiveService(objectiveRepository, now)
	resourceService := service.NewResourceService(resourceRepository, objectiveService, now)
	financeService := service.NewFinanceService(financeRepository, settingsRepository, cfg.DefaultCurrency, now)
	conversationService := service.NewConversationService(conversationRepository, objectiveService, completer(cfg), now)
	articleService := service.NewArticleService(articleRepository, markdown.NewParser(), now)

	quranService, err := service.NewQuranService(quranRepository)
	if err != nil {
		return nil, fmt.Errorf("failed to load surah catalog: %w", err)
	}

	exportService := service.NewExportService(objectiveService, userRepository, report.NewAssembler(reportLanguage(cfg.ReportLanguage)), now)
	fileService := service.NewFileService(fileRepository, fileStorage, exportService, now)

	sweeps, err := scheduler.New(cfg.SweepSchedule, time.Local, objectiveService)
	if err != nil {
		return nil, err
	}

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		AuthService:         authService,
		UserService:         userService,
		EmailService:        emailService,
		ObjectiveService:    objectiveService,
		ResourceService:     resourceService,
		FinanceService:      financeService,
		ConversationService: conversationService,
		QuranService:        quranService,
		ArticleService:      articleService,
		ExportService:       exportService,
		FileService:         fileService,
		Scheduler:           sweeps,
	}, nil
}

// completer chains the configured providers, OpenAI first.
func completer(cfg *config.Config) *ai.Chain {
	var providers []ai.Provider
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, ai.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel))
	}
	if cfg.DeepSeekAPIKey != "" {
		providers = append(providers, ai.NewDeepSeek(cfg.DeepSeekAPIKey, cfg.DeepSeekBaseURL, cfg.DeepSeekModel))
	}
	if len(providers) == 0 {
		slog.Warn("no AI provider configured, replies will use the fallback text")
	}
	return ai.NewChain(cfg.AITimeout, providers...)
}

func reportLanguage(tag string) language.Tag {
	t, err := language.Parse(tag)
	if err != nil {
		slog.Warn("invalid report language, using English", "language", tag, "error", err)
		return language.English
	}
	return t
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
