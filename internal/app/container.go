package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"jobbify/internal/config"
	"jobbify/internal/database"
	"jobbify/internal/database/migration"
	dbpostgres "jobbify/internal/database/postgres"
	"jobbify/internal/domain/job"
	"jobbify/internal/enrich"
	"jobbify/internal/infrastructure/cache"
	"jobbify/internal/infrastructure/persistence/postgres"
	"jobbify/internal/janitor"
	"jobbify/internal/pipeline"
	"jobbify/internal/pkg/jwt"
	"jobbify/internal/repository"
	"jobbify/internal/source"
	"jobbify/internal/usecase"
	"jobbify/internal/ws"
)

// Container owns every long-lived dependency and wires the usecases. One
// instance per process.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Redis *cache.Redis
	Hub   *ws.Hub

	JWT     jwt.Service
	AuthUC  usecase.AuthUsecase
	FeedUC  *usecase.Feed
	RecsUC  *usecase.Recommendations
	SwipeUC *usecase.Swipes
	PrefsUC *usecase.Preferences

	Janitor *janitor.Janitor

	userRepo *postgres.UserRepository
	gemini   *enrich.Gemini
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	redis := cache.NewRedis(cfg.Redis, logger)
	hub := ws.NewHub(logger)
	go hub.Run()

	cacheRepo := repository.NewPostgresJobCacheRepository(db)
	swipeRepo := repository.NewPostgresSwipeRepository(db)
	prefsRepo := repository.NewPostgresPreferencesRepository(db)
	recRepo := repository.NewPostgresRecommendationRepository(db)

	userRepo, err := postgres.NewUserRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	var gemini *enrich.Gemini
	if cfg.Enrich.GeminiAPIKey != "" {
		gemini, err = enrich.NewGemini(ctx, cfg.Enrich.GeminiAPIKey, cfg.Enrich.GeminiModel)
		if err != nil {
			if logger != nil {
				logger.Printf("[App] Gemini unavailable, using manual extraction only: %v", err)
			}
			gemini = nil
		}
	}
	enrichSvc := enrich.NewService(nil, logger)
	if gemini != nil {
		enrichSvc = enrich.NewService(gemini, logger)
	}

	fetcher := buildFetcher(cfg, cacheRepo, logger)

	feedUC := usecase.NewFeed(
		fetcher,
		cacheRepo,
		swipeRepo,
		enrichSvc,
		ws.NewNotifier(hub),
		logger,
		cfg.Cache.JobTTL,
		cfg.Cache.CleanupChance,
	)
	recsUC := usecase.NewRecommendations(feedUC, prefsRepo, swipeRepo, recRepo, redis, logger)
	swipeUC := usecase.NewSwipes(swipeRepo, redis, logger)
	prefsUC := usecase.NewPreferences(prefsRepo, redis, logger)

	jan := janitor.New(cacheRepo, redis, logger, cfg.Cache.CleanupCronSpec)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Redis:    redis,
		Hub:      hub,
		JWT:      jwtSvc,
		AuthUC:   usecase.NewAuthUsecase(userRepo, jwtSvc),
		FeedUC:   feedUC,
		RecsUC:   recsUC,
		SwipeUC:  swipeUC,
		PrefsUC:  prefsUC,
		Janitor:  jan,
		userRepo: userRepo,
		gemini:   gemini,
	}, nil
}

// buildFetcher assembles the source chain: network providers in priority
// order, then the database cache, with the static set as the last resort.
// The whole result is re-sorted so jobs with a reachable logo render first.
func buildFetcher(cfg config.Config, cacheRepo repository.JobCacheRepository, logger *log.Logger) usecase.Fetcher {
	p := cfg.Providers

	sources := []source.Source{
		source.NewJSearch(p.JSearchAPIKey, p.JSearchBaseURLs, p.SourceTimeout),
		source.NewRemoteOK(p.RemoteOKBaseURL, p.SourceTimeout),
		source.NewArbeitnow(p.ArbeitnowBaseURL, p.SourceTimeout),
		source.NewBoard(p.BoardBaseURL, p.SourceTimeout),
		source.NewCached(cacheRepo),
	}

	orch := pipeline.New(logger, p.SourceTimeout, source.NewFallbackSet(), sources...)
	return &logoPrioritizingFetcher{
		inner:  orch,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

type logoPrioritizingFetcher struct {
	inner  *pipeline.Orchestrator
	client *http.Client
}

func (f *logoPrioritizingFetcher) Fetch(ctx context.Context, q source.Query) pipeline.Result {
	res := f.inner.Fetch(ctx, q)
	if job.Source(res.SourceName) != job.SourceFallback {
		res.Jobs = source.PrioritizeByLogo(ctx, f.client, res.Jobs)
	}
	return res
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Janitor != nil {
		c.Janitor.Stop()
	}
	if c.gemini != nil {
		_ = c.gemini.Close()
	}
	if c.userRepo != nil {
		_ = c.userRepo.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
