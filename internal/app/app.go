package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/brandvault/brandvault-backend/internal/handlers"
	"github.com/brandvault/brandvault-backend/internal/observability"
	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/repos"
	"github.com/brandvault/brandvault-backend/internal/server"
	"github.com/brandvault/brandvault-backend/internal/services"
	"github.com/brandvault/brandvault-backend/internal/sharelink"
	"github.com/brandvault/brandvault-backend/internal/snapshot"
)

type Services struct {
	Asset   services.AssetService
	Share   services.ShareService
	Bulk    services.BulkService
	Library services.LibraryService
	Export  services.ExportService
	Bucket  services.BucketService
}

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Repo     *repos.AssetRepo
	Services Services
	Router   *gin.Engine

	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	ctx := context.Background()
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	store, err := buildSnapshotStore(cfg, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init snapshot store: %w", err)
	}

	issuer := sharelink.NewIssuer(log)
	repo := repos.NewAssetRepo(log, store, issuer)
	if err := repo.Load(ctx); err != nil {
		log.Sync()
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if err := seedSettings(ctx, cfg, repo); err != nil {
		log.Sync()
		return nil, err
	}

	var bucket services.BucketService
	if cfg.StorageEnabled {
		bucket, err = services.NewBucketService(log)
		if err != nil {
			log.Warn("object storage init failed, uploads disabled", "error", err)
			bucket = nil
		}
	}
	var fetcher services.ContentFetcher
	if f, ok := bucket.(services.ContentFetcher); ok {
		fetcher = f
	}

	origin := repo.Settings().Origin
	if origin == "" {
		origin = cfg.Origin
	}

	serviceset := Services{
		Asset:   services.NewAssetService(log, repo, bucket),
		Share:   services.NewShareService(log, repo, origin),
		Bulk:    services.NewBulkService(log, repo),
		Library: services.NewLibraryService(log, repo),
		Export:  services.NewExportService(log, repo, fetcher),
		Bucket:  bucket,
	}

	router := server.NewRouter(server.RouterConfig{
		ServiceName:        cfg.ServiceName,
		AllowOrigins:       cfg.AllowOrigins,
		HealthcheckHandler: handlers.NewHealthcheckHandler(),
		AssetHandler:       handlers.NewAssetHandler(log, serviceset.Asset),
		ShareHandler:       handlers.NewShareHandler(log, serviceset.Share),
		CollectionHandler:  handlers.NewCollectionHandler(log, serviceset.Library),
		GuidelinesHandler:  handlers.NewGuidelinesHandler(log, serviceset.Library),
		AnalyticsHandler:   handlers.NewAnalyticsHandler(log, serviceset.Library),
		BulkHandler:        handlers.NewBulkHandler(log, serviceset.Bulk),
		ExportHandler:      handlers.NewExportHandler(log, serviceset.Export),
	})

	return &App{
		Log:          log,
		Cfg:          cfg,
		Repo:         repo,
		Services:     serviceset,
		Router:       router,
		otelShutdown: otelShutdown,
	}, nil
}

func buildSnapshotStore(cfg Config, log *logger.Logger) (snapshot.Store, error) {
	switch cfg.SnapshotBackend {
	case "sqlite":
		return snapshot.NewGormStore(cfg.SnapshotPath, log)
	case "file", "":
		return snapshot.NewFileStore(cfg.SnapshotPath, log), nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.SnapshotBackend)
	}
}

// seedSettings applies the settings file only when the snapshot carried no
// settings of its own.
func seedSettings(ctx context.Context, cfg Config, repo *repos.AssetRepo) error {
	seed, err := LoadSettingsFile(cfg.SettingsFile)
	if err != nil {
		return err
	}
	if seed == nil {
		return nil
	}
	current := repo.Settings()
	if current.Origin != "" || current.DefaultClientID != "" || len(current.DefaultContexts) > 0 {
		return nil
	}
	return repo.SetSettings(ctx, *seed)
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Starting server", "port", a.Cfg.Port)
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		_ = a.otelShutdown(context.Background())
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
