package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"countrydex/api"
	"countrydex/config"
	"countrydex/database"
	"countrydex/events"
	"countrydex/feeds"
	"countrydex/metrics"
	"countrydex/repository"
	"countrydex/service"
)

func setupLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}
}

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	setupLogging(cfg)

	log.Info("Starting countrydex...")

	if err := database.RunMigrationsWithURL(cfg.DatabaseURL()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := database.NewConnection(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established")

	eventBus := events.NewBus()

	countryRepo := repository.NewCountryRepository(db)
	metadataRepo := repository.NewRefreshMetadataRepository(db)

	timeout := time.Duration(cfg.APITimeoutSeconds) * time.Second
	countryFeed := feeds.NewCountryClient(cfg.CountriesAPIURL, timeout)
	rateFeed := feeds.NewRateClient(cfg.ExchangeAPIURL, timeout)

	countryService := service.NewCountryService(countryRepo, metadataRepo, eventBus)
	refreshService := service.NewRefreshService(countryRepo, metadataRepo, countryFeed, rateFeed, eventBus)
	renderer := service.NewSummaryImageService(countryRepo, metadataRepo, cfg.ImagePath)

	// Summary image regeneration is best-effort: failures are logged and
	// never surface through the refresh result.
	eventBus.Subscribe(events.EventTypeRefreshCompleted, func(ctx context.Context, event events.Event) {
		if err := renderer.Render(ctx); err != nil {
			metrics.ImageRenderFailuresTotal.Inc()
			log.WithError(err).Error("Failed to render summary image")
		}
	})

	if cfg.WebhookEnabled() {
		notifier, err := service.NewNotifier(cfg.DiscordWebhookID, cfg.DiscordWebhookToken)
		if err != nil {
			return fmt.Errorf("failed to initialize notifier: %w", err)
		}
		eventBus.Subscribe(events.EventTypeRefreshCompleted, func(ctx context.Context, event events.Event) {
			e := event.(events.RefreshCompletedEvent)
			if err := notifier.NotifyRefresh(e.Count, e.Timestamp); err != nil {
				log.WithError(err).Warn("Failed to send refresh notification")
			}
		})
		log.Info("Discord refresh notifications enabled")
	}

	eventBus.Subscribe(events.EventTypeCountryDeleted, func(ctx context.Context, event events.Event) {
		e := event.(events.CountryDeletedEvent)
		log.WithField("name", e.Name).Info("Country deleted")
	})

	handler := api.NewHandler(countryService, refreshService, cfg.ImagePath)
	app := api.NewApp(handler)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.HTTPAddr)
	}()
	log.WithField("addr", cfg.HTTPAddr).Info("HTTP server listening")

	select {
	case err := <-errCh:
		db.Close()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Warn("HTTP server shutdown error")
	}
	db.Close()
	log.Info("Shutdown completed")

	return nil
}
