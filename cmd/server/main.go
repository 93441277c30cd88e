package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devradar/devradar/app/aggregator"
	"github.com/devradar/devradar/app/api"
	"github.com/devradar/devradar/app/cfg"
	"github.com/devradar/devradar/app/database"
	"github.com/devradar/devradar/app/httpclient"
	"github.com/devradar/devradar/app/sources"
	"github.com/devradar/devradar/app/tasks"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	log.Printf("Starting DevRadar server (version %s)...", appCfg.Version)

	log.Println("Connecting to database...")
	db, err := database.NewConnection(
		appCfg.DBHost, appCfg.DBPort, appCfg.DBUser,
		appCfg.DBPassword, appCfg.DBName)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}
	log.Printf("Database migrated (version %d, dirty: %v)", version, dirty)

	// Repositories
	contentRepo := database.NewContentItemRepository(db)
	sourceRepo := database.NewSourceStoreRepository(db)
	categoryRepo := database.NewCategoryStoreRepository(db)
	tagRepo := database.NewTagStoreRepository(db)
	batchRepo := database.NewScrapeBatchRepository(db)

	// Fetchers share one retrying HTTP client
	client := httpclient.New(
		time.Duration(appCfg.FetchTimeout)*time.Second,
		appCfg.FetchRetries,
		appCfg.UserAgent)

	fetchers := map[string]aggregator.SourceFetcher{
		sources.SourceKindRSS:        sources.NewArticleFetcher(client),
		sources.SourceKindNewsletter: sources.NewNewsletterFetcher(client),
		sources.SourceKindPodcast:    sources.NewPodcastFetcher(client),
		sources.SourceKindReddit:     sources.NewRedditFetcher(client),
		sources.SourceKindYouTube:    sources.NewYouTubeFetcher(client, appCfg.YouTubeAPIKey),
		sources.SourceKindGitHub:     sources.NewGitHubFetcher(client),
	}

	categorizer, err := aggregator.NewCategorizer(categoryRepo)
	if err != nil {
		log.Fatal("Failed to initialize categorizer: ", err)
	}

	agg := aggregator.New(
		sourceRepo, contentRepo, batchRepo, tagRepo,
		fetchers,
		sources.NewHackerNewsEnhancer(client),
		aggregator.NewTimeFilter(appCfg.MaxItemAgeHours),
		aggregator.NewPopularityFilter(),
		aggregator.NewDeduplicator(contentRepo),
		aggregator.NewScorer(),
		categorizer,
		appCfg.MinQualityScore)

	log.Printf("Starting background scheduler (interval %dh, %d workers)...",
		appCfg.SchedulerInterval, appCfg.WorkerCount)
	scheduler := tasks.NewScheduler(agg)
	scheduler.Start()
	defer scheduler.Stop()

	log.Println("Initializing HTTP server...")
	apiHandler := api.NewHandler(contentRepo, agg, scheduler, appCfg.Version)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("DevRadar started successfully")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	log.Println("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	log.Println("DevRadar shutdown complete")
}
