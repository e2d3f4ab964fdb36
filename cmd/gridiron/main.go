package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/gridiron/internal/api/rest"
	"github.com/fortuna/gridiron/internal/api/ws"
	"github.com/fortuna/gridiron/internal/checkpoint"
	"github.com/fortuna/gridiron/internal/config"
	"github.com/fortuna/gridiron/internal/crawl"
	"github.com/fortuna/gridiron/internal/features"
	"github.com/fortuna/gridiron/internal/fetch"
	"github.com/fortuna/gridiron/internal/publisher"
	"github.com/fortuna/gridiron/internal/scheduler"
	"github.com/fortuna/gridiron/internal/scrape"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
	"github.com/fortuna/gridiron/internal/teams"
)

const (
	serviceName    = "gridiron"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - NFL Box Score Service", serviceName, serviceVersion)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	db, err := store.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("✓ Connected to database")

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Franchise alias table
	aliases, err := teams.LoadAliases(cfg.TeamAliasFile)
	if err != nil {
		log.Fatalf("Failed to load team aliases from %s: %v", cfg.TeamAliasFile, err)
	}
	log.Printf("✓ Loaded %d team aliases", len(aliases.Names()))

	// Initialize Redis checkpoint store with retry logic
	var checkpoints *checkpoint.Store
	maxRetries := 30
	retryDelay := 2 * time.Second

	log.Println("Connecting to Redis...")
	for i := 0; i < maxRetries; i++ {
		checkpoints, err = checkpoint.NewStore(cfg.RedisURL)
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, maxRetries, err, retryDelay)
			time.Sleep(retryDelay)
		} else {
			log.Fatalf("Failed to connect to Redis after %d attempts: %v", maxRetries, err)
		}
	}
	defer checkpoints.Close()

	log.Println("✓ Connected to Redis")

	events := publisher.NewRedisStreamPublisher(checkpoints.Client())

	// Page fetcher
	var fetcher fetch.Fetcher
	if cfg.UseBrowser {
		browser, err := fetch.NewBrowserFetcher()
		if err != nil {
			log.Fatalf("Failed to start browser fetcher: %v", err)
		}
		defer browser.Close()
		fetcher = browser
		log.Println("✓ Browser fetcher started")
	} else {
		fetcher = fetch.NewHTTPFetcher()
	}

	// Repositories
	teamRepo := repository.NewTeamRepository(db, aliases)
	stadiumRepo := repository.NewStadiumRepository(db, fetch.NewHTTPFetcher())
	gameRepo := repository.NewGameRepository(db)
	statRepo := repository.NewStatRepository(db)
	playerRepo := repository.NewPlayerRepository(db)

	// WebSocket progress server
	wsServer := ws.NewServer()
	go func() {
		if err := wsServer.Start(cfg.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()

	// Scrape service
	scraper := scrape.NewService(scrape.Deps{
		Driver:      crawl.NewDriver(fetcher, cfg.BaseURL, cfg.Workers),
		Fetcher:     fetcher,
		DB:          db,
		Teams:       teamRepo,
		Stadiums:    stadiumRepo,
		Games:       gameRepo,
		Stats:       statRepo,
		Players:     playerRepo,
		Checkpoints: checkpoints,
		Publisher:   events,
		Reporter:    ws.NewProgressReporter(wsServer.Hub()),
	})

	// Daily incremental scrape
	var daily *scheduler.Scheduler
	if cfg.ScheduleEnabled {
		daily = scheduler.New(scraper, cfg.ScrapeHour)
		go daily.Start(context.Background())
	}

	// Feature pipeline service
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory %s: %v", cfg.DataDir, err)
	}
	featureSvc := features.NewService(statRepo, aliases, cfg.DataDir)

	// REST API server
	handler := rest.NewHandler(db, scraper, featureSvc, gameRepo, teamRepo, stadiumRepo, statRepo, playerRepo)
	restServer := rest.NewServer(cfg.APIPort, handler)
	go func() {
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)
	log.Printf("  REST API: http://0.0.0.0:%s", cfg.APIPort)
	log.Printf("  WebSocket: ws://0.0.0.0:%s/ws/progress", cfg.WSPort)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	if daily != nil {
		daily.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}
