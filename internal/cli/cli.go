// Package cli implements the gridironctl one-shot command tree.
package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fortuna/gridiron/internal/checkpoint"
	"github.com/fortuna/gridiron/internal/config"
	"github.com/fortuna/gridiron/internal/crawl"
	"github.com/fortuna/gridiron/internal/features"
	"github.com/fortuna/gridiron/internal/fetch"
	"github.com/fortuna/gridiron/internal/publisher"
	"github.com/fortuna/gridiron/internal/scrape"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
	"github.com/fortuna/gridiron/internal/teams"
)

var (
	flagDataDir string
	flagBrowser bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gridironctl",
		Short: "One-shot NFL box score scraping and feature pipeline runs",
		Long: `gridironctl runs the same scrape and transform operations as the
gridiron service, but as one-shot commands that exit when done.
Configuration comes from GRIDIRON_* environment variables or the YAML
file named by GRIDIRON_CONFIG.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Override the feature pipeline data directory")
	cmd.PersistentFlags().BoolVar(&flagBrowser, "browser", false, "Fetch pages with a headless browser")

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newTransformCmd())

	return cmd
}

func newScrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "scrape [all|recent]",
		Short:     "Scrape box scores into the database",
		Long:      "Scrape box scores: 'all' backfills every season, 'recent' resumes from the checkpoint.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(scrape.ModeAll), string(scrape.ModeRecent)},
		RunE:      runScrape,
	}
}

func newTransformCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "transform [all|expand|split|stagger|preprocess]",
		Short:     "Run the feature pipeline over the persisted game table",
		Long:      "Run the feature pipeline: 'all' exports and runs every stage, a stage name runs that stage alone.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"all", "expand", "split", "stagger", "preprocess"},
		RunE:      runTransform,
	}
}

// env holds the wired collaborators a command needs.
type env struct {
	cfg      *config.Config
	db       *store.Database
	aliases  *teams.Aliases
	statRepo *repository.StatRepository

	closers []func()
}

func (e *env) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

// setup wires the database and alias table shared by every command.
func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagBrowser {
		cfg.UseBrowser = true
	}

	db, err := store.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	e := &env{cfg: cfg, db: db}
	e.closers = append(e.closers, func() { db.Close() })

	if err := db.Migrate(); err != nil {
		e.close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	aliases, err := teams.LoadAliases(cfg.TeamAliasFile)
	if err != nil {
		e.close()
		return nil, fmt.Errorf("loading team aliases from %s: %w", cfg.TeamAliasFile, err)
	}

	e.aliases = aliases
	e.statRepo = repository.NewStatRepository(db)
	return e, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runScrape(cmd *cobra.Command, args []string) error {
	mode := scrape.Mode(args[0])

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	checkpoints, err := checkpoint.NewStore(e.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connecting to Redis: %w", err)
	}
	defer checkpoints.Close()

	var fetcher fetch.Fetcher
	if e.cfg.UseBrowser {
		browser, err := fetch.NewBrowserFetcher()
		if err != nil {
			return fmt.Errorf("starting browser fetcher: %w", err)
		}
		defer browser.Close()
		fetcher = browser
	} else {
		fetcher = fetch.NewHTTPFetcher()
	}

	scraper := scrape.NewService(scrape.Deps{
		Driver:      crawl.NewDriver(fetcher, e.cfg.BaseURL, e.cfg.Workers),
		Fetcher:     fetcher,
		DB:          e.db,
		Teams:       repository.NewTeamRepository(e.db, e.aliases),
		Stadiums:    repository.NewStadiumRepository(e.db, fetch.NewHTTPFetcher()),
		Games:       repository.NewGameRepository(e.db),
		Stats:       e.statRepo,
		Players:     repository.NewPlayerRepository(e.db),
		Checkpoints: checkpoints,
		Publisher:   publisher.NewRedisStreamPublisher(checkpoints.Client()),
	})

	ctx, cancel := signalContext()
	defer cancel()

	if mode == scrape.ModeAll {
		err = scraper.ScrapeAll(ctx)
	} else {
		err = scraper.ScrapeRecent(ctx)
	}
	if err != nil {
		return fmt.Errorf("scrape %s: %w", mode, err)
	}

	run := scraper.Status()
	log.Printf("✓ Scrape complete: %d games scraped, %d skipped", run.GamesScraped, run.GamesSkipped)
	return nil
}

func runTransform(cmd *cobra.Command, args []string) error {
	stage := args[0]
	if stage != "all" {
		if _, err := features.ParseStage(stage); err != nil {
			return err
		}
	}

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	if err := os.MkdirAll(e.cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory %s: %w", e.cfg.DataDir, err)
	}

	svc := features.NewService(e.statRepo, e.aliases, e.cfg.DataDir)

	ctx, cancel := signalContext()
	defer cancel()

	if stage == "all" {
		err = svc.RunAll(ctx)
	} else {
		err = svc.RunStage(ctx, stage)
	}
	if err != nil {
		return fmt.Errorf("transform %s: %w", stage, err)
	}
	return nil
}
