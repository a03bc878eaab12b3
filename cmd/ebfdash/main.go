// Command ebfdash is a terminal snapshot of the event dashboard. It
// authenticates against the EBF backend, reuses a file-backed session across
// runs, and serves repeated widget reads from the response cache.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ebfdash/studentapi/core/cache"
	"github.com/ebfdash/studentapi/core/client"
	"github.com/ebfdash/studentapi/core/config"
	"github.com/ebfdash/studentapi/core/session"
	"github.com/ebfdash/studentapi/integration/redis"
	"github.com/ebfdash/studentapi/pkg/logger"
)

type appConfig struct {
	AppName string `env:"APP_NAME" envDefault:"ebfdash"`
	Env     string `env:"APP_ENV" envDefault:"development"`

	Username string `env:"EBF_USERNAME"`
	Password string `env:"EBF_PASSWORD"`

	// RedisCache switches the widget cache from in-process memory to a
	// shared Redis instance configured through REDIS_URL.
	RedisCache bool          `env:"EBF_CACHE_REDIS"`
	CacheTTL   time.Duration `env:"EBF_CACHE_TTL" envDefault:"12h"`

	API   client.Config
	Redis redis.Config
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ebfdash:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(logger.WithDevelopment(cfg.AppName))
	if cfg.Env == "production" {
		log = logger.New(logger.WithProduction(cfg.AppName))
	}

	if cfg.API.SessionFile == "" {
		cfg.API.SessionFile = session.DefaultSessionPath()
	}
	c := client.NewFromConfig(cfg.API, client.WithLogger(log))

	if !c.IsAuthenticated() {
		if cfg.Username == "" || cfg.Password == "" {
			return fmt.Errorf("no stored session; set EBF_USERNAME and EBF_PASSWORD to log in")
		}
		if _, err := c.Login(ctx, client.Credentials{Username: cfg.Username, Password: cfg.Password}); err != nil {
			return fmt.Errorf("login: %w", err)
		}
	}
	log.InfoContext(ctx, "authenticated", logger.Component("ebfdash"))

	store, err := newCacheStore(ctx, cfg)
	if err != nil {
		return err
	}

	return printDashboard(ctx, c, store)
}

// newCacheStore picks the widget cache backend. Memory suits a single
// terminal; Redis lets several dashboards share one cache.
func newCacheStore(ctx context.Context, cfg appConfig) (cache.Store, error) {
	if !cfg.RedisCache {
		return cache.NewMemoryStore(cache.WithTTL(cfg.CacheTTL)), nil
	}
	rc, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis cache: %w", err)
	}
	return redis.NewStore(rc, redis.WithStoreTTL(cfg.CacheTTL)), nil
}

func printDashboard(ctx context.Context, c *client.Client, store cache.Store) error {
	summary := cache.NewFetcher(store, "event:summary",
		func(ctx context.Context) (*client.EventSummary, error) { return c.EventSummary(ctx) }, nil)
	today := cache.NewFetcher(store, "today:summary",
		func(ctx context.Context) (*client.TodaySummary, error) { return c.TodaySummary(ctx) }, nil)
	top := cache.NewFetcher(store, "performance:top",
		func(ctx context.Context) ([]client.PerformanceRanking, error) { return c.TopPerformers(ctx, 10) }, nil)

	ev, err := summary.Load(ctx, false)
	if err != nil {
		return err
	}
	if ev == nil {
		return fmt.Errorf("event summary unavailable")
	}
	fmt.Printf("%s: day %d of %d, %d registered\n",
		ev.EventName, ev.CurrentDay, ev.TotalDays, ev.TotalRegistered)

	if td, err := today.Load(ctx, false); err == nil && td != nil {
		fmt.Printf("today: %d of %d present, %d points awarded\n",
			td.PresentCount, td.TotalStudents, td.PointsAwardedToday)
	}

	rankings, err := top.Load(ctx, false)
	if err != nil {
		return err
	}
	fmt.Println("top performers:")
	for i, r := range rankings {
		fmt.Printf("  %2d. %-24s %4d pts (%s)\n", i+1, r.Name, r.TotalPoints, r.Class)
	}
	return nil
}
