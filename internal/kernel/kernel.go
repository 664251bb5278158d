// Package kernel boots the chefmenu process: logging, the menu catalog and
// its listeners, card storage, the rate limiter, the HTTP application and
// the card publishing schedule.
//
// This package is internal. cmd/chefmenu is its only caller.
package kernel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/chefmenu/app/catalog"
	"github.com/shashiranjanraj/chefmenu/app/graph"
	"github.com/shashiranjanraj/chefmenu/app/listeners"
	"github.com/shashiranjanraj/chefmenu/app/routes"
	"github.com/shashiranjanraj/chefmenu/app/services"
	"github.com/shashiranjanraj/chefmenu/config"
	"github.com/shashiranjanraj/chefmenu/pkg/app"
	"github.com/shashiranjanraj/chefmenu/pkg/cache"
	"github.com/shashiranjanraj/chefmenu/pkg/event"
	"github.com/shashiranjanraj/chefmenu/pkg/logger"
	"github.com/shashiranjanraj/chefmenu/pkg/middleware"
	"github.com/shashiranjanraj/chefmenu/pkg/router"
	"github.com/shashiranjanraj/chefmenu/pkg/schedule"
	"github.com/shashiranjanraj/chefmenu/pkg/storage"
)

// Kernel owns every long-lived dependency of the process.
type Kernel struct {
	Menu   *catalog.Catalog
	Events *event.Dispatcher
	Disks  *storage.Manager
	Cards  *services.CardPublisher
	Schema graphql.Schema
	App    *app.Application

	cache *cache.Store
	mongo *logger.MongoHandler
}

// Options tweak Boot. The zero value reads everything from config.
type Options struct {
	Log io.Writer
	Now func() time.Time
}

// Boot wires the process from config. External services that are
// configured but unreachable degrade: Mongo logging is skipped and the rate
// limiter falls back to memory.
func Boot(ctx context.Context, opts Options) (*Kernel, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	k := &Kernel{}
	k.setupLogger(opts.Log)

	k.Menu, k.Events = NewMenu()
	if config.SeedMenu() {
		if err := catalog.SeedSample(k.Menu); err != nil {
			return nil, err
		}
		logger.Info("sample menu seeded", "items", k.Menu.TotalCount())
	}

	disks, err := storage.FromConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	k.Disks = disks
	k.Cards = services.NewCardPublisher(k.Menu, k.Disks, opts.Now)

	k.Schema, err = graph.NewSchema(k.Menu)
	if err != nil {
		return nil, fmt.Errorf("graphql schema: %w", err)
	}

	k.App = NewApplication(routes.Deps{
		Menu:   k.Menu,
		Disks:  k.Disks,
		Cards:  k.Cards,
		Schema: k.Schema,
		Chef:   config.ChefName(),
		Now:    opts.Now,
	}, k.limiter(ctx))
	return k, nil
}

// NewMenu returns an empty catalog whose events feed the menu listeners.
func NewMenu() (*catalog.Catalog, *event.Dispatcher) {
	d := event.New()
	menu := catalog.New(catalog.WithEvents(d))
	listeners.Register(d, menu)
	return menu, d
}

// NewApplication mounts the API routes behind the global middleware stack.
// A nil limiter disables rate limiting.
func NewApplication(d routes.Deps, limiter middleware.Limiter) *app.Application {
	a := app.New()
	if limiter != nil {
		a.RateLimiter(limiter)
	}
	return a.Routes(func(r *router.Router) { routes.RegisterAPI(r, d) })
}

// Scheduler republishes the full menu card to the default disk every
// interval. It returns nil when every is not positive.
func (k *Kernel) Scheduler(every time.Duration, opts ...schedule.Option) *schedule.Scheduler {
	if every <= 0 {
		return nil
	}
	s := schedule.New(opts...)
	s.Every(every).Name("menu-card").WithoutOverlapping().Run(func(ctx context.Context) {
		if _, err := k.Cards.Publish(ctx, ""); err != nil {
			logger.Error("scheduled menu card failed", "error", err)
		}
	})
	return s
}

func (k *Kernel) setupLogger(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	var extra []slog.Handler
	if uri := config.LogMongoURI(); uri != "" {
		h, err := logger.NewMongoHandler(uri, config.LogMongoDatabase(), config.LogMongoCollection(), slog.LevelInfo)
		if err != nil {
			logger.Setup(config.AppEnv(), w)
			logger.Warn("mongo log sink disabled", "error", err)
			return
		}
		k.mongo = h
		extra = append(extra, h)
	}
	logger.Setup(config.AppEnv(), w, extra...)
}

func (k *Kernel) limiter(ctx context.Context) middleware.Limiter {
	perMinute := config.RateLimitPerMinute()
	if perMinute <= 0 {
		return nil
	}
	if addr := config.RedisAddr(); addr != "" {
		store, err := cache.Connect(ctx, addr, config.RedisPassword(), "chefmenu:")
		if err == nil {
			k.cache = store
			logger.Info("rate limiter using redis", "addr", addr)
			return middleware.NewRedisLimiter(store, perMinute, time.Minute)
		}
		logger.Warn("redis unavailable, rate limiting in memory", "addr", addr, "error", err)
	}
	return middleware.NewMemoryLimiter(perMinute, time.Minute)
}

// Close releases external connections.
func (k *Kernel) Close(ctx context.Context) error {
	var errs []error
	if k.cache != nil {
		errs = append(errs, k.cache.Close())
	}
	if k.mongo != nil {
		errs = append(errs, k.mongo.Close(ctx))
	}
	return errors.Join(errs...)
}
