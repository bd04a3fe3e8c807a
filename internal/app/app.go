// Package app assembles the support bot: configuration, logging, stores and
// the Telegram wiring consumed by the core runtime.
package app

import (
	"context"
	"fmt"
	"log/slog"

	coreconfig "github.com/bibiti/supportbot/core/config"
	"github.com/bibiti/supportbot/core/logger"
	tg "github.com/bibiti/supportbot/core/telegram"
	"github.com/bibiti/supportbot/core/telegram/router"
	"github.com/bibiti/supportbot/core/telegram/state"
	"github.com/bibiti/supportbot/internal/bot"
	"github.com/bibiti/supportbot/internal/storage"
)

// Carrier wraps the loaded configuration for the cmd runner.
type Carrier struct {
	Cfg *coreconfig.Config
}

// CoreConfig implements cmd.ConfigCarrier.
func (c *Carrier) CoreConfig() *coreconfig.Config { return c.Cfg }

// LoadConfig reads and normalizes configuration from path.
func LoadConfig(path string) (*Carrier, error) {
	cfg, err := coreconfig.Load(path)
	if err != nil {
		return nil, err
	}
	return &Carrier{Cfg: cfg}, nil
}

// App holds the assembled application.
type App struct {
	cfg       *coreconfig.Config
	fsm       state.Manager
	directory *storage.Directory
	tickets   *storage.TicketStore
	bot       *bot.Bot
}

// New initializes logging and storage, then builds the bot. The user
// directory is loaded eagerly so a corrupt file fails startup instead of the
// first broadcast.
func New(cfg *coreconfig.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}

	if err := logger.InitLogger(cfg); err != nil {
		return nil, fmt.Errorf("app: logger init failed: %w", err)
	}

	directory := storage.NewDirectory(cfg.Storage.UsersFile)
	if err := directory.Load(context.Background()); err != nil {
		return nil, fmt.Errorf("app: user directory load failed: %w", err)
	}
	logger.Info(context.Background(), "app", "directory.loaded",
		slog.String("path", cfg.Storage.UsersFile),
		slog.Int("users", directory.Len()),
	)

	fsm := state.NewMemoryManager()
	tickets := storage.NewTicketStore()

	return &App{
		cfg:       cfg,
		fsm:       fsm,
		directory: directory,
		tickets:   tickets,
		bot:       bot.New(cfg, fsm, directory, tickets),
	}, nil
}

// TelegramRunOptions implements cmd.TelegramApp.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := tg.NewRegistry()
	a.bot.Register(reg)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoutes(a.fsm, reg, router.TextOptions{})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	middlewares := tg.DefaultMiddlewares(a.cfg, nil)
	middlewares = append(middlewares, a.bot.UpsertDirectoryMiddleware())

	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: middlewares,
		Routes:      routes,
		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			a.bot.SetAPI(rt.Bot)
			return nil
		},
		OnStop: func(ctx context.Context, rt tg.Runtime) error {
			a.bot.SetAPI(nil)
			return nil
		},
	}, nil
}
