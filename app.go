package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bar-website/bot"
	"bar-website/config"
	"bar-website/db"
	"bar-website/models"
	"bar-website/services"
	"bar-website/store"
)

type backend interface {
	services.MenuStore
	services.MessageStore
	services.AdminStore
}

// app holds the wired services for one process.
type app struct {
	menu    *services.MenuService
	contact *services.ContactService
	admin   *services.AdminService
	auth    *services.AuthService
	images  *store.LocalImages
	close   func()
}

func openBackend(ctx context.Context, cfg *config.Config, log *zap.Logger) (backend, func(), error) {
	switch cfg.Store {
	case "memory":
		log.Warn("using in-memory store; data is lost on restart")
		return store.NewMemory(), func() {}, nil
	case "postgres", "":
		if err := db.Init(ctx, cfg.DB); err != nil {
			return nil, nil, fmt.Errorf("db: %w", err)
		}
		if cfg.AutoMigrate {
			if err := applyMigrations(ctx, log); err != nil {
				db.Close()
				return nil, nil, fmt.Errorf("migrate: %w", err)
			}
		}
		return store.NewPostgres(db.Pool), db.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE %q", cfg.Store)
}

func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	be, closeFn, err := openBackend(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	var notifier services.Notifier = bot.NoopNotifier{}
	tg, err := bot.NewContactNotifier(cfg.Telegram, log)
	if err != nil {
		log.Warn("telegram notifier disabled", zap.Error(err))
	} else if tg != nil {
		notifier = tg
	}

	images := store.NewLocalImages(cfg.Uploads.Dir, cfg.Uploads.URLPrefix)
	watcher := services.NewSessionWatcher()
	watcher.Subscribe(func(ev models.SessionEvent) {
		log.Info("admin session changed", zap.String("email", ev.Email), zap.Bool("signedIn", ev.SignedIn))
	})

	return &app{
		menu:    services.NewMenuService(be, log),
		contact: services.NewContactService(be, notifier, log),
		admin:   services.NewAdminService(be, be, images, log),
		auth:    services.NewAuthService(be, cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, watcher, log),
		images:  images,
		close:   closeFn,
	}, nil
}
