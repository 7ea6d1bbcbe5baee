package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bar-website/web"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the public site and the admin dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(ctx context.Context, opts *rootOptions) error {
	cfg, log := opts.cfg, opts.log
	if err := cfg.Auth.CheckSecret(); err != nil {
		return err
	}
	gin.SetMode(gin.ReleaseMode)

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	srv, err := web.New(a.menu, a.contact, a.admin, a.auth, log, web.Options{
		CORSOrigins:  cfg.HTTP.CORSOrigins,
		CookieSecure: cfg.Auth.CookieSecure,
		UploadDir:    a.images.Dir(),
		UploadURL:    a.images.URLPrefix(),
	})
	if err != nil {
		return fmt.Errorf("build http server: %w", err)
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warn("http shutdown", zap.Error(err))
		}
	}()

	log.Info("bar website listening", zap.String("addr", cfg.HTTP.Addr), zap.String("store", cfg.Store))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped unexpectedly: %w", err)
	}
	return nil
}
