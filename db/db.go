package db

import (
	"context"
	"fmt"
	"net/url"

	"bar-website/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

var Pool *pgxpool.Pool

// ConnString builds a postgres URL; user and password are escaped.
func ConnString(cfg config.DBConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   "/" + cfg.Database,
	}
	return u.String()
}

func Init(ctx context.Context, cfg config.DBConfig) error {
	var err error
	Pool, err = pgxpool.New(ctx, ConnString(cfg))
	if err != nil {
		return err
	}
	return Pool.Ping(ctx)
}

func Close() {
	if Pool != nil {
		Pool.Close()
	}
}
