package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/salesintel/sales_radar/internal/conf"
)

type Data struct {
	db  *sql.DB
	rdb *redis.Client
}

func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	db, err := sql.Open(c.Database.Driver, c.Database.Source)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     c.Redis.Addr,
		Password: c.Redis.Password,
		DB:       int(c.Redis.Db),
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("redis ping failed: %w", err)
	}

	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		rdb.Close()
		db.Close()
	}
	return &Data{db: db, rdb: rdb}, cleanup, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			company TEXT NOT NULL DEFAULT '',
			company_url TEXT NOT NULL DEFAULT '',
			persona TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS report_archive (
			id TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			company TEXT NOT NULL,
			generated_at BIGINT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS content_assets (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			url TEXT NOT NULL,
			kind TEXT NOT NULL DEFAULT 'url',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return nil
}
