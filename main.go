package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/psousa50/codenames50-sub000/internal/httpserver"
	"github.com/psousa50/codenames50-sub000/internal/realtime"
	"github.com/psousa50/codenames50-sub000/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(getEnv("DB_PATH", "./data/codenames.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	var st store.Store
	switch getEnv("STORE", "sqlite") {
	case "memory":
		st = store.NewMemoryStore()
	default:
		st = store.NewSQLiteStore(db)
	}

	hub := realtime.NewHub()
	srv := httpserver.New(st, db, hub)

	go srv.RunTurnSweeper(context.Background(), 2*time.Second)

	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting codenames server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
