// main.go
//
// Entry point for the TerraForm OS server: tracker state, projections,
// milestone monitor, placement calculator and the strategic advisor over HTTP.

package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/terraform-os/assets"
	"github.com/robalobadob/terraform-os/internal/advisor"
	"github.com/robalobadob/terraform-os/internal/catalog"
	"github.com/robalobadob/terraform-os/internal/config"
	"github.com/robalobadob/terraform-os/internal/db"
	"github.com/robalobadob/terraform-os/internal/httpserver"
	"github.com/robalobadob/terraform-os/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load catalog")
	}

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer conn.Close()
	if err := db.Migrate(conn, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	gen, err := advisor.NewGemini(context.Background(), cfg.GeminiAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create advisor client")
	}
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("no API key configured; advisor will answer with fallback text")
	}
	adviceLog := advisor.NewLog(conn)
	svc := advisor.NewService(gen, advisor.WithModel(cfg.AdvisorModel), advisor.WithRecorder(adviceLog))

	if cfg.AccessGate() && cfg.JWTSecret == config.DevJWTSecret {
		log.Warn().Msg("access gate enabled with the development JWT secret")
	}

	srv := httpserver.New(httpserver.Deps{
		Store:   store.NewMemoryStore(),
		Catalog: cat,
		Advisor: svc,
		History: adviceLog,
		Auth: httpserver.AuthOptions{
			Secret:         cfg.JWTSecret,
			PassphraseHash: cfg.AccessPassphraseHash,
			TokenDays:      cfg.AccessTokenDays,
			CookieName:     cfg.CookieName,
			Secure:         cfg.Production,
		},
		ClientOrigin:   cfg.ClientOrigin,
		RequestTimeout: cfg.RequestTimeout,
		RatePerMinute:  cfg.AdvisorRatePerMinute,
		RateBurst:      cfg.AdvisorBurst,
	})

	log.Info().Str("port", cfg.Port).Str("model", svc.Model()).Bool("access_gate", cfg.AccessGate()).Msg("starting terraform-os")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
