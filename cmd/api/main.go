package main

import (
	"context"
	"fmt"
	"os"

	"postalgeo-api/internal/config"
	"postalgeo-api/internal/diagnostic"
	"postalgeo-api/internal/loader"
	"postalgeo-api/internal/repository"
	"postalgeo-api/internal/service"
	"postalgeo-api/internal/spatial"
	"postalgeo-api/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//	@title			Postal Code Geo API
//	@version		1.0
//	@description	Distance and radius queries over a postal code table.
//	@host			localhost:8080
//	@BasePath		/
func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := cfg.NewLogger(os.Stderr)
	log.Logger = logger
	gin.SetMode(cfg.GinMode)

	st, err := loadStore(context.Background(), cfg, logger)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load postal codes")
	}

	opts := []service.Option{service.WithLogger(logger)}
	if cfg.NearbyIndex == config.IndexRTree {
		opts = append(opts, service.WithIndex(spatial.NewIndex(st.All())))
	}
	postalCodeService := service.NewPostalCodeService(st, opts...)

	r := newRouter(postalCodeService)

	log.Info().Str("addr", cfg.ServerAddress).Int("postal_codes", st.Len()).Msg("starting server")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

// loadStore builds the in-memory store once, either from the CSV file or from the PostgreSQL
// snapshot written by the importer.
func loadStore(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*store.Store, error) {
	switch cfg.DataSource {
	case config.SourcePostgres:
		conn, err := pgxpool.New(ctx, cfg.DBSource)
		if err != nil {
			return nil, fmt.Errorf("cannot connect to db: %w", err)
		}
		defer conn.Close()

		return repository.NewRepository(conn).LoadStore(ctx)
	default:
		l := loader.New(loader.Options{
			HasHeader:         cfg.CSVHasHeader,
			StrictCoordinates: cfg.StrictCoordinates,
		}, diagnostic.NewLogReporter(logger))

		st, summary, err := l.LoadFile(cfg.CSVPath)
		if err != nil {
			return nil, err
		}
		logger.Info().
			Str("source", cfg.CSVPath).
			Int("rows", summary.Rows).
			Int("loaded", summary.Loaded).
			Int("repaired", summary.Repaired).
			Int("skipped", summary.Skipped).
			Int("replaced", summary.Replaced).
			Msg("postal codes loaded")
		return st, nil
	}
}
