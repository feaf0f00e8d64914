package main

import (
	"context"
	"fmt"
	"os"

	_ "food-facility-api/docs"
	"food-facility-api/internal/config"
	"food-facility-api/internal/handler"
	"food-facility-api/internal/loader"
	"food-facility-api/internal/logging"
	"food-facility-api/internal/middleware"
	"food-facility-api/internal/models"
	"food-facility-api/internal/repository"
	"food-facility-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Food Facility API
//	@version		1.0
//	@description	Read-only lookup over mobile food facility permits.
//	@BasePath		/
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger, err := logging.Setup(config.LogLevel, config.LogFormat, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot set up logging")
	}

	// The dataset is loaded once; nothing is served if it cannot be.
	facilities, err := loadFacilities(context.Background(), config)
	if err != nil {
		log.Fatal().Err(err).Str("source", config.DataSource).Msg("cannot load facilities")
	}

	// Initialize layers
	store := repository.NewMemoryStore(facilities)
	log.Info().Int("facilities", store.Len()).Str("source", config.DataSource).Msg("facilities loaded")
	facilityService := service.NewFacilityService(store)
	facilityHandler := handler.NewFacilityHandler(facilityService, config.DefaultNeighbors)

	gin.SetMode(config.GinMode)
	r := newRouter(logger, facilityHandler)

	log.Info().Str("addr", config.ServerAddress).Msg("server listening")
	if err := r.Run(config.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// newRouter wires the middleware and routes. The request logger wraps
// recovery so requests that panic are still logged with their 500.
func newRouter(logger zerolog.Logger, facilityHandler *handler.FacilityHandler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery())

	r.GET("/health", handler.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	facilityHandler.Register(r)
	return r
}

func loadFacilities(ctx context.Context, cfg config.Config) ([]*models.Facility, error) {
	switch cfg.DataSource {
	case config.DataSourcePostgres:
		conn, err := pgxpool.New(ctx, cfg.DBSource)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot connect to db: %v", loader.ErrLoadFailure, err)
		}
		defer conn.Close()

		facilities, err := repository.NewRepository(conn).ListFacilities(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", loader.ErrLoadFailure, err)
		}
		return facilities, nil
	default:
		return loader.LoadFile(cfg.DataFile, cfg.DataSheet)
	}
}
