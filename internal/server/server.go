package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"autoapi/internal/database"
	"autoapi/internal/handlers"
	"autoapi/internal/middlewares"
	"autoapi/internal/repositories"
	"autoapi/internal/routes"
	"autoapi/internal/services"
)

func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	dsn, err := database.DSN()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid database configuration")
	}

	pool, err := database.Connect(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// gorm shares the same database; it persists the application's own
	// table_configurations rows while pgx serves all dynamic SQL.
	gdb, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open gorm connection")
	}

	if err := database.RunMigrations(pool); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	router := BuildRouter(pool, gdb, logger)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// BuildRouter wires repositories, services and handlers onto a gin
// engine. Split from NewServer so tests can run the full HTTP surface
// against their own database connections.
func BuildRouter(pool *pgxpool.Pool, gdb *gorm.DB, logger zerolog.Logger) *gin.Engine {
	catalogRepo := repositories.NewCatalogRepository(pool, os.Getenv("DB_SCHEMA"))
	recordRepo := repositories.NewRecordRepository(pool)
	configRepo := repositories.NewTableConfigurationRepository(gdb)

	metadataService := services.NewMetadataService(catalogRepo, logger)
	configService := services.NewTableConfigurationService(configRepo, logger)
	recordService := services.NewRecordService(metadataService, recordRepo, configRepo, logger)

	metaHandler := handlers.NewMetaHandler(metadataService)
	configHandler := handlers.NewTableConfigurationHandler(configService)
	recordHandler := handlers.NewRecordHandler(recordService)

	router := gin.Default()
	router.Use(middlewares.RequestID)
	router.Use(cors.New(corsConfig()))

	routes.RegisterRoutes(router, metaHandler, configHandler, recordHandler)

	return router
}

func corsConfig() cors.Config {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		config.AllowOrigins = strings.Split(origins, ",")
	} else {
		config.AllowAllOrigins = true
	}

	return config
}
