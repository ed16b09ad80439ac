package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"logtable-backend/config"
	"logtable-backend/internal/bridge"
	"logtable-backend/internal/client"
	"logtable-backend/internal/controller"
	"logtable-backend/internal/repository"
	"logtable-backend/internal/scheduler"
	"logtable-backend/internal/script"
	"logtable-backend/internal/service"
	"logtable-backend/internal/store"
)

// @title           Log Table API
// @version         1.0
// @description     Server-side processing endpoint that bridges the log table widget to the log search endpoint.

// @host      localhost:8080
// @BasePath  /
// @schemes   http https

// @tag.name         logs
// @tag.description  Paged, severity-labelled log rows

// @tag.name         health
// @tag.description  Upstream health check operations

func main() {
	app := fx.New(
		// Core Dependencies
		fx.Provide(
			NewConfig,
		),
		// Infrastructure Dependencies
		fx.Provide(
			NewGinEngine,
			client.NewLogSearchClient,
			client.NewPageSource,
			NewPinger,
			NewBridge,
			store.NewInMemoryTableStore,
			service.NewTableService,
			service.NewHealthService,
			controller.NewTableController,
			controller.NewSystemController,
		),
		fx.Invoke(
			ParseScripts,
			RegisterAPIRoutes,
			scheduler.NewScheduler,
			ProbeUpstream,
		),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second) // Timeout for startup
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}
	<-app.Done()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 30*time.Second) // Timeout for graceful shutdown
	defer cancelStop()
	log.Info().Msg("Shutting down application...")
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown due to error or timeout")
	}
	log.Info().Msg("Exiting.")
}

func NewConfig() (*config.Config, error) {
	return config.NewConfig(os.Args[1:])
}

func NewBridge(cfg *config.Config, source repository.PageSource) (*bridge.Bridge, error) {
	return bridge.Initialize(bridge.Config{SortField: cfg.Table.SortField}, source)
}

func NewPinger(c *client.LogSearchClient) service.Pinger {
	return c
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func ParseScripts() error {
	return script.Parse()
}

func RegisterAPIRoutes(
	lifecycle fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	tableController *controller.TableController,
	systemController *controller.SystemController,
) {
	controller.RegisterTableRoutes(router, cfg.Table.SourcePath, tableController)
	controller.RegisterSystemRoutes(router, systemController)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           gzhttp.GzipHandler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Starting HTTP server on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error().Err(err).Msg("HTTP server ListenAndServe error")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Shutting down HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}

// ProbeUpstream checks the log search endpoint in the background at startup.
// An unreachable endpoint is reported, not fatal: the table shows an error
// until it comes back.
func ProbeUpstream(lc fx.Lifecycle, healthSvc service.HealthService) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := healthSvc.WaitForUpstream(ctx); err != nil {
					log.Warn().Err(err).Msg("Log search endpoint not reachable at startup")
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
