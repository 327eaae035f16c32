package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	inhttp "github.com/clinibox/box-availability-service/internal/adapters/in/http"
	inrabbitmq "github.com/clinibox/box-availability-service/internal/adapters/in/rabbitmq"
	"github.com/clinibox/box-availability-service/internal/adapters/out/cache"
	"github.com/clinibox/box-availability-service/internal/adapters/out/logger"
	"github.com/clinibox/box-availability-service/internal/adapters/out/postgres"
	outrabbitmq "github.com/clinibox/box-availability-service/internal/adapters/out/rabbitmq"
	"github.com/clinibox/box-availability-service/internal/config"
	"github.com/clinibox/box-availability-service/internal/core/ports/out"
	"github.com/clinibox/box-availability-service/internal/core/services/availability_service"
	"github.com/clinibox/box-availability-service/internal/core/services/block_request_service"
)

func main() {
	// En local el .env reemplaza a las variables de ambiente del orquestador
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("app.postgres.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer pool.Close()

	doctorRepository := postgres.NewDoctorRepository(pool)
	boxRepository := postgres.NewBoxRepository(pool)
	weeklySlotRepository := postgres.NewWeeklySlotRepository(pool)
	blockRequestRepository := postgres.NewBlockRequestRepository(pool)
	operationalBlockRepository := postgres.NewOperationalBlockRepository(pool)
	extraHourRepository := postgres.NewExtraHourRepository(pool)

	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		adapter, err := cache.NewCacheAdapter(cfg, log.WithModule("CacheAdapter"))
		if err != nil {
			log.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cacheAdapter = adapter
	}

	var eventPublisher out.EventPublisherPort
	if cfg.RabbitMQ.Enabled {
		publisher, err := outrabbitmq.NewEventPublisher(cfg, log.WithModule("EventPublisher"))
		if err != nil {
			log.Error("app.rabbitmq.publisher_init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		eventPublisher = publisher
		defer publisher.Close()
	}

	availabilityService := availability_service.NewAvailabilityService(
		doctorRepository,
		weeklySlotRepository,
		blockRequestRepository,
		operationalBlockRepository,
		boxRepository,
		cacheAdapter,
		log.WithModule("AvailabilityService"),
		cfg,
	)

	blockRequestService := block_request_service.NewBlockRequestService(
		blockRequestRepository,
		operationalBlockRepository,
		extraHourRepository,
		doctorRepository,
		eventPublisher,
		availabilityService,
		log.WithModule("BlockRequestService"),
	)

	router := gin.Default()
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	availabilityController := inhttp.NewAvailabilityController(availabilityService, cfg)
	availabilityController.RegisterRoutes(router)

	blockRequestController := inhttp.NewBlockRequestController(blockRequestService, cfg)
	blockRequestController.RegisterRoutes(router)

	if cfg.RabbitMQ.Enabled {
		listener, err := inrabbitmq.NewBlockListener(
			availabilityService,
			cfg,
			log.WithModule("RabbitMQListener"),
		)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
