package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	kafkabroker "github.com/seimple/seimple/internal/broker/kafka"
	"github.com/seimple/seimple/internal/config"
	httpv1 "github.com/seimple/seimple/internal/controller/http/v1"
	"github.com/seimple/seimple/internal/listener"
	"github.com/seimple/seimple/internal/metrics"
	"github.com/seimple/seimple/internal/repo"
	"github.com/seimple/seimple/internal/service"
	errorsUtils "github.com/seimple/seimple/pkg/errors"
	"github.com/seimple/seimple/pkg/httpserver"
	"github.com/seimple/seimple/pkg/logger"
	"github.com/seimple/seimple/pkg/postgres"
)

func Run() {
	// Config

	cfg, err := config.New()
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Logger
	logger.SetupLogger(cfg.Log.Level)
	log.Info("Logger has been set up")

	// Migrations
	Migrate(cfg.PG.URL)

	// DB connecting
	log.Info("Connecting to DB")
	pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.MaxPoolSize))
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	defer pg.Close()
	log.Info("Connected to DB")

	// Repos
	repositories := repo.NewRepositories(pg)

	// Metrics
	counters := metrics.New()

	// Optional Kafka forwarding
	var forwarder service.Forwarder
	if len(cfg.Kafka.Brokers) > 0 {
		log.Infof("Kafka forwarding enabled, topic: %s", cfg.Kafka.Topic)
		producer := kafkabroker.NewProducer(kafkabroker.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		defer producer.Close()
		forwarder = producer
	}

	// Services
	deps := service.ServicesDependencies{
		Repos:     repositories,
		Counters:  counters,
		Forwarder: forwarder,
	}
	services := service.NewServices(deps)

	// UDP ingestion listener
	log.Infof("Starting UDP listener...")
	log.Debugf("Listener port: %s", cfg.UDP.Port)
	udpListener, err := listener.New(cfg.UDP.Addr, cfg.UDP.Port, services.Log, listener.Workers(cfg.UDP.Workers))
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// HTTP query API
	log.Infof("Starting HTTP server...")
	log.Debugf("Server port: %s", cfg.HTTP.Port)
	apiHandler := echo.New()
	httpv1.ConfigureRouter(apiHandler, services, cfg.HTTP.CORSOrigins)
	httpServer := httpserver.New(apiHandler, httpserver.Port(cfg.HTTP.Port))

	// Prometheus server
	log.Infof("Starting metrics server...")
	log.Debugf("Server port: %s", cfg.Prometheus.Port)
	metricsHandler := echo.New()
	metrics.ConfigureRouter(metricsHandler)
	metricsServer := httpserver.New(metricsHandler, httpserver.Port(cfg.Prometheus.Port))

	// Waiting signal
	log.Info("Configuring graceful shutdown")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app - Run - signal: " + s.String())
	case err := <-udpListener.Notify():
		log.Info(errorsUtils.WrapPathErr(err))
	case err := <-httpServer.Notify():
		log.Info(errorsUtils.WrapPathErr(err))
	case err := <-metricsServer.Notify():
		log.Info(errorsUtils.WrapPathErr(err))
	}

	// Graceful shutdown
	log.Info("Shutting down...")
	udpListener.Shutdown()
	if err := httpServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	if err := metricsServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
}
