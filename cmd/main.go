package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/Shopify/sarama"
	"github.com/go-playground/validator/v10"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/practice-sem-2/chat-membership/internal/server"
	storage "github.com/practice-sem-2/chat-membership/internal/storages"
	usecase "github.com/practice-sem-2/chat-membership/internal/usecases"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

func initLogger(level string) *logrus.Logger {

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
		logger.
			WithField("log_level", level).
			Warning("specified invalid log level")
	} else {
		logger.SetLevel(logLevel)
		logger.
			WithField("log_level", level).
			Infof("specified %s log level", logLevel.String())
	}

	return logger
}

func initDB(dsn string, logger *logrus.Logger) *sqlx.DB {
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		logger.Fatalf("can't connect to database: %s", err.Error())
	}

	err = db.Ping()

	if err != nil {
		logger.Fatalf("database ping failed: %s", err.Error())
	}

	logger.Info("successfully connected to database")
	return db
}

func initProducer(logger *logrus.Logger) sarama.SyncProducer {
	brokers := viper.GetString("KAFKA_BROKERS")
	if len(brokers) == 0 {
		logger.Fatal("KAFKA_BROKERS environment variable must be defined")
	}

	addrs := strings.Split(brokers, ",")
	config := sarama.NewConfig()
	config.Producer.Partitioner = sarama.NewHashPartitioner
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Timeout = 10 * time.Second
	config.Producer.Return.Successes = true
	producer, err := sarama.NewSyncProducer(addrs, config)

	if err != nil {
		logger.WithError(err).Fatalf("can't create producer")
	}

	return producer
}

func initHealthServer(address string, logger *logrus.Logger) (*grpc.Server, *health.Server, net.Listener) {
	listener, err := net.Listen("tcp", address)
	logger.Infof("grpc health listening on %s", address)

	if err != nil {
		logger.Fatalf("can't listen to address: %s", err.Error())
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	return grpcServer, healthServer, listener
}

func main() {
	viper.AutomaticEnv()
	viper.SetDefault("GRPC_PORT", 8081)
	viper.SetDefault("UPDATES_TOPIC", "chat-membership-updates")

	var host string
	var port int
	var logLevel string

	flag.IntVar(&port, "port", 80, "port on which webhook server will be started")
	flag.StringVar(&host, "host", "0.0.0.0", "host on which server will be started")
	flag.StringVar(&logLevel, "log", "info", "log level")

	flag.Parse()

	logger := initLogger(logLevel)

	db := initDB(viper.GetString("DB_DSN"), logger)
	defer func(db *sqlx.DB) {
		err := db.Close()
		if err != nil {
			logger.Errorf("during db connection close an error occurred: %s", err.Error())
		}
	}(db)

	producer := initProducer(logger)
	defer func(p sarama.SyncProducer) {
		if err := p.Close(); err != nil {
			logger.Errorf("during producer close an error occurred: %s", err.Error())
		}
	}(producer)

	store := storage.NewRegistry(db, producer, &storage.UpdatesStoreConfig{
		UpdatesTopic: viper.GetString("UPDATES_TOPIC"),
	})

	membership := usecase.NewMembershipUsecase(store, validator.New(), logger)
	webhook := server.NewWebhookServer(membership, viper.GetString("WEBHOOK_SECRET"), logger)

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           webhook.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcSrv, healthSrv, lis := initHealthServer(fmt.Sprintf("%s:%d", host, viper.GetInt("GRPC_PORT")), logger)
	go func() {
		if err := grpcSrv.Serve(lis); err != nil {
			logger.Errorf("grpc serving error: %s", err.Error())
		}
	}()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	osSignal := make(chan os.Signal, 1)
	signal.Notify(osSignal,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)

	go func() {
		sig := <-osSignal
		logger.Infof("%s caught. Gracefully shutdown", sig.String())
		healthSrv.Shutdown()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			logger.Errorf("http shutdown error: %s", err.Error())
		}
		grpcSrv.GracefulStop()
	}()

	logger.Infof("webhook listening on %s", httpSrv.Addr)
	err := httpSrv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("http serving error: %s", err.Error())
	}
}
