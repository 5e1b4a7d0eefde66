package main

import (
	"context"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/Leganyst/photo-studio/internal/access"
	"github.com/Leganyst/photo-studio/internal/config"
	"github.com/Leganyst/photo-studio/internal/db"
	"github.com/Leganyst/photo-studio/internal/events"
	"github.com/Leganyst/photo-studio/internal/logging"
	"github.com/Leganyst/photo-studio/internal/model"
	"github.com/Leganyst/photo-studio/internal/repository"
	"github.com/Leganyst/photo-studio/internal/service"
	"github.com/Leganyst/photo-studio/internal/transport/grpcapi"
)

func main() {
	// 1. Конфиги из env (и .env, если есть).
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("load db config: %v", err)
	}
	bizCfg, err := config.LoadBusinessConfig()
	if err != nil {
		log.Fatalf("load business config: %v", err)
	}
	srvCfg, err := config.LoadServerConfig()
	if err != nil {
		log.Fatalf("load server config: %v", err)
	}
	brokerCfg, err := config.LoadBrokerConfig()
	if err != nil {
		log.Fatalf("load broker config: %v", err)
	}

	logger := logging.New(srvCfg.LogLevel)
	slog.SetDefault(logger)

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}

	// 3. Миграции моделей и базовые роли.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("sql DB: %v", err)
	}
	defer sqlDB.Close()

	store := repository.NewStore(gormDB)
	if err := access.SeedRoles(context.Background(), store.Users); err != nil {
		log.Fatalf("seed roles: %v", err)
	}

	// 4. События: RabbitMQ, если задан URL.
	var publisher events.Publisher = events.Nop{}
	if brokerCfg.URL != "" {
		amqpPub, err := events.NewAMQPPublisher(brokerCfg.URL, brokerCfg.Queue, logger)
		if err != nil {
			log.Fatalf("init rabbitmq publisher: %v", err)
		}
		defer amqpPub.Close()
		publisher = amqpPub
	} else {
		logger.Info("RABBITMQ_URL is empty, domain events are not published")
	}

	// 5. Сервисы сессий.
	svc := service.New(service.Deps{
		Store:     store,
		Config:    bizCfg,
		Clock:     service.SystemClock{},
		Publisher: publisher,
		Logger:    logger,
	})

	// 6. Настраиваем gRPC-сервер.
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(grpcapi.UnaryServerInterceptor(logger)))
	grpcapi.RegisterSessionsServer(grpcServer, grpcapi.NewServer(svc, access.NewRoleGate(store.Users)))

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus(grpcapi.ServiceName, healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", srvCfg.GRPCAddr)
	if err != nil {
		log.Fatalf("listen %s: %v", srvCfg.GRPCAddr, err)
	}

	logger.Info("studio gRPC server listening", "addr", srvCfg.GRPCAddr)

	// 7. Запускаем сервер в горутине.
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("grpc serve: %v", err)
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down gRPC server...")
	healthSrv.Shutdown()
	grpcServer.GracefulStop()
}
