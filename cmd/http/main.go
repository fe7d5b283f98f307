package main

import (
	"availability-service/internal/app/config"
	"availability-service/internal/app/contracts"
	"availability-service/internal/app/delivery/http/controllers"
	"availability-service/internal/app/delivery/http/middlewares"
	"availability-service/internal/app/delivery/http/routers"
	"availability-service/internal/app/drivers/database"
	"availability-service/internal/app/drivers/logger"
	"availability-service/internal/app/drivers/messaging"
	"availability-service/internal/app/drivers/storage"
	"availability-service/internal/app/services/core/audits"
	"availability-service/internal/app/services/core/availability"
	"availability-service/internal/app/services/shared/jwtmanager"
	"availability-service/internal/app/services/shared/locker"
	"availability-service/internal/app/services/shared/redis"
	"availability-service/internal/app/services/shared/slotevents"
	storageService "availability-service/internal/app/services/shared/storage"
	"availability-service/internal/app/services/slotapi"
	"availability-service/internal/pkg/constvars"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	accessLogger := logger.NewLogrusLogger(internalConfig)

	redisClient := database.NewRedisClient(driverConfig)
	mongoDB := database.NewMongoDB(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig, internalConfig.Minio.BucketName)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		Redis:          redisClient,
		MongoDB:        mongoDB,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		Logger:         zapLogger,
		AccessLogger:   accessLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	err := bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Error bootstraping the app: %v", err)
	}

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           chiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("address", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error while closing drivers: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)

	// Loading-state set and slot snapshots
	snapshotTTL := time.Duration(internalConfig.Availability.SlotSnapshotTTLInSeconds) * time.Second
	var (
		loadingSet contracts.LoadingSet
		slotStore  contracts.SlotSnapshotStore
		err        error
	)
	switch internalConfig.Availability.LoadingBackend {
	case constvars.LoadingBackendRedis:
		loadingSet = availability.NewLockerLoadingSet(
			lockerService,
			redisRepository,
			time.Duration(internalConfig.Availability.LoadingTTLInSeconds)*time.Second,
		)
		slotStore = availability.NewRedisSlotStore(redisRepository, snapshotTTL)
	default:
		loadingSet = availability.NewMemoryLoadingSet()
		slotStore, err = availability.NewMemorySlotStore(internalConfig.Availability.SlotSnapshotCacheSize, snapshotTTL)
		if err != nil {
			return err
		}
	}

	// Remote slot store
	slotClient := slotapi.NewSlotAPIClient(
		internalConfig.SlotAPI.BaseUrl,
		time.Duration(internalConfig.SlotAPI.RequestTimeoutInSeconds)*time.Second,
		bootstrap.Logger,
	)

	// Events, snapshots and audits
	slotEventPublisher, err := slotevents.NewSlotEventPublisher(bootstrap.RabbitMQ, bootstrap.Logger, internalConfig.RabbitMQ.SlotEventsQueue)
	if err != nil {
		return err
	}
	minioStorage := storageService.NewMinioStorage(bootstrap.Minio)
	auditRepository := audits.NewAuditMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
		internalConfig.MongoDB.AuditCollection,
	)

	// Availability
	availabilityUsecase, err := availability.NewAvailabilityUsecase(
		slotClient,
		slotStore,
		loadingSet,
		slotEventPublisher,
		minioStorage,
		auditRepository,
		internalConfig,
		time.Now,
		bootstrap.Logger,
	)
	if err != nil {
		return err
	}
	availabilityController := controllers.NewAvailabilityController(bootstrap.Logger, availabilityUsecase)

	if internalConfig.Availability.SnapshotWorkerEnabled {
		worker := availability.NewSnapshotWorker(
			bootstrap.Logger,
			internalConfig.Availability.SnapshotWorkerCronSpec,
			lockerService,
			availabilityUsecase,
		)
		worker.Start(context.Background())
		bootstrap.WorkerStop = worker.Stop
	}

	// Middlewares
	jwtManager, err := jwtmanager.NewJWTManager(internalConfig.JWT.Secret, bootstrap.Logger)
	if err != nil {
		return err
	}
	middlewares, err := middlewares.NewMiddlewares(bootstrap.Logger, jwtManager, internalConfig)
	if err != nil {
		return err
	}

	routers.SetupRoutes(bootstrap.Router, internalConfig, bootstrap.AccessLogger, middlewares, availabilityController)
	return nil
}
