package config

import (
	"availability-service/internal/pkg/constvars"
	"availability-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "availability"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Jakarta"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			AllowedOrigins:             utils.GetEnvStringSlice("APP_ALLOWED_ORIGINS", []string{"*"}),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeout:            utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxMutationsPerMinute:      utils.GetEnvInt("APP_MAX_MUTATIONS_PER_MINUTE", 60),
			MutationBurst:              utils.GetEnvInt("APP_MUTATION_BURST", 10),
			MutationLimiterSize:        utils.GetEnvInt("APP_MUTATION_LIMITER_SIZE", constvars.DefaultMutationLimiterSize),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
		},
		SlotAPI: SlotAPI{
			BaseUrl:                 utils.GetEnvString("SLOT_API_BASE_URL", "http://localhost:5000/api"),
			RequestTimeoutInSeconds: utils.GetEnvInt("SLOT_API_REQUEST_TIMEOUT_IN_SECONDS", 15),
		},
		JWT: JWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
		},
		Availability: Availability{
			SlotDurationInMinutes:    utils.GetEnvInt("AVAILABILITY_SLOT_DURATION_IN_MINUTES", constvars.DefaultSlotDurationInMinutes),
			TemplateStepInMinutes:    utils.GetEnvInt("AVAILABILITY_TEMPLATE_STEP_IN_MINUTES", constvars.DefaultTemplateStepInMinutes),
			TemplateDayStart:         utils.GetEnvString("AVAILABILITY_TEMPLATE_DAY_START", constvars.DefaultTemplateDayStart),
			TemplateDayEnd:           utils.GetEnvString("AVAILABILITY_TEMPLATE_DAY_END", constvars.DefaultTemplateDayEnd),
			CollapsedSlotCount:       utils.GetEnvInt("AVAILABILITY_COLLAPSED_SLOT_COUNT", constvars.DefaultCollapsedSlotCount),
			LoadingBackend:           utils.GetEnvString("AVAILABILITY_LOADING_BACKEND", constvars.LoadingBackendMemory),
			LoadingTTLInSeconds:      utils.GetEnvInt("AVAILABILITY_LOADING_TTL_IN_SECONDS", constvars.DefaultLoadingTTLInSeconds),
			SlotSnapshotCacheSize:    utils.GetEnvInt("AVAILABILITY_SLOT_SNAPSHOT_CACHE_SIZE", constvars.DefaultSlotSnapshotCacheSize),
			SlotSnapshotTTLInSeconds: utils.GetEnvInt("AVAILABILITY_SLOT_SNAPSHOT_TTL_IN_SECONDS", constvars.DefaultSlotSnapshotTTLSeconds),
			SnapshotWorkerCronSpec:   utils.GetEnvString("AVAILABILITY_SNAPSHOT_WORKER_CRON_SPEC", constvars.DefaultSnapshotWorkerCronSpec),
			SnapshotWorkerEnabled:    utils.GetEnvBool("AVAILABILITY_SNAPSHOT_WORKER_ENABLED", true),
			PresignedURLExpiryInHour: utils.GetEnvInt("AVAILABILITY_PRESIGNED_URL_EXPIRY_IN_HOUR", 24),
		},
		RabbitMQ: AppRabbitMQ{
			SlotEventsQueue: utils.GetEnvString("APP_RABBITMQ_SLOT_EVENTS_QUEUE", "availability_slot_events"),
		},
		Minio: AppMinio{
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "availability-snapshots"),
		},
		MongoDB: AppMongoDB{
			AuditCollection: utils.GetEnvString("MONGODB_AUDIT_COLLECTION", "availability_audits"),
		},
	}
}
