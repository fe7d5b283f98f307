package config

type InternalConfig struct {
	App          App
	SlotAPI      SlotAPI
	JWT          JWT
	Availability Availability
	RabbitMQ     AppRabbitMQ
	Minio        AppMinio
	MongoDB      AppMongoDB
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	Timezone                   string
	EndpointPrefix             string
	AllowedOrigins             []string
	MaxRequests                int
	ShutdownTimeout            int
	MaxMutationsPerMinute      int
	MutationBurst              int
	MutationLimiterSize        int
	RequestBodyLimitInMegabyte int
}

// SlotAPI points at the remote store that owns persisted availability.
type SlotAPI struct {
	BaseUrl                 string
	RequestTimeoutInSeconds int
}

type JWT struct {
	Secret string
}

// Availability drives the week grid: the daily template is every TemplateStepInMinutes
// from TemplateDayStart (inclusive) to TemplateDayEnd (exclusive).
type Availability struct {
	SlotDurationInMinutes    int
	TemplateStepInMinutes    int
	TemplateDayStart         string
	TemplateDayEnd           string
	CollapsedSlotCount       int
	LoadingBackend           string
	LoadingTTLInSeconds      int
	SlotSnapshotCacheSize    int
	SlotSnapshotTTLInSeconds int
	SnapshotWorkerCronSpec   string
	SnapshotWorkerEnabled    bool
	PresignedURLExpiryInHour int
}

type AppRabbitMQ struct {
	SlotEventsQueue string
}

type AppMinio struct {
	BucketName string
}

type AppMongoDB struct {
	AuditCollection string
}
