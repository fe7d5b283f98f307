package constvars

const (
	// DaysPerWeek is the number of DaySchedule entries in a visible week.
	DaysPerWeek = 7

	DefaultSlotDurationInMinutes  = 15
	DefaultTemplateStepInMinutes  = 15
	DefaultTemplateDayStart       = "00:00"
	DefaultTemplateDayEnd         = "24:00"
	DefaultCollapsedSlotCount     = 9
	DefaultLoadingTTLInSeconds    = 60
	DefaultSlotSnapshotCacheSize  = 512
	DefaultSlotSnapshotTTLSeconds = 86400
	DefaultMutationLimiterSize    = 10000
	DefaultAuditListLimit         = 20
	MaxAuditListLimit             = 100
	DefaultSnapshotWorkerCronSpec = "@daily"

	// MaxWeekOffset bounds how many weeks a request may move away from the current one.
	MaxWeekOffset = 520

	LoadingBackendMemory = "memory"
	LoadingBackendRedis  = "redis"

	// RemoteInstantLayout matches the ISO-8601 form the remote store emits and accepts.
	RemoteInstantLayout = "2006-01-02T15:04:05.000Z07:00"
	TemplateTimeLayout  = "15:04"
	DateLayout          = "2006-01-02"

	LoadingKeyPrefix       = "availability:loading"
	SnapshotLeaderLockKey  = "availability:snapshot:leader"
	SlotSnapshotKeyPrefix  = "availability:snapshot:slots:"
	SnapshotObjectNameFmt  = "availability/%s/%s.json"
	SnapshotContentType    = "application/json"
	SlotEventMessageType   = "JSON"
	SlotEventRequeueHeader = "DROP"
)

type ToggleAction string

const (
	ToggleActionCreated    ToggleAction = "created"
	ToggleActionDeleted    ToggleAction = "deleted"
	ToggleActionInProgress ToggleAction = "in_progress"
	ToggleActionRejected   ToggleAction = "rejected"
	ToggleActionFailed     ToggleAction = "failed"
)
