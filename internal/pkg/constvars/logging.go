package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingErrorTypeKey      = "error_type"
	LoggingResponseLengthKey = "response_length"

	LoggingRedisKey             = "redis_key"
	LoggingLockValueKey         = "lock_value"
	LoggingLockStoredValueKey   = "lock_stored_value"
	LoggingLockExpectedValueKey = "lock_expected_value"
	LoggingLockExpirationKey    = "lock_expiration"
	LoggingQueueNameKey         = "queue_name"
	LoggingBucketNameKey        = "bucket_name"
	LoggingObjectNameKey        = "object_name"
	LoggingCollectionKey        = "collection"

	LoggingPractitionerIDKey = "practitioner_id"
	LoggingWeekOffsetKey     = "week_offset"
	LoggingDayIndexKey       = "day_index"
	LoggingSlotIndexKey      = "slot_index"
	LoggingSlotKey           = "slot_key"
	LoggingSlotIDKey         = "slot_id"
	LoggingSlotStartKey      = "slot_start"
	LoggingSlotCountKey      = "slot_count"
	LoggingToggleActionKey   = "toggle_action"
	LoggingRemoteURLKey      = "remote_url"
)
