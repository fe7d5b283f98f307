package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
	"oneof":    "must be one of [%s]",
	"numeric":  "must be a number",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"gte":   true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientTooManyRequests               = "too many requests, please slow down"

	ErrClientSlotInPast             = "cannot modify past slot"
	ErrClientSlotBooked             = "cannot remove a booked slot"
	ErrClientSlotOverlapFallback    = "this slot overlaps with an existing appointment"
	ErrClientSlotPositionOutOfRange = "slot position is out of range"
	ErrClientSlotStoreUnavailable   = "failed to load your availability, please try again"
	ErrClientWeekOffsetOutOfRange   = "week is too far from the current week"
	ErrClientSlotDoesNotExist       = "this time does not exist on that day"
)

// Error messages for developers
const (
	ErrDevInvalidInput              = "invalid input"
	ErrDevValidationFailed          = "validation failed"
	ErrDevCannotParseJSON           = "cannot parse JSON"
	ErrDevCannotMarshalJSON         = "cannot marshal JSON"
	ErrDevCannotParseTime           = "cannot parse time value %s"
	ErrDevInvalidQueryParam         = "invalid query param %s"
	ErrDevServerProcess             = "server failed to process the request"
	ErrDevServerDeadlineExceeded    = "server deadline exceeded"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenInvalidOrExpired = "token invalid or expired"
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthMissingSubject        = "token has no subject"
	ErrDevRoleTypeDoesntMatch       = "role type doesn't match"
	ErrDevTooManyMutations          = "mutation rate limit exceeded for practitioner"

	ErrDevCreateHTTPRequest   = "failed to create HTTP request"
	ErrDevSendHTTPRequest     = "failed to send HTTP request"
	ErrDevDecodeSlotResponse  = "failed to decode %s response from slot API"
	ErrDevRemoteSlotRejected  = "slot API rejected %s request with status %d"
	ErrDevRemoteSlotListFails = "slot API failed to list slots"

	ErrDevSlotInPast              = "slot %s is in the past"
	ErrDevSlotBooked              = "slot %s is booked"
	ErrDevSlotPositionOutOfRange  = "slot position day=%d slot=%d out of range"
	ErrDevWeekOffsetOutOfRange    = "week offset %d outside of -%d..%d"
	ErrDevSlotDoesNotExist        = "slot position day=%d slot=%d falls in a clock change gap"
	ErrDevSlotSnapshotCorrupted   = "cannot decode slot snapshot %s"
	ErrDevInvalidSlotTemplate     = "invalid slot template entry %s"
	ErrDevInvalidTemplateWindow   = "invalid slot template window %s-%s"
	ErrDevInvalidTimezone         = "invalid timezone %s"
	ErrDevLoadingStateUnavailable = "loading-state set unavailable"

	ErrDevRedisGetNoData     = "no data found in redis for key %s"
	ErrDevRedisSetData       = "failed to set data in redis"
	ErrDevRedisDeleteData    = "failed to delete data in redis"
	ErrDevRedisExpire        = "failed to refresh expiration in redis"
	ErrDevRedisUnlock        = "failed to unlock redis key"
	ErrDevRabbitMQPublish    = "failed to publish message to queue %s"
	ErrDevMinioCreateObject  = "failed to create object in bucket %s"
	ErrDevMinioPresignObject = "failed to presign object in bucket %s"
	ErrDevMongoInsert        = "failed to insert document into %s"
	ErrDevMongoFind          = "failed to find documents in %s"
	ErrDevMongoIterate       = "failed to iterate documents in %s"
)
