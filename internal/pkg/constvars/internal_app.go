package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_PRACTITIONER_ID_KEY      ContextKey = "practitioner_id"
	CONTEXT_ROLES_KEY                ContextKey = "roles"
	CONTEXT_ACCESS_TOKEN_KEY         ContextKey = "access_token"
)

const (
	RolePractitioner = "practitioner"
	RolePatient      = "patient"
)

const (
	ResourceAvailability = "availability"
	ResourceSlot         = "slots"
	ResourceAudit        = "audits"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)
