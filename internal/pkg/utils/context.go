package utils

import (
	"availability-service/internal/pkg/constvars"
	"context"
)

func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID
}

func PractitionerIDFromContext(ctx context.Context) string {
	practitionerID, _ := ctx.Value(constvars.CONTEXT_PRACTITIONER_ID_KEY).(string)
	return practitionerID
}

func AccessTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(constvars.CONTEXT_ACCESS_TOKEN_KEY).(string)
	return token
}

func RolesFromContext(ctx context.Context) []string {
	roles, _ := ctx.Value(constvars.CONTEXT_ROLES_KEY).([]string)
	return roles
}
