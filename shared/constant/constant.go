package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID     contextKey = "user_id"
	ContextKeyUserHandle contextKey = "user_handle"
	ContextKeyUserRole   contextKey = "user_role"
	ContextKeyRequestID  contextKey = "request_id"
)

const (
	RequestParamScheduleID    = "scheduleId"
	RequestParamUserID        = "userId"
	RequestParamReservationID = "reservationId"
	RequestQueryUserID        = "user_id"
	RequestQueryRole          = "role"
)

const (
	FieldCreatedAt  = "created_at"
	FieldCreatedBy  = "created_by"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

const (
	DateFormat = time.RFC3339
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
)

const (
	RequestHeaderAuthorization = "Authorization"
	RequestHeaderContentType   = "Content-Type"
	RequestHeaderRequestID     = "X-Request-ID"
)

const (
	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown = "Server is preparing to shut down"
	ResponseErrorUnhealthy       = "Server is unhealthy"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvTest        = "test"
)
