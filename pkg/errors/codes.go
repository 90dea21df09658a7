package errors

// 공통 에러 코드 정의
const (
	// 일반적인 에러 코드
	ErrInternal        = "INTERNAL"
	ErrNotFound        = "NOT_FOUND"
	ErrInvalidArgument = "INVALID_ARGUMENT"
	ErrUnauthenticated = "UNAUTHENTICATED"
	ErrUnauthorized    = "UNAUTHORIZED"
	ErrConflict        = "CONFLICT"
	ErrTimeout         = "TIMEOUT"
	ErrNotImplemented  = "NOT_IMPLEMENTED"
)

// API 응답 코드 (클라이언트 노출용)
const (
	ReasonBadRequest     = "BAD_REQUEST_ERROR"
	ReasonNotFound       = "NOT_FOUND_ERROR"
	ReasonAuthentication = "AUTHENTICATION_ERROR"
	ReasonForbidden      = "FORBIDDEN_ERROR"
	ReasonConflict       = "CONFLICT_ERROR"
	ReasonInternal       = "INTERNAL_SERVER_ERROR"
)
