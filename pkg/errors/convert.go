package errors

import "net/http"

// CodePair는 에러 코드별 HTTP 상태와 기본 API 코드 매핑입니다
type CodePair struct {
	HTTPStatus int
	Reason     string
}

// 코드 매핑 테이블
var codeMapping = map[string]CodePair{
	ErrInternal:        {http.StatusInternalServerError, ReasonInternal},
	ErrNotFound:        {http.StatusNotFound, ReasonNotFound},
	ErrInvalidArgument: {http.StatusBadRequest, ReasonBadRequest},
	ErrUnauthenticated: {http.StatusUnauthorized, ReasonAuthentication},
	ErrUnauthorized:    {http.StatusForbidden, ReasonForbidden},
	ErrConflict:        {http.StatusConflict, ReasonConflict},
	ErrTimeout:         {http.StatusGatewayTimeout, ReasonInternal},
	ErrNotImplemented:  {http.StatusNotImplemented, ReasonInternal},
}

// GetCodeMapping은 특정 에러 코드에 대한 HTTP 상태와 기본 API 코드를 반환합니다
func GetCodeMapping(code string) (int, string) {
	if pair, ok := codeMapping[code]; ok {
		return pair.HTTPStatus, pair.Reason
	}
	return http.StatusInternalServerError, ReasonInternal // 기본값으로 Internal Server Error
}

// DefaultReason은 에러 코드의 기본 API 코드를 반환합니다
func DefaultReason(code string) string {
	_, reason := GetCodeMapping(code)
	return reason
}
