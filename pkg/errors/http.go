package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// 내부 에러 응답에 사용되는 고정 설명
const internalDescription = "Internal server error"

// ErrorDetail은 API 에러 응답의 본문입니다
type ErrorDetail struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ErrorResponse는 {"error": {...}} 형태의 응답 래퍼입니다
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ToHTTPStatus는 에러 코드를 HTTP 상태 코드로 변환합니다
func ToHTTPStatus(code string) int {
	httpStatus, _ := GetCodeMapping(code)
	return httpStatus
}

// ToResponse는 에러를 HTTP 상태와 응답 본문으로 변환합니다.
// 내부 에러의 상세 내용은 응답에 포함하지 않습니다.
func ToResponse(err error) (int, ErrorResponse) {
	var appErr *AppError
	if !As(FromHTTPError(err), &appErr) || appErr.Code() == ErrInternal {
		return http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: ReasonInternal, Description: internalDescription},
		}
	}

	return ToHTTPStatus(appErr.Code()), ErrorResponse{
		Error: ErrorDetail{Code: appErr.Reason(), Description: appErr.Message()},
	}
}

// FromHTTPError는 Echo HTTP 에러를 내부 에러로 변환합니다
func FromHTTPError(err error) error {
	if err == nil {
		return nil
	}

	// 이미 AppError인 경우 그대로 반환
	var appErr *AppError
	if As(err, &appErr) {
		return err
	}

	// Echo 에러 처리
	if echoErr, ok := err.(*echo.HTTPError); ok {
		code := httpStatusToCode(echoErr.Code)
		var msg string
		if m, ok := echoErr.Message.(string); ok {
			msg = m
		} else {
			msg = "HTTP error"
		}
		return NewAppError(code, msg, nil)
	}

	// 기본 에러는 Internal로 처리
	return NewAppError(ErrInternal, err.Error(), err)
}

// httpStatusToCode는 HTTP 상태 코드를 내부 에러 코드로 변환합니다
func httpStatusToCode(status int) string {
	switch status {
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		return ErrInvalidArgument
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrConflict
	case http.StatusGatewayTimeout:
		return ErrTimeout
	case http.StatusNotImplemented:
		return ErrNotImplemented
	default:
		return ErrInternal
	}
}
