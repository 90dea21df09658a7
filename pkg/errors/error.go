package errors

import (
	"errors"
	"fmt"
)

// 표준 라이브러리 함수 재노출
var (
	New    = errors.New
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// Error는 기본 에러 인터페이스를 확장합니다
type Error interface {
	error
	Code() string   // 에러 종류 코드 반환 (INVALID_ARGUMENT 등)
	Reason() string // 클라이언트에 노출되는 API 코드 반환
	Unwrap() error  // 내부 에러 반환
}

// AppError는 기본 에러 구현체입니다
type AppError struct {
	code    string
	reason  string
	message string
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *AppError) Code() string {
	return e.code
}

// Reason은 API 응답에 실리는 코드를 반환합니다. 지정되지 않았다면 종류별 기본값을 사용합니다.
func (e *AppError) Reason() string {
	if e.reason != "" {
		return e.reason
	}
	return DefaultReason(e.code)
}

// Message는 내부 에러를 제외한 설명만 반환합니다
func (e *AppError) Message() string {
	return e.message
}

func (e *AppError) Unwrap() error {
	return e.err
}

// WithReason은 API 코드를 지정한 복사본을 반환합니다
func (e *AppError) WithReason(reason string) *AppError {
	cp := *e
	cp.reason = reason
	return &cp
}

// NewAppError는 새 애플리케이션 에러를 생성합니다
func NewAppError(code string, message string, err error) *AppError {
	return &AppError{
		code:    code,
		message: message,
		err:     err,
	}
}

// Wrap은 기존 에러를 래핑합니다
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// 기존 AppError인 경우 코드와 API 코드를 유지합니다
	var appErr *AppError
	if As(err, &appErr) {
		return &AppError{code: appErr.code, reason: appErr.reason, message: message, err: err}
	}

	return NewAppError(ErrInternal, message, err)
}

// CodeOf는 에러 체인에서 AppError 코드를 찾아 반환합니다. 없으면 ErrInternal입니다.
func CodeOf(err error) string {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Code()
	}
	return ErrInternal
}
