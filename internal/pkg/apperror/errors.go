package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrCodeNoProfile           ErrorCode = "NO_PROFILE"
	ErrCodeBadRequest          ErrorCode = "BAD_REQUEST"
	ErrCodeValidation          ErrorCode = "VALIDATION_ERROR"
	ErrCodeConflict            ErrorCode = "CONFLICT"
	ErrCodeRateLimited         ErrorCode = "RATE_LIMITED"
	ErrCodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeDatabaseError       ErrorCode = "DATABASE_ERROR"
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду и сообщению, чтобы errors.Is работал
// и для копий сентинелов, созданных через Wrap.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Newf(code ErrorCode, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Validation создаёт ошибку валидации с указанием поля.
func Validation(field, message string) *AppError {
	return New(ErrCodeValidation, field+": "+message)
}

// Upstream оборачивает сбой внешнего сервиса (модель эмбеддингов, хранилище векторов).
func Upstream(err error, message string) *AppError {
	return Wrap(err, ErrCodeUpstreamUnavailable, message)
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound, ErrCodeNoProfile:
		return http.StatusNotFound
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeUpstreamUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf возвращает код ошибки или ErrCodeInternal для чужих ошибок.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsNoProfile(err error) bool {
	return CodeOf(err) == ErrCodeNoProfile
}

func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

func IsConflict(err error) bool {
	return CodeOf(err) == ErrCodeConflict
}

func IsUpstreamUnavailable(err error) bool {
	return CodeOf(err) == ErrCodeUpstreamUnavailable
}

var (
	ErrUserNotFound        = New(ErrCodeNotFound, "пользователь не найден")
	ErrProfileNotFound     = New(ErrCodeNotFound, "профиль не найден")
	ErrProjectNotFound     = New(ErrCodeNotFound, "проект не найден")
	ErrInteractionNotFound = New(ErrCodeNotFound, "взаимодействие не найдено")
	ErrNoProfile           = New(ErrCodeNoProfile, "у пользователя нет профиля, рекомендации недоступны")
	ErrInteractionExists   = New(ErrCodeConflict, "такое взаимодействие уже зарегистрировано")
	ErrEmbedderUnavailable = New(ErrCodeUpstreamUnavailable, "сервис эмбеддингов недоступен")
)
