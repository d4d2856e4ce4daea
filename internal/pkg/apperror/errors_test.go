package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeToHTTPStatus(t *testing.T) {
	tests := map[ErrorCode]int{
		ErrCodeNotFound:            http.StatusNotFound,
		ErrCodeNoProfile:           http.StatusNotFound,
		ErrCodeBadRequest:          http.StatusBadRequest,
		ErrCodeValidation:          http.StatusBadRequest,
		ErrCodeConflict:            http.StatusConflict,
		ErrCodeRateLimited:         http.StatusTooManyRequests,
		ErrCodeUpstreamUnavailable: http.StatusServiceUnavailable,
		ErrCodeDatabaseError:       http.StatusInternalServerError,
		ErrCodeInternal:            http.StatusInternalServerError,
	}
	for code, status := range tests {
		assert.Equal(t, status, New(code, "x").HTTPStatus, code)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, ErrCodeDatabaseError, "не удалось получить проект")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, ErrCodeDatabaseError, CodeOf(fmt.Errorf("repo: %w", err)))
}

func TestIsMatchesSentinelCopies(t *testing.T) {
	wrapped := Upstream(errors.New("timeout"), ErrEmbedderUnavailable.Message)
	assert.ErrorIs(t, wrapped, ErrEmbedderUnavailable)
	assert.NotErrorIs(t, ErrProjectNotFound, ErrUserNotFound)
	assert.True(t, IsUpstreamUnavailable(wrapped))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(ErrProjectNotFound))
	assert.True(t, IsNoProfile(ErrNoProfile))
	assert.True(t, IsConflict(ErrInteractionExists))
	assert.True(t, IsValidation(Validation("limit", "должен быть от 1 до 50")))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.Equal(t, ErrCodeInternal, CodeOf(errors.New("plain")))
	assert.Equal(t, "VALIDATION_ERROR: limit: bad", Validation("limit", "bad").Error())
	assert.Equal(t, ErrCodeBadRequest, Newf(ErrCodeBadRequest, "поле %s", "q").Code)
}
