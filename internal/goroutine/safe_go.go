package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/ignatzorin/projectmatch-backend/internal/logger"
)

// Logger интерфейс для логирования ошибок
type Logger interface {
	Errorf(format string, args ...interface{})
}

// RecoveryHandler обрабатывает panic в горутинах
type RecoveryHandler struct {
	logger Logger
}

// NewRecoveryHandler создает новый обработчик
func NewRecoveryHandler(logger Logger) *RecoveryHandler {
	return &RecoveryHandler{logger: logger}
}

// SafeGo запускает горутину с обработкой panic
func (rh *RecoveryHandler) SafeGo(fn func()) {
	go func() {
		defer rh.recover("goroutine")
		fn()
	}()
}

// SafeGoWithContext запускает горутину с контекстом и обработкой panic
func (rh *RecoveryHandler) SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		defer rh.recover("goroutine (with context)")
		fn(ctx)
	}()
}

func (rh *RecoveryHandler) recover(where string) {
	if r := recover(); r != nil {
		rh.logger.Errorf("Panic in %s: %v\nStack trace:\n%s", where, r, debug.Stack())
	}
}

// SafeGo запускает фоновую задачу; паника пишется в логгер приложения.
func SafeGo(fn func()) {
	NewRecoveryHandler(logger.L()).SafeGo(fn)
}

// SafeGoWithContext - то же, что SafeGo, но с контекстом
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	NewRecoveryHandler(logger.L()).SafeGoWithContext(ctx, fn)
}
