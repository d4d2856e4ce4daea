package goroutine

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	mu   sync.Mutex
	msgs []string
	done chan struct{}
}

func (l *recordingLogger) Errorf(format string, args ...interface{}) {
	l.mu.Lock()
	l.msgs = append(l.msgs, fmt.Sprintf(format, args...))
	l.mu.Unlock()
	close(l.done)
}

func TestSafeGo_RecoversPanic(t *testing.T) {
	log := &recordingLogger{done: make(chan struct{})}
	NewRecoveryHandler(log).SafeGo(func() { panic("boom") })

	select {
	case <-log.done:
	case <-time.After(time.Second):
		t.Fatal("panic was not reported")
	}
	log.mu.Lock()
	defer log.mu.Unlock()
	assert.Contains(t, log.msgs[0], "boom")
}

func TestSafeGoWithContext_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "value")
	got := make(chan any, 1)

	SafeGoWithContext(ctx, func(ctx context.Context) { got <- ctx.Value(key{}) })

	select {
	case v := <-got:
		assert.Equal(t, "value", v)
	case <-time.After(time.Second):
		t.Fatal("goroutine did not run")
	}
}
