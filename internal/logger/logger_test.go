package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { Log = nil })

	Init("debug", "production")
	assert.Equal(t, logrus.DebugLevel, L().GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, L().Formatter)

	Init("nonsense", "development")
	assert.Equal(t, logrus.InfoLevel, L().GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, L().Formatter)

	assert.Equal(t, "embedder", Component("embedder").Data["component"])
}

func TestL_FallsBackToStandardLogger(t *testing.T) {
	Log = nil
	assert.Same(t, logrus.StandardLogger(), L())
}
