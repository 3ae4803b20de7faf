package logger

import (
	"path/filepath"
	"testing"

	"ai4local/pkg/config"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogger_FallsBackToStandardLogger(t *testing.T) {
	Logger = nil
	assert.Same(t, logrus.StandardLogger(), GetLogger())
}

func TestInitialize(t *testing.T) {
	t.Cleanup(func() { Logger = nil })

	cfg := &config.Config{Log: config.LogConfig{
		Level:    "debug",
		Format:   "text",
		FilePath: filepath.Join(t.TempDir(), "nested", "app.log"),
		MaxSize:  1,
	}}

	require.NoError(t, Initialize(cfg))
	assert.Equal(t, logrus.DebugLevel, GetLogger().GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, GetLogger().Formatter)
}

func TestInitialize_UnknownLevelDefaultsToInfo(t *testing.T) {
	t.Cleanup(func() { Logger = nil })

	cfg := &config.Config{Log: config.LogConfig{Level: "loud", Format: "json"}}

	require.NoError(t, Initialize(cfg))
	assert.Equal(t, logrus.InfoLevel, GetLogger().GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, GetLogger().Formatter)
}

func TestInitialize_AddsServiceAndComponentFields(t *testing.T) {
	t.Cleanup(func() { Logger = nil })

	require.NoError(t, Initialize(&config.Config{Log: config.LogConfig{Level: "info", Format: "json"}}))
	hook := test.NewLocal(GetLogger())

	Component("dispatcher").Info("tick")
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, ServiceName, entry.Data["service"])
	assert.Equal(t, "dispatcher", entry.Data["component"])

	GetLogger().WithField("service", "worker").Warn("override")
	assert.Equal(t, "worker", hook.LastEntry().Data["service"])
}
