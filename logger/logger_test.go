package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildConfigByEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		env              string
		wantLevel        zapcore.Level
		wantDisableStack bool
		wantCaller       bool
	}{
		{name: "development", env: "development", wantLevel: zap.DebugLevel, wantDisableStack: true},
		{name: "debug", env: " DEBUG ", wantLevel: zap.DebugLevel, wantCaller: true},
		{name: "production", env: "production", wantLevel: zap.InfoLevel, wantDisableStack: true},
		{name: "fallback", env: "unknown", wantLevel: zap.InfoLevel, wantDisableStack: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg, withCaller := buildConfig(tc.env)
			require.Equal(t, tc.wantLevel, cfg.Level.Level())
			require.Equal(t, tc.wantDisableStack, cfg.DisableStacktrace)
			require.Equal(t, tc.wantCaller, withCaller)
			require.Equal(t, "timestamp", cfg.EncoderConfig.TimeKey)
			require.Equal(t, []string{"stdout"}, cfg.OutputPaths)
		})
	}
}

func TestNew_Options(t *testing.T) {
	l, err := New("agenda", "production", WithOutput("stderr"), WithLevel(zap.WarnLevel))
	require.NoError(t, err)
	require.NotNil(t, l)
	require.False(t, l.Desugar().Core().Enabled(zap.InfoLevel))
	l.SafeSync()
}

func TestIsIgnorableSyncError(t *testing.T) {
	t.Parallel()

	require.False(t, isIgnorableSyncError(nil))
	require.True(t, isIgnorableSyncError(errors.New("sync /dev/stdout: invalid argument")))
	require.True(t, isIgnorableSyncError(errors.New("sync /dev/stdout: inappropriate ioctl for device")))
	require.False(t, isIgnorableSyncError(errors.New("disk write failed")))
}

func TestCtxMethods_AppendRequestID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core))

	ctx := ContextWithRequestID(context.Background(), "req-1")
	l.InfowCtx(ctx, "contact listed", "count", 3)
	l.ErrorwCtx(context.Background(), "no id")

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	require.EqualValues(t, 3, entries[0].ContextMap()["count"])
	_, has := entries[1].ContextMap()["request_id"]
	require.False(t, has)
}

func TestRequestID_NilContext(t *testing.T) {
	t.Parallel()

	//nolint:staticcheck // nil context is part of the contract
	ctx := ContextWithRequestID(nil, "req-2")
	require.Equal(t, "req-2", RequestID(ctx))
	//nolint:staticcheck
	require.Equal(t, "", RequestID(nil))
}

func TestNopAndWith(t *testing.T) {
	l := Nop()
	w := l.With("component", "client")
	require.NotNil(t, w)
	w.Infow("dropped")
	l.SafeSync()
}
