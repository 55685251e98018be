package toast

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vortex-fintech/agenda/logger"
)

func TestService_Defaults(t *testing.T) {
	tests := []struct {
		name    string
		show    func(s *Service)
		level   Level
		title   string
		timeout time.Duration
	}{
		{"success", func(s *Service) { s.Success("ok") }, Success, "Sucesso", 3 * time.Second},
		{"error", func(s *Service) { s.Error("ok") }, Error, "Erro", 5 * time.Second},
		{"warning", func(s *Service) { s.Warning("ok") }, Warning, "Atenção", 4 * time.Second},
		{"info", func(s *Service) { s.Info("ok") }, Info, "Informação", 3 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &Recorder{}
			tt.show(NewService(rec))

			got, ok := rec.Last()
			require.True(t, ok)
			assert.Equal(t, tt.level, got.Level)
			assert.Equal(t, tt.title, got.Title)
			assert.Equal(t, "ok", got.Message)
			assert.Equal(t, Options{
				Timeout:     tt.timeout,
				ProgressBar: true,
				CloseButton: true,
				Position:    PositionTopRight,
			}, got.Options)
		})
	}
}

func TestService_CustomTitle(t *testing.T) {
	rec := &Recorder{}
	s := NewService(rec)
	s.Success("salvo", "Pronto")
	s.Error("falhou", "")

	toasts := rec.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, "Pronto", toasts[0].Title)
	assert.Equal(t, "Erro", toasts[1].Title)
}

func TestService_NilSink(t *testing.T) {
	NewService(nil).Info("dropped")
}

func TestRecorder_Reset(t *testing.T) {
	rec := &Recorder{}
	_, ok := rec.Last()
	assert.False(t, ok)

	rec.Notify(Toast{Message: "a"})
	rec.Reset()
	assert.Empty(t, rec.Toasts())
}

func TestTerminal_PlainForNonTTY(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, false)
	NewService(term).Error("Erro ao carregar contatos: Contato não encontrado.")

	assert.Equal(t, "[Erro] Erro ao carregar contatos: Contato não encontrado.\n", buf.String())
}

func TestTerminal_StyledKeepsText(t *testing.T) {
	var buf bytes.Buffer
	term := &Terminal{w: &buf, styled: true}
	term.Notify(Toast{Level: Success, Title: "Sucesso", Message: "feito"})
	assert.Contains(t, buf.String(), "Sucesso")
	assert.Contains(t, buf.String(), "feito")
}

func TestLogAndTee(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	rec := &Recorder{}
	s := NewService(Tee(rec, Log{L: logger.FromZap(zap.New(core))}, nil))

	s.Success("criado")
	s.Error("falhou")

	require.Len(t, rec.Toasts(), 2)
	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "criado", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "error", entries[1].ContextMap()["level"])
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "warning", Warning.String())
	assert.Equal(t, "unknown", Level(42).String())
	assert.Equal(t, "Informação", DefaultTitle(Info))
}
