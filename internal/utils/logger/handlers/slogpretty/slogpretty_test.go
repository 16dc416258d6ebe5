package slogpretty

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func TestPrettyHandler_Handle(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
	log := slog.New(opts.NewPrettyHandler(&buf)).With("component", "test")

	log.Info("vault saved", "vault_id", "v1")

	out := buf.String()
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "vault saved")
	assert.Contains(t, out, `"vault_id": "v1"`)
	assert.Contains(t, out, `"component": "test"`)
}

func TestPrettyHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelWarn}}
	log := slog.New(opts.NewPrettyHandler(&buf))

	log.Info("hidden")

	assert.Empty(t, buf.String())
}
