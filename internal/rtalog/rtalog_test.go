package rtalog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/kolide/rta/internal/rtalog"
	"github.com/stretchr/testify/assert"
)

func TestMultiSloggerFansOut(t *testing.T) {
	var bufA, bufB bytes.Buffer
	m := rtalog.New()
	m.AddHandler(slog.NewTextHandler(&bufA, nil))
	m.AddHandler(slog.NewTextHandler(&bufB, nil))

	m.Logger.Info("hello", "key", "value")

	assert.Contains(t, bufA.String(), "hello")
	assert.Contains(t, bufB.String(), "hello")
}

func TestMultiSloggerNoHandlersIsSilentNotPanic(t *testing.T) {
	m := rtalog.New()
	assert.NotPanics(t, func() {
		m.Logger.Info("nobody is listening")
	})
}

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, rtalog.Level(true))
	assert.Equal(t, slog.LevelInfo, rtalog.Level(false))
}
