package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/hilo/internal/session"
)

func TestNewWritesToConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "hilo.log")
	log, err := New(Config{Level: "debug", File: path}, &console)
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })

	log.Info("hello")
	assert.Contains(t, console.String(), "hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNewFallsBackToInfo(t *testing.T) {
	log, err := New(Config{Level: "loud"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.NoError(t, log.Close())
}

func TestRoundSinkLogsFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "debug"}, &buf)
	require.NoError(t, err)

	sink := RoundSink(log)
	err = sink.Publish(context.Background(), session.RoundEvent{
		Round:             3,
		Bet:               20,
		OutcomeName:       "push",
		ChipsAfter:        0,
		BankrollExhausted: true,
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "round resolved")
	assert.Contains(t, out, "round=3")
	assert.Contains(t, out, "outcome=push")
	assert.Contains(t, out, "bankroll exhausted")
}
