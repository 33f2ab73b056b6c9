package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/log/noop"

	"github.com/AntonStoeckl/command-mediator-go/eventstore/oteladapters"
)

func Test_NewSlogBridgeLogger_Construction(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("command-mediator")

	assert.NotNil(t, logger)
}

func Test_SlogBridgeLogger_AllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "event raised", "message_type", "IdentityResourceRegistered")
	logger.InfoContext(ctx, "command handled", "command_type", "RegisterIdentityResource")
	logger.WarnContext(ctx, "no handler registered")
	logger.ErrorContext(ctx, "command failed", "error", "boom")

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG"`)
	assert.Contains(t, output, `"level":"INFO"`)
	assert.Contains(t, output, `"level":"WARN"`)
	assert.Contains(t, output, `"level":"ERROR"`)
	assert.Contains(t, output, `"message_type":"IdentityResourceRegistered"`)
	assert.Contains(t, output, `"command_type":"RegisterIdentityResource"`)
}

func Test_SlogBridgeLogger_RespectsHandlerLevel(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)

	// act
	logger.DebugContext(context.Background(), "executed sql for: append")

	// assert
	assert.Empty(t, buf.String())
}

func Test_OTelLogger_AllLevels(t *testing.T) {
	// arrange
	logger := oteladapters.NewOTelLogger(noop.NewLoggerProvider().Logger("command-mediator"))
	ctx := context.Background()

	// act & assert
	assert.NotPanics(t, func() {
		logger.DebugContext(ctx, "event raised", "message_type", "ApiSecretRemoved")
		logger.InfoContext(ctx, "command handled", "duration_ms", 1.5)
		logger.WarnContext(ctx, "no handler registered")
		logger.ErrorContext(ctx, "command failed", "error", assert.AnError)
	})
}

func Test_OTelLogger_OddArguments(t *testing.T) {
	// arrange
	logger := oteladapters.NewOTelLogger(noop.NewLoggerProvider().Logger("command-mediator"))

	// act & assert
	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "dangling key", "command_type")
		logger.InfoContext(context.Background(), "non string key", 42, "value")
	})
}
