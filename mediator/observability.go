package mediator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	spanNameSendCommand = "mediator.send_command"
	spanNameRaiseEvent  = "mediator.raise_event"

	metricCommandDuration    = "mediator_command_duration_seconds"
	metricCommandsHandled    = "mediator_commands_total"
	metricEventsRaised       = "mediator_events_raised_total"
	metricSubscriberFailures = "mediator_subscriber_failures_total"

	attrCommandType    = "command_type"
	attrMessageType    = "message_type"
	attrSubscriberType = "subscriber_type"
	attrStatus         = "status"
	attrErrorType      = "error_type"
	attrDurationMS     = "duration_ms"

	// StatusSuccess means the command was handled and its change committed.
	StatusSuccess = "success"

	// StatusRejected means the command was refused for business reasons and Notifications were raised.
	StatusRejected = "rejected"

	// StatusError means the command failed with an infrastructure error.
	StatusError = "error"

	// StatusCanceled means the command's context was canceled.
	StatusCanceled = "canceled"

	// StatusTimeout means the command's context deadline was exceeded.
	StatusTimeout = "timeout"

	errorTypePanic   = "panic"
	errorTypeFailure = "failure"

	logMsgCommandHandled    = "command handled"
	logMsgCommandRejected   = "command rejected"
	logMsgCommandFailed     = "command failed"
	logMsgNoHandler         = "no handler registered"
	logMsgSubscriberFailed  = "subscriber failed"
	logMsgSubscriberPanic   = "subscriber panicked"
	logMsgEventRaised       = "event raised"
	logAttrError            = "error"
	logAttrCommandType      = "command_type"
	logAttrMessageType      = "message_type"
	logAttrSubscriberType   = "subscriber_type"
	logAttrSubscriberCount  = "subscriber_count"
	logAttrDurationMS       = "duration_ms"
	logAttrNotificationKey  = "notification_key"
	logAttrNotificationText = "notification_value"
)

// Logger interface for operational logging, warnings, and error reporting. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger interface for context-aware logging with automatic trace correlation.
// *slog.Logger satisfies it, so do OpenTelemetry bridges.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector interface for collecting Bus performance and operational metrics.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// ContextualMetricsCollector extends MetricsCollector with context-aware methods for trace correlation.
// The Bus uses the context-aware methods when available.
type ContextualMetricsCollector interface {
	MetricsCollector
	RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string)
	IncrementCounterContext(ctx context.Context, metric string, labels map[string]string)
	RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string)
}

// SpanContext represents an active tracing span that can be finished and updated with attributes.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector interface for collecting tracing information from Bus operations.
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}

// commandStatus classifies the outcome of a SendCommand call.
func commandStatus(ok bool, err error) string {
	switch {
	case err == nil && ok:
		return StatusSuccess
	case err == nil:
		return StatusRejected
	case errors.Is(err, context.Canceled):
		return StatusCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return StatusTimeout
	default:
		return StatusError
	}
}

func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}

/***** logging *****/

func (b *Bus) logInfo(ctx context.Context, msg string, args ...any) {
	if b.contextualLogger != nil {
		b.contextualLogger.InfoContext(ctx, msg, args...)
		return
	}

	if b.logger != nil {
		b.logger.Info(msg, args...)
	}
}

func (b *Bus) logDebug(ctx context.Context, msg string, args ...any) {
	if b.contextualLogger != nil {
		b.contextualLogger.DebugContext(ctx, msg, args...)
		return
	}

	if b.logger != nil {
		b.logger.Debug(msg, args...)
	}
}

func (b *Bus) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if b.contextualLogger != nil {
		b.contextualLogger.ErrorContext(ctx, msg, allArgs...)
		return
	}

	if b.logger != nil {
		b.logger.Error(msg, allArgs...)
	}
}

/***** metrics *****/

func (b *Bus) recordDuration(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	if b.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := b.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	b.metricsCollector.RecordDuration(metric, duration, labels)
}

func (b *Bus) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if b.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := b.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	b.metricsCollector.IncrementCounter(metric, labels)
}

/***** tracing *****/

func (b *Bus) startSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext) {
	if b.tracingCollector == nil {
		return ctx, nil
	}

	return b.tracingCollector.StartSpan(ctx, name, attrs)
}

func (b *Bus) finishSpan(span SpanContext, status string, attrs map[string]string) {
	if b.tracingCollector == nil || span == nil {
		return
	}

	span.SetStatus(status)
	b.tracingCollector.FinishSpan(span, status, attrs)
}
