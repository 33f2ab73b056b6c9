package eventstore

import (
	"context"
	"math"
	"time"

	"github.com/AntonStoeckl/command-mediator-go/mediator"
)

const (
	spanNameSave = "eventstore.save"

	metricSaveDuration = "eventstore_save_duration_seconds"
	metricEventsStored = "eventstore_events_stored_total"
	metricSaveErrors   = "eventstore_save_errors_total"

	statusSuccess = "success"
	statusError   = "error"

	errorTypeSerialize = "serialize"
	errorTypeBuild     = "build"
	errorTypeStore     = "store"

	logMsgEventStored     = "audit event stored"
	logMsgSerializeFailed = "failed to serialize event payload"
	logMsgBuildFailed     = "failed to build stored event"
	logMsgStoreFailed     = "failed to store audit event"
	logAttrError          = "error"
	logAttrMessageType    = "message_type"
	logAttrAggregateID    = "aggregate_id"
	logAttrEventID        = "event_id"
	logAttrUser           = "user"
	logAttrDurationMS     = "duration_ms"
	attrMessageType       = "message_type"
	attrStatus            = "status"
	attrErrorType         = "error_type"
)

// Observability contracts are shared with the mediator, so one adapter instance can serve both.
type (
	Logger                     = mediator.Logger
	ContextualLogger           = mediator.ContextualLogger
	MetricsCollector           = mediator.MetricsCollector
	ContextualMetricsCollector = mediator.ContextualMetricsCollector
	TracingCollector           = mediator.TracingCollector
	SpanContext                = mediator.SpanContext
)

func (es *EventStore) logInfo(ctx context.Context, msg string, args ...any) {
	if es.contextualLogger != nil {
		es.contextualLogger.InfoContext(ctx, msg, args...)
		return
	}

	if es.logger != nil {
		es.logger.Info(msg, args...)
	}
}

func (es *EventStore) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if es.contextualLogger != nil {
		es.contextualLogger.ErrorContext(ctx, msg, allArgs...)
		return
	}

	if es.logger != nil {
		es.logger.Error(msg, allArgs...)
	}
}

func (es *EventStore) recordSave(ctx context.Context, messageType string, status string, errorType string, duration time.Duration) {
	if es.metricsCollector == nil {
		return
	}

	labels := map[string]string{attrMessageType: messageType, attrStatus: status}
	contextual, isContextual := es.metricsCollector.(ContextualMetricsCollector)

	if isContextual {
		contextual.RecordDurationContext(ctx, metricSaveDuration, duration, labels)
	} else {
		es.metricsCollector.RecordDuration(metricSaveDuration, duration, labels)
	}

	counter, counterLabels := metricEventsStored, labels
	if status == statusError {
		counter = metricSaveErrors
		counterLabels = map[string]string{attrMessageType: messageType, attrStatus: status, attrErrorType: errorType}
	}

	if isContextual {
		contextual.IncrementCounterContext(ctx, counter, counterLabels)
	} else {
		es.metricsCollector.IncrementCounter(counter, counterLabels)
	}
}

func (es *EventStore) startSpan(ctx context.Context, messageType string) (context.Context, SpanContext) {
	if es.tracingCollector == nil {
		return ctx, nil
	}

	return es.tracingCollector.StartSpan(ctx, spanNameSave, map[string]string{attrMessageType: messageType})
}

func (es *EventStore) finishSpan(span SpanContext, status string, attrs map[string]string) {
	if es.tracingCollector == nil || span == nil {
		return
	}

	span.SetStatus(status)
	es.tracingCollector.FinishSpan(span, status, attrs)
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
