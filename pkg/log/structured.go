package log

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hammad983ae/sustaino-sub007/pkg/requestid"
	"go.uber.org/zap"
)

// StructuredLogger wraps zap with an operation/step vocabulary shared by the
// service and workspace layers. Every operation gets a short-lived tracer
// carrying the operation name and the request id taken from the context.
type StructuredLogger struct {
	logger    *zap.Logger
	requestID string
}

func NewDebugLogger(name string) *StructuredLogger {
	return &StructuredLogger{logger: zap.L().Named(name)}
}

func (l *StructuredLogger) WithContext(ctx context.Context) *StructuredLogger {
	return &StructuredLogger{
		logger:    l.logger,
		requestID: requestid.FromContext(ctx),
	}
}

func (l *StructuredLogger) Operation(op string) *OperationBuilder {
	return &OperationBuilder{
		logger: l.logger,
		fields: []zap.Field{
			zap.String("operation", op),
			zap.String("request_id", l.requestID),
		},
	}
}

type OperationBuilder struct {
	logger *zap.Logger
	fields []zap.Field
}

func (b *OperationBuilder) WithString(key, value string) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value))
	return b
}

func (b *OperationBuilder) WithStringPtr(key string, value *string) *OperationBuilder {
	if value != nil {
		b.fields = append(b.fields, zap.String(key, *value))
	}
	return b
}

func (b *OperationBuilder) WithInt(key string, value int) *OperationBuilder {
	b.fields = append(b.fields, zap.Int(key, value))
	return b
}

func (b *OperationBuilder) WithBool(key string, value bool) *OperationBuilder {
	b.fields = append(b.fields, zap.Bool(key, value))
	return b
}

func (b *OperationBuilder) WithUUID(key string, value uuid.UUID) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value.String()))
	return b
}

func (b *OperationBuilder) WithUUIDPtr(key string, value *uuid.UUID) *OperationBuilder {
	if value != nil {
		b.fields = append(b.fields, zap.String(key, value.String()))
	}
	return b
}

func (b *OperationBuilder) WithParam(key string, value any) *OperationBuilder {
	b.fields = append(b.fields, zap.Any(key, value))
	return b
}

func (b *OperationBuilder) Build() *OperationTracer {
	return &OperationTracer{logger: b.logger, fields: b.fields}
}

type OperationTracer struct {
	logger *zap.Logger
	fields []zap.Field
}

func (t *OperationTracer) Step(name string) *EventBuilder {
	return t.event("step", zap.String("step", name))
}

func (t *OperationTracer) Success() *EventBuilder {
	return t.event("success")
}

func (t *OperationTracer) Error(err error) *EventBuilder {
	return t.event("error", zap.Error(err))
}

func (t *OperationTracer) event(outcome string, extra ...zap.Field) *EventBuilder {
	fields := make([]zap.Field, 0, len(t.fields)+len(extra)+1)
	fields = append(fields, t.fields...)
	fields = append(fields, zap.String("outcome", outcome))
	fields = append(fields, extra...)
	return &EventBuilder{logger: t.logger, outcome: outcome, fields: fields}
}

type EventBuilder struct {
	logger  *zap.Logger
	outcome string
	fields  []zap.Field
}

func (e *EventBuilder) WithString(key, value string) *EventBuilder {
	e.fields = append(e.fields, zap.String(key, value))
	return e
}

func (e *EventBuilder) WithInt(key string, value int) *EventBuilder {
	e.fields = append(e.fields, zap.Int(key, value))
	return e
}

func (e *EventBuilder) WithBool(key string, value bool) *EventBuilder {
	e.fields = append(e.fields, zap.Bool(key, value))
	return e
}

func (e *EventBuilder) WithUUID(key string, value uuid.UUID) *EventBuilder {
	e.fields = append(e.fields, zap.String(key, value.String()))
	return e
}

func (e *EventBuilder) WithParam(key string, value any) *EventBuilder {
	e.fields = append(e.fields, zap.Any(key, value))
	return e
}

func (e *EventBuilder) Log() {
	msg := fmt.Sprintf("operation %s", e.outcome)
	switch e.outcome {
	case "error":
		e.logger.Error(msg, e.fields...)
	case "step":
		e.logger.Debug(msg, e.fields...)
	default:
		e.logger.Info(msg, e.fields...)
	}
}
