package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LokiLogger logs locally through zap (with trace correlation via otelzap)
// and, when a Loki URL is configured, pushes the same entries to Loki.
type LokiLogger struct {
	Logger      *otelzap.Logger
	ServiceName string
	lokiURL     string
	httpClient  *http.Client
}

type LokiLogEntry struct {
	Streams []LokiStream `json:"streams"`
}

type LokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

// NewLokiLogger builds a production zap logger. An empty lokiURL disables
// the Loki push.
func NewLokiLogger(serviceName, lokiURL string) (*LokiLogger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	zapLogger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	logger := newLokiLogger(zapLogger, serviceName)

	if lokiURL != "" {
		logger.lokiURL = lokiURL + "/loki/api/v1/push"
	}

	return logger, nil
}

// NewNopLogger discards everything; used by tests.
func NewNopLogger() *LokiLogger {
	return newLokiLogger(zap.NewNop(), "test")
}

func newLokiLogger(zapLogger *zap.Logger, serviceName string) *LokiLogger {
	return &LokiLogger{
		Logger:      otelzap.New(zapLogger),
		ServiceName: serviceName,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (l *LokiLogger) Sync() error {
	return l.Logger.Sync()
}

func (l *LokiLogger) LokiEnabled() bool {
	return l.lokiURL != ""
}

func (l *LokiLogger) InfoWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.logWithTrace(ctx, zapcore.InfoLevel, msg, fields...)
}

func (l *LokiLogger) ErrorWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.logWithTrace(ctx, zapcore.ErrorLevel, msg, fields...)
}

func (l *LokiLogger) logWithTrace(ctx context.Context, level zapcore.Level, msg string, fields ...zap.Field) {
	logFields := append(fields, zap.String("service", l.ServiceName))

	switch level {
	case zapcore.ErrorLevel:
		l.Logger.Ctx(ctx).Error(msg, logFields...)
	case zapcore.WarnLevel:
		l.Logger.Ctx(ctx).Warn(msg, logFields...)
	default:
		l.Logger.Ctx(ctx).Info(msg, logFields...)
	}

	if !l.LokiEnabled() {
		return
	}

	entry, err := l.buildEntry(ctx, level, msg, logFields, time.Now())
	if err != nil {
		l.Logger.Ctx(ctx).Error("Failed to marshal log data", zap.Error(err))
		return
	}

	go l.push(entry)
}

// buildEntry renders msg and fields as one JSON line in Loki's push format.
func (l *LokiLogger) buildEntry(ctx context.Context, level zapcore.Level, msg string, fields []zap.Field, now time.Time) (LokiLogEntry, error) {
	enc := zapcore.NewMapObjectEncoder()
	for _, field := range fields {
		field.AddTo(enc)
	}

	logData := enc.Fields
	logData["timestamp"] = now.Format(time.RFC3339Nano)
	logData["level"] = level.String()
	logData["message"] = msg

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		logData["trace_id"] = span.SpanContext().TraceID().String()
		logData["span_id"] = span.SpanContext().SpanID().String()
	}

	line, err := json.Marshal(logData)
	if err != nil {
		return LokiLogEntry{}, err
	}

	return LokiLogEntry{
		Streams: []LokiStream{
			{
				Stream: map[string]string{
					"service": l.ServiceName,
					"level":   level.String(),
				},
				Values: [][]string{
					{fmt.Sprintf("%d", now.UnixNano()), string(line)},
				},
			},
		},
	}, nil
}

func (l *LokiLogger) push(entry LokiLogEntry) {
	body, err := json.Marshal(entry)
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, l.lokiURL, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	io.Copy(io.Discard, resp.Body)
}
