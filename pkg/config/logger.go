package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AppLogger is a zap logger with trace correlation that can also push lines
// to Loki. Pushing is disabled when no Loki URL is configured.
type AppLogger struct {
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

func NewAppLogger(serviceName, lokiURL string) (*AppLogger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	zapLogger, err := config.Build()

	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	return newAppLogger(zapLogger, serviceName, lokiURL), nil
}

// NewNopLogger discards every line.
func NewNopLogger() *AppLogger {
	return newAppLogger(zap.NewNop(), "test", "")
}

func newAppLogger(zapLogger *zap.Logger, serviceName, lokiURL string) *AppLogger {
	logger := &AppLogger{
		Logger:      otelzap.New(zapLogger),
		ServiceName: serviceName,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}

	if lokiURL != "" {
		logger.lokiURL = strings.TrimRight(lokiURL, "/") + "/loki/api/v1/push"
	}

	return logger
}

func (l *AppLogger) Zap() *zap.Logger {
	return l.Logger.Logger
}

func (l *AppLogger) Sync() error {
	return l.Logger.Sync()
}

func (l *AppLogger) LokiEnabled() bool {
	return l.lokiURL != ""
}

func (l *AppLogger) InfoWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.logWithTrace(ctx, zapcore.InfoLevel, msg, fields...)
}

func (l *AppLogger) ErrorWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.logWithTrace(ctx, zapcore.ErrorLevel, msg, fields...)
}

func (l *AppLogger) logWithTrace(ctx context.Context, level zapcore.Level, msg string, fields ...zap.Field) {
	fields = append(fields, zap.String("service", l.ServiceName))

	switch level {
	case zapcore.ErrorLevel:
		l.Logger.Ctx(ctx).Error(msg, fields...)
	case zapcore.WarnLevel:
		l.Logger.Ctx(ctx).Warn(msg, fields...)
	default:
		l.Logger.Ctx(ctx).Info(msg, fields...)
	}

	if l.LokiEnabled() {
		go l.SendToLoki(ctx, level, msg, fields)
	}
}

// LokiLine renders msg and fields as the JSON log line pushed to Loki.
func (l *AppLogger) LokiLine(ctx context.Context, level zapcore.Level, msg string, fields []zap.Field) ([]byte, error) {
	encoder := zapcore.NewMapObjectEncoder()

	for _, field := range fields {
		field.AddTo(encoder)
	}

	logData := encoder.Fields
	logData["timestamp"] = time.Now().Format(time.RFC3339Nano)
	logData["level"] = level.String()
	logData["message"] = msg
	logData["service"] = l.ServiceName

	span := trace.SpanFromContext(ctx)

	if span.SpanContext().IsValid() {
		logData["trace_id"] = span.SpanContext().TraceID().String()
		logData["span_id"] = span.SpanContext().SpanID().String()
	}

	return json.Marshal(logData)
}

func (l *AppLogger) SendToLoki(ctx context.Context, level zapcore.Level, msg string, fields []zap.Field) {
	if !l.LokiEnabled() {
		return
	}

	line, err := l.LokiLine(ctx, level, msg, fields)

	if err != nil {
		l.Logger.Error("Failed to marshal log data", zap.Error(err))
		return
	}

	entry := LokiLogEntry{
		Streams: []LokiStream{
			{
				Stream: map[string]string{
					"service": l.ServiceName,
					"level":   level.String(),
				},
				Values: [][]string{
					{fmt.Sprintf("%d", time.Now().UnixNano()), string(line)},
				},
			},
		},
	}

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

	resp.Body.Close()
}
