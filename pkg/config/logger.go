package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LokiLogger logs through zap with trace correlation and, when a Loki URL is
// configured, also pushes every entry to Loki.
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

func NewLokiLogger(serviceName, lokiURL, level string) (*LokiLogger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		config.Level = zap.NewAtomicLevelAt(parsed)
	}

	zapLogger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	logger := &LokiLogger{
		Logger:      otelzap.New(zapLogger),
		ServiceName: serviceName,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}

	if lokiURL != "" {
		logger.lokiURL = strings.TrimRight(lokiURL, "/") + "/loki/api/v1/push"
	}

	return logger, nil
}

// NewNopLogger discards everything. Handy in tests.
func NewNopLogger() *LokiLogger {
	return &LokiLogger{
		Logger:      otelzap.New(zap.NewNop()),
		ServiceName: "goalsapp",
		httpClient:  http.DefaultClient,
	}
}

func (l *LokiLogger) Sync() error {
	return l.Logger.Sync()
}

// Zap returns the plain zap logger for components that do not need trace context.
func (l *LokiLogger) Zap() *zap.Logger {
	return l.Logger.Logger
}

func (l *LokiLogger) InfoWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.logWithTrace(ctx, zapcore.InfoLevel, msg, fields...)
}

func (l *LokiLogger) WarnWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.logWithTrace(ctx, zapcore.WarnLevel, msg, fields...)
}

func (l *LokiLogger) ErrorWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.logWithTrace(ctx, zapcore.ErrorLevel, msg, fields...)
}

func (l *LokiLogger) logWithTrace(ctx context.Context, level zapcore.Level, msg string, fields ...zap.Field) {
	logFields := append(slices.Clip(fields), zap.String("service", l.ServiceName))

	switch level {
	case zapcore.ErrorLevel:
		l.Logger.Ctx(ctx).Error(msg, logFields...)
	case zapcore.WarnLevel:
		l.Logger.Ctx(ctx).Warn(msg, logFields...)
	default:
		l.Logger.Ctx(ctx).Info(msg, logFields...)
	}

	if l.lokiURL != "" {
		go l.SendToLoki(ctx, level, msg, logFields)
	}
}

// SendToLoki pushes a single entry. Failures are dropped.
func (l *LokiLogger) SendToLoki(ctx context.Context, level zapcore.Level, msg string, fields []zap.Field) {
	if l.lokiURL == "" {
		return
	}

	line, err := encodeLogLine(ctx, level, msg, l.ServiceName, fields)
	if err != nil {
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
					{fmt.Sprintf("%d", time.Now().UnixNano()), line},
				},
			},
		},
	}

	l.sendToLokiHTTP(entry)
}

func encodeLogLine(ctx context.Context, level zapcore.Level, msg, service string, fields []zap.Field) (string, error) {
	encoder := zapcore.NewMapObjectEncoder()
	for _, field := range fields {
		field.AddTo(encoder)
	}

	data := encoder.Fields
	data["timestamp"] = time.Now().Format(time.RFC3339Nano)
	data["level"] = level.String()
	data["message"] = msg
	data["service"] = service

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		data["trace_id"] = span.SpanContext().TraceID().String()
		data["span_id"] = span.SpanContext().SpanID().String()
	}

	line, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	return string(line), nil
}

func (l *LokiLogger) sendToLokiHTTP(entry LokiLogEntry) {
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
