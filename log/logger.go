package log

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type Logger interface {
	Debug(msg string, keyAndValues ...interface{})
	Info(msg string, keyAndValues ...interface{})
	Warn(msg string, keyAndValues ...interface{})
	Error(msg string, keyAndValues ...interface{})
	Fatal(msg string, keyAndValues ...interface{})
}

type ZapLogger struct {
	inner *zap.SugaredLogger
}

func NewZapLogger(log *zap.Logger) ZapLogger {
	return ZapLogger{inner: log.Sugar()}
}

func (l ZapLogger) Debug(msg string, keyAndValues ...interface{}) {
	l.inner.Debugw(msg, keyAndValues...)
}

func (l ZapLogger) Info(msg string, keyAndValues ...interface{}) {
	l.inner.Infow(msg, keyAndValues...)
}

func (l ZapLogger) Warn(msg string, keyAndValues ...interface{}) {
	l.inner.Warnw(msg, keyAndValues...)
}

func (l ZapLogger) Error(msg string, keyAndValues ...interface{}) {
	l.inner.Errorw(msg, keyAndValues...)
}

func (l ZapLogger) Fatal(msg string, keyAndValues ...interface{}) {
	l.inner.Fatalw(msg, keyAndValues...)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

type loggingHandler struct {
	handler http.Handler
	logger  Logger
}

// NewLoggingHandler wraps handler so that every request is logged at info level once
// it completes.
func NewLoggingHandler(handler http.Handler, logger Logger) http.Handler {
	return &loggingHandler{handler: handler, logger: logger}
}

func (h *loggingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	h.handler.ServeHTTP(recorder, r)
	h.logger.Info("processed request",
		"method", r.Method,
		"path", r.URL.Path,
		"query", r.URL.RawQuery,
		"status", recorder.status,
		"duration", time.Since(start))
}
