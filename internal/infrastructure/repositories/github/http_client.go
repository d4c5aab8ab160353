package github

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cachesweep/internal/domain/entities"
)

const (
	retryWaitMin = 1 * time.Second
	retryWaitMax = 30 * time.Second
)

// newHTTPClient builds the transport used by the GitHub client: a pooled
// client with exponential backoff on transport errors, 429 and 5xx.
// Once retries are exhausted the last response is handed back untouched so
// callers still see the real status code.
func newHTTPClient(settings *entities.Settings, waitMin, waitMax time.Duration) *http.Client {
	base := cleanhttp.DefaultPooledClient()
	if settings.TimeoutSeconds > 0 {
		base.Timeout = time.Duration(settings.TimeoutSeconds) * time.Second
	}

	client := retryablehttp.NewClient()
	client.HTTPClient = base
	client.RetryMax = settings.RetryMax
	client.RetryWaitMin = waitMin
	client.RetryWaitMax = waitMax
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = &leveledLogger{entry: logger.WithField("component", "http")}

	return client.StandardClient()
}

// leveledLogger adapts logrus to retryablehttp.LeveledLogger.
type leveledLogger struct {
	entry *logger.Entry
}

var _ retryablehttp.LeveledLogger = (*leveledLogger)(nil)

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Error(msg)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Debug(msg) // request chatter stays out of the default output
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Debug(msg)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Warn(msg)
}

func (l *leveledLogger) with(keysAndValues []interface{}) *logger.Entry {
	fields := make(logger.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return l.entry.WithFields(fields)
}
