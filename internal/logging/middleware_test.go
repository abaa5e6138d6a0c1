package logging

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewFromZap(zap.New(core)), logs
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	tests := []struct {
		status int
		level  zapcore.Level
	}{
		{http.StatusOK, zapcore.InfoLevel},
		{http.StatusNotFound, zapcore.WarnLevel},
		{http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		logger, logs := newObservedLogger()

		h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/listings", nil))

		completed := logs.FilterMessage("request completed").All()
		require.Len(t, completed, 1)
		assert.Equal(t, tt.level, completed[0].Level)

		fields := completed[0].ContextMap()
		assert.Equal(t, "/api/listings", fields["path"])
		assert.Equal(t, "GET", fields["method"])
		assert.EqualValues(t, tt.status, fields["status"])
	}
}

func TestRequestLogger_InjectsLogger(t *testing.T) {
	logger, logs := newObservedLogger()

	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		GetLoggerFromContext(r.Context()).Info("inside handler", "k", "v")
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))

	inside := logs.FilterMessage("inside handler").All()
	require.Len(t, inside, 1)
	fields := inside[0].ContextMap()
	assert.Equal(t, "/api/auth/login", fields["path"])
	assert.Equal(t, "v", fields["k"])
}

func TestGetLoggerFromContext_Fallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.NotNil(t, GetLoggerFromContext(req.Context()))
}

func TestWithFields_SortedKeys(t *testing.T) {
	logger, logs := newObservedLogger()

	logger.WithFields(map[string]any{"b": 2, "a": 1}).Info("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Context, 2)
	assert.Equal(t, "a", entries[0].Context[0].Key)
	assert.Equal(t, "b", entries[0].Context[1].Key)
}
