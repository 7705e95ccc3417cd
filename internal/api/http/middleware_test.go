package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeoutMiddleware(t *testing.T) {
	t.Parallel()

	m := NewTimeoutMiddleware(time.Millisecond)
	h := func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(10 * time.Millisecond)

		select {
		case <-r.Context().Done():
		default:
			t.Error("request context not canceled")
		}
	}

	r, _ := http.NewRequest(http.MethodGet, "testurl", nil)
	m(h)(nil, r)
}

func TestNewLoggingMiddleware(t *testing.T) {
	t.Parallel()

	l, hook := test.NewNullLogger()
	m := NewLoggingMiddleware(l)
	h := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTeapot)
	}

	r, _ := http.NewRequest(http.MethodGet, "/overview", nil)
	w := httptest.NewRecorder()
	m(h)(w, r)

	assert.Equal(t, http.StatusTeapot, w.Code)
	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, http.MethodGet, entry.Data["method"])
	assert.Equal(t, "/overview", entry.Data["path"])
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
}
