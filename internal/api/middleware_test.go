package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	config "github.com/mwantia/pathways/internal/config/server"
	"github.com/mwantia/pathways/pkg/log"
	"github.com/stretchr/testify/assert"
)

func TestRecoveryReturnsInternalError(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWriterLogger("api", config.LogServerConfig{Level: "DEBUG"}, &buf)

	h := RequestID(Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal_error")
	assert.Contains(t, buf.String(), "boom")
}

func TestAccessLogWritesRequestLine(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWriterLogger("api", config.LogServerConfig{Level: "DEBUG"}, &buf)

	h := AccessLog(logger, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/brew", nil))

	assert.Contains(t, buf.String(), "GET /brew 418")
	assert.Contains(t, buf.String(), "route=/brew")
}
