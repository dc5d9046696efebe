package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func traceIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("trace_id"))
	})
	return r
}

func TestTraceIDKeepsInboundID(t *testing.T) {
	r := traceIDRouter()
	inbound := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Trace-ID", inbound)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, inbound, w.Header().Get("X-Trace-ID"))
	assert.Equal(t, inbound, w.Body.String())
}

func TestTraceIDReplacesInvalidID(t *testing.T) {
	r := traceIDRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Trace-ID", "not-a-uuid")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	got := w.Header().Get("X-Trace-ID")
	assert.NotEqual(t, "not-a-uuid", got)
	_, err := uuid.Parse(got)
	assert.NoError(t, err)
}

func TestTraceIDMintsWhenAbsent(t *testing.T) {
	r := traceIDRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	_, err := uuid.Parse(w.Header().Get("X-Trace-ID"))
	assert.NoError(t, err)
	assert.Equal(t, w.Header().Get("X-Trace-ID"), w.Body.String())
}
