package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const traceIDHeader = "X-Trace-ID"

// TraceIDMiddleware tags every request with a trace id. An inbound
// X-Trace-ID is kept when it is a valid UUID so ids survive proxy hops.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceIDHeader)
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.New().String()
		}

		c.Set("trace_id", traceID)
		c.Writer.Header().Set(traceIDHeader, traceID)
		c.Next()
	}
}
