package internal

import (
	"time"

	"github.com/gin-gonic/gin"
)

// CtxDataKey is the gin key the per-request Data lives under.
const CtxDataKey = "invoice-service-request"

// Data is the per-request state shared by the framework middlewares.
type Data struct {
	TraceID    string
	StatusCode int
	Now        time.Time
	// Caller is the verified email of the user or service account, if any.
	Caller string
}

// Latency returns the time elapsed since the request started.
func (d *Data) Latency() time.Duration {
	return time.Since(d.Now)
}

// ContextWithData sets a gin.Context with context data.
func ContextWithData(ctx *gin.Context, data *Data) {
	ctx.Set(CtxDataKey, data)
}

// DataFromContext retrieves data from gin.Context.
func DataFromContext(ctx *gin.Context) (*Data, bool) {
	v, ok := ctx.Value(CtxDataKey).(*Data)
	return v, ok
}

// SetCaller records the authenticated identity on the request data, if present.
func SetCaller(ctx *gin.Context, caller string) {
	if v, ok := DataFromContext(ctx); ok {
		v.Caller = caller
	}
}
