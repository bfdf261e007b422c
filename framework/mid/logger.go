package mid

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evstaffing/invoice-service/framework/web"
	"github.com/evstaffing/invoice-service/internal"
	"github.com/evstaffing/invoice-service/logger"
)

const (
	healthCheckExcludePath = "/health"
)

// Logger writes some information about the request to the logs in the
// format: TraceID : (200) GET /foo -> IP ADDR (latency)
func Logger() web.Middleware {
	return func(before web.Handler) web.Handler {
		return func(ctx *gin.Context) error {
			if ctx.Request.URL.Path == healthCheckExcludePath {
				return before(ctx)
			}

			v, ok := internal.DataFromContext(ctx)
			if !ok {
				return web.NewShutdownError("web value missing from context")
			}

			l := logger.FromContext(ctx)

			l.Printf("%s: started : %s %s -> %s",
				v.TraceID,
				ctx.Request.Method, ctx.Request.URL.Path, ctx.Request.RemoteAddr,
			)

			err := before(ctx)

			if v.StatusCode >= http.StatusInternalServerError {
				if lastErr := ctx.Errors.Last(); lastErr != nil {
					l.Errorf("request failed: %s", lastErr)
				}
			}

			if v.Caller != "" {
				l.SetLabel("caller", v.Caller)
			}

			l.Printf("%s: completed : %s %s -> %s (%d) (%s)",
				v.TraceID,
				ctx.Request.Method, ctx.Request.URL.Path, ctx.Request.RemoteAddr,
				v.StatusCode, v.Latency(),
			)

			return err
		}
	}
}
