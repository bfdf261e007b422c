package mid

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/evstaffing/invoice-service/framework/web"
	"github.com/evstaffing/invoice-service/internal"
	"github.com/evstaffing/invoice-service/logger"
)

// Panics recovers from panics and converts the panic to an error.
func Panics() web.Middleware {
	return func(after web.Handler) web.Handler {
		return func(ctx *gin.Context) (err error) {
			v, ok := internal.DataFromContext(ctx)
			if !ok {
				return web.NewShutdownError("web value missing from context")
			}

			defer func() {
				r := recover()
				if r == nil {
					return
				}

				err = fmt.Errorf("panic: %v", r)
				logger.FromContext(ctx).Errorf("%s: %s\n%s", v.TraceID, err, debug.Stack())

				if hub := sentrygin.GetHubFromContext(ctx); hub != nil {
					hub.WithScope(func(scope *sentry.Scope) {
						scope.SetTag("trace", v.TraceID)
						hub.Recover(err)
					})
					hub.Flush(5 * time.Second)
				}
			}()

			return after(ctx)
		}
	}
}
