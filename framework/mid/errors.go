package mid

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evstaffing/invoice-service/framework/web"
	"github.com/evstaffing/invoice-service/internal"
	"github.com/evstaffing/invoice-service/logger"
)

// Errors handles errors coming out of the call chain. Request errors are
// returned to the client as-is, everything else becomes a generic 500.
func Errors() web.Middleware {
	return func(before web.Handler) web.Handler {
		return func(ctx *gin.Context) error {
			v, ok := internal.DataFromContext(ctx)
			if !ok {
				return web.NewShutdownError("web value missing from context")
			}

			err := before(ctx)
			if err == nil {
				return nil
			}

			l := logger.FromContext(ctx)

			var webErr *web.Error
			if errors.As(err, &webErr) && webErr.Status < http.StatusInternalServerError {
				l.Warningf("%s: request error: %v", v.TraceID, err)
			} else {
				l.Errorf("%s: ERROR: %v", v.TraceID, err)
				_ = ctx.Error(err)
			}

			if err := web.RespondError(ctx, err); err != nil {
				return err
			}

			// the shutdown error goes back to the base handler
			if web.IsShutdown(err) {
				return err
			}

			return nil
		}
	}
}
