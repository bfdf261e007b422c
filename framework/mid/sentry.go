package mid

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/evstaffing/invoice-service/framework/web"
)

func captureSentryError(ctx *gin.Context, err error) {
	if hub := sentrygin.GetHubFromContext(ctx); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetLevel(sentry.LevelError)
			scope.SetTag("path", ctx.FullPath())
			hub.CaptureException(err)
		})
	}
}

// Sentry reports handler errors that end up as a 5xx response.
func Sentry() web.Middleware {
	return func(before web.Handler) web.Handler {
		return func(ctx *gin.Context) error {
			err := before(ctx)
			if err == nil {
				return nil
			}

			var webErr *web.Error
			if !errors.As(err, &webErr) || webErr.Status >= http.StatusInternalServerError {
				captureSentryError(ctx, err)
			}

			return err
		}
	}
}
