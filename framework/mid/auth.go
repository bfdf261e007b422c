package mid

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
	"google.golang.org/api/idtoken"

	"github.com/evstaffing/invoice-service/common"
	"github.com/evstaffing/invoice-service/framework/web"
	"github.com/evstaffing/invoice-service/internal"
	"github.com/evstaffing/invoice-service/logger"
)

const (
	// https://cloud.google.com/tasks/docs/creating-appengine-tasks#firewall_rules
	appEngineUserIPHeader = "X-Appengine-User-IP"
	appEngineCloudTasksIP = "0.1.0.2"

	adminClaim = "admin"
)

// Auth errors
var (
	ErrForbidden          = errors.New("forbidden operation")
	ErrUnauthorized       = errors.New("unauthorized operation")
	errNoAuthHeader       = errors.New("no authorization header")
	errInvalidAuthHeader  = errors.New("invalid authorization header format, expected Bearer <token>")
	errNoMatchingAudience = errors.New("invalid token: does not match any valid audience")
)

// TokenVerifier verifies Firebase ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AllowedJobEmails lists the service accounts that may call the task endpoints.
func AllowedJobEmails() []string {
	return []string{
		common.TaskServiceAccountEmail(),
		fmt.Sprintf("%s@appspot.gserviceaccount.com", common.ProjectID),
	}
}

func bearerToken(ctx *gin.Context) (string, error) {
	authHeader := ctx.Request.Header.Get("Authorization")
	if authHeader == "" {
		return "", errNoAuthHeader
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errInvalidAuthHeader
	}

	return parts[1], nil
}

// AuthUser authenticates requests coming from the client app with a Firebase
// ID token and stores the user's identity on the context.
func AuthUser(verifier TokenVerifier) web.Middleware {
	return func(handler web.Handler) web.Handler {
		return func(ctx *gin.Context) error {
			idToken, err := bearerToken(ctx)
			if err != nil {
				return web.NewRequestError(err, http.StatusUnauthorized)
			}

			token, err := verifier.VerifyIDToken(ctx, idToken)
			if err != nil {
				return web.NewRequestError(ErrUnauthorized, http.StatusUnauthorized)
			}

			email, _ := token.Claims["email"].(string)
			if email == "" {
				return web.NewRequestError(ErrUnauthorized, http.StatusUnauthorized)
			}

			email = strings.ToLower(email)
			isAdmin, _ := token.Claims[adminClaim].(bool)

			ctx.Set(common.CtxKeys.Claims, token.Claims)
			ctx.Set(common.CtxKeys.UserID, token.UID)
			ctx.Set(common.CtxKeys.Email, email)
			ctx.Set(common.CtxKeys.Admin, isAdmin)

			if name, ok := token.Claims["name"].(string); ok {
				ctx.Set(common.CtxKeys.Name, name)
			}

			internal.SetCaller(ctx, email)

			l := logger.FromContext(ctx)
			l.SetLabels(map[string]string{
				common.CtxKeys.Email:  email,
				common.CtxKeys.UserID: token.UID,
			})

			return handler(ctx)
		}
	}
}

// AuthAdmin allows only users carrying the admin custom claim. It must run after AuthUser.
func AuthAdmin() web.Middleware {
	return func(handler web.Handler) web.Handler {
		return func(ctx *gin.Context) error {
			if !ctx.GetBool(common.CtxKeys.Admin) {
				return web.NewRequestError(ErrForbidden, http.StatusForbidden)
			}

			return handler(ctx)
		}
	}
}

func validateIDTokenWithAudienceList(ctx *gin.Context, token string, audiences []string) (*idtoken.Payload, error) {
	for _, audience := range audiences {
		payload, err := idtoken.Validate(ctx, token, audience)
		if err == nil {
			return payload, nil
		}
	}

	logger.FromContext(ctx).Println(errNoMatchingAudience)

	return nil, errNoMatchingAudience
}

// AuthServiceAccount validates OIDC tokens from the given service accounts.
// Localhost and App Engine cron/task traffic skip validation.
func AuthServiceAccount(validClaimEmails []string) web.Middleware {
	return func(handler web.Handler) web.Handler {
		return func(ctx *gin.Context) error {
			if common.IsLocalhost {
				return handler(ctx)
			}

			if ctx.Request.Header.Get(appEngineUserIPHeader) == appEngineCloudTasksIP {
				return handler(ctx)
			}

			token, err := bearerToken(ctx)
			if err != nil {
				return web.NewRequestError(err, http.StatusUnauthorized)
			}

			payload, err := validateIDTokenWithAudienceList(ctx, token, []string{common.GAEService, common.APIGateway})
			if err != nil {
				return web.NewRequestError(err, http.StatusUnauthorized)
			}

			email, _ := payload.Claims["email"].(string)
			if !slices.Contains(validClaimEmails, email) {
				logger.FromContext(ctx).Println("invalid token: does not match any valid claims email", email, validClaimEmails)
				return web.NewRequestError(ErrForbidden, http.StatusForbidden)
			}

			internal.SetCaller(ctx, email)

			return handler(ctx)
		}
	}
}
