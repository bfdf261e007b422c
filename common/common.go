package common

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	CtxKeys struct {
		UserID  string
		Email   string
		Admin   string
		Name    string
		Claims  string
		TraceID string
	}

	ProjectID string

	GAEService string

	GAEVersion string

	Env string

	// Production flag indicating if app is running the production backend on appengine
	Production bool

	// IsLocalhost flag indicating if app is running on localhost
	IsLocalhost bool

	// SentryDSN is empty when crash reporting is disabled.
	SentryDSN string

	appEngineURLFormat = "https://%s-dot-%s.uc.r.appspot.com"

	location = "us-central1"

	APIGateway string
)

const (
	productionProject = "evstaffing-prod"

	defaultProject = "evstaffing-dev"

	// DefaultCurrency is the only currency invoices are issued in.
	DefaultCurrency = "usd"

	TestProjectID = defaultProject
)

const (
	DayDuration = 24 * time.Hour
)

func initEnvVariables() {
	ProjectID = GetEnv("GOOGLE_CLOUD_PROJECT", defaultProject)

	IsLocalhost = gin.Mode() != gin.ReleaseMode
	GAEService = GetEnv("GAE_SERVICE", "invoice-service")
	GAEVersion = GetEnv("GAE_VERSION", "localhost")
	SentryDSN = GetEnv("SENTRY_DSN", "")

	if value := os.Getenv("FIRESTORE_EMULATOR_HOST"); value != "" {
		log.Printf("Using Firestore Emulator: %s", value)
	}

	APIGateway = fmt.Sprintf(appEngineURLFormat, GAEService, ProjectID)

	if ProjectID == productionProject && !IsLocalhost {
		Env = "production"
		Production = true
	} else {
		Env = "development"
		Production = false
	}
}

func init() {
	initEnvVariables()

	CtxKeys.UserID = "userId"
	CtxKeys.Email = "email"
	CtxKeys.Admin = "admin"
	CtxKeys.Name = "name"
	CtxKeys.Claims = "claims"
	CtxKeys.TraceID = "traceId"
}

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

// GetEnvBool parses a boolean env var, returning fallback when unset or malformed.
func GetEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(GetEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}

	return v
}

func String(v string) *string {
	return &v
}

func Int(v int) *int {
	return &v
}

func Int64(v int64) *int64 {
	return &v
}

func Bool(v bool) *bool {
	return &v
}

func CreateAppEngineAudienceWithValues(service, project string) string {
	return fmt.Sprintf(appEngineURLFormat, service, project)
}

func CreateAppEngineAudience() string {
	return CreateAppEngineAudienceWithValues(GAEService, ProjectID)
}
