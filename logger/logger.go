package logger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/logging"
	"github.com/gin-gonic/gin"
	"google.golang.org/genproto/googleapis/api/monitoredres"

	"github.com/evstaffing/invoice-service/common"
)

const (
	// CtxLoggerKey is how the request logger is stored/retrieved.
	CtxLoggerKey = "invoice-service-logger"

	// requestLogID holds one summary entry per request.
	requestLogID = "requests"

	// entryLogID holds the individual entries written while serving a request.
	entryLogID = "entries"

	moduleIDField  = "module_id"
	projectIDField = "project_id"
	versionIDField = "version_id"

	appEngineType = "gae_app"

	gcpLogging = "GCP_LOGGING"

	traceHeader = "X-Cloud-Trace-Context"
)

var (
	requestLogger *logging.Logger
	entryLogger   *logging.Logger
	resource      *monitoredres.MonitoredResource
	cloudLogging  bool
)

// Provider returns the logger bound to ctx. Services and DALs hold a Provider
// rather than a logger so each request logs under its own trace.
type Provider func(ctx context.Context) ILogger

type Logging struct {
	client *logging.Client
}

// NewLogging initializes the cloud logging clients used by every request logger.
func NewLogging(ctx context.Context) (*Logging, error) {
	client, err := logging.NewClient(ctx, common.ProjectID)
	if err != nil {
		return nil, err
	}

	requestLogger = client.Logger(requestLogID)
	entryLogger = client.Logger(entryLogID)

	// local runs print to stdout only unless GCP_LOGGING says otherwise
	cloudLogging = common.GetEnvBool(gcpLogging, !common.IsLocalhost)

	resource = &monitoredres.MonitoredResource{
		Labels: map[string]string{
			moduleIDField:  common.GAEService,
			projectIDField: common.ProjectID,
			versionIDField: common.GAEVersion,
		},
		Type: appEngineType,
	}

	return &Logging{client}, nil
}

// Logger returns the logger that was stored inside the context.
func (l *Logging) Logger(ctx context.Context) ILogger {
	return FromContext(ctx)
}

// Close flushes buffered entries.
func (l *Logging) Close() error {
	if l == nil || l.client == nil {
		return nil
	}

	return l.client.Close()
}

// NewLogger sets gin.Context with a new logger, with the related google trace id.
func NewLogger(ctx *gin.Context) (*Logger, error) {
	l := newDefaultLogger()

	var h string
	if ctx.Request != nil {
		h = ctx.Request.Header.Get(traceHeader)
	}

	if i := strings.IndexByte(h, '/'); i > 0 {
		if t := h[:i]; strings.Count(t, "0") != len(t) {
			l.trace = getTrace(l.started, t)
		}
	}

	ctx.Set(CtxLoggerKey, l)

	return l, nil
}

// FromContext returns the logger that was stored in context.
// If there isn't logger stored, returns a new logger.
func FromContext(ctx context.Context) ILogger {
	if ctx == nil {
		return newDefaultLogger()
	}

	if l, ok := ctx.Value(CtxLoggerKey).(*Logger); ok {
		return l
	}

	return newDefaultLogger()
}

func getTrace(started time.Time, id string) string {
	return fmt.Sprintf("projects/%s/traces/%d%s", common.ProjectID, started.UnixNano(), id)
}
