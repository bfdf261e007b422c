package connection

import (
	"context"
	"errors"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	"cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"github.com/googleapis/gax-go/v2"

	"github.com/evstaffing/invoice-service/common"
	"github.com/evstaffing/invoice-service/logger"
)

var (
	ErrCloudTasksInitialization = errors.New("cloud tasks initialization error")
)

// CloudTaskClient is the subset of the Cloud Tasks API used to enqueue work.
type CloudTaskClient interface {
	CreateTask(ctx context.Context, config *common.CloudTaskConfig) (*cloudtaskspb.Task, error)
}

type taskCreator interface {
	CreateTask(ctx context.Context, req *cloudtaskspb.CreateTaskRequest, opts ...gax.CallOption) (*cloudtaskspb.Task, error)
	Close() error
}

type CloudTasksClient struct {
	tasks taskCreator
}

func NewCloudTasksClient(ctx context.Context, log *logger.Logging) (*CloudTasksClient, error) {
	c, err := cloudtasks.NewClient(ctx)
	if err != nil {
		log.Logger(ctx).Errorf("%s: %s", ErrCloudTasksInitialization, err)
		return nil, ErrCloudTasksInitialization
	}

	return &CloudTasksClient{c}, nil
}

// CreateTask enqueues an HTTP task described by config.
func (c *CloudTasksClient) CreateTask(ctx context.Context, config *common.CloudTaskConfig) (*cloudtaskspb.Task, error) {
	return c.tasks.CreateTask(ctx, config.Request())
}

// CloudTasks returns the task client as the narrow interface services depend on.
func (c *Connection) CloudTasks() CloudTaskClient {
	return c.CloudTasksClient
}
