package common

import (
	"fmt"
	"time"

	"cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type TaskQueue string

const (
	TaskQueueInvoiceFollowUps TaskQueue = "invoice-follow-ups"
	TaskQueueDefault          TaskQueue = "default"
)

var (
	queueResourceNameFormat   = "projects/%s/locations/%s/queues/%s"
	serviceAccountEmailFormat = "tasks@%s.iam.gserviceaccount.com"
)

type CloudTaskConfig struct {
	Method           cloudtaskspb.HttpMethod
	Path             string
	Queue            TaskQueue
	Body             []byte
	ScheduleTime     *timestamppb.Timestamp
	DispatchDeadline *durationpb.Duration
	URL              string
	Audience         string
}

// TaskServiceAccountEmail is the identity Cloud Tasks signs OIDC tokens with.
func TaskServiceAccountEmail() string {
	return fmt.Sprintf(serviceAccountEmailFormat, ProjectID)
}

// Request builds the Cloud Tasks create request for this config.
func (ctc *CloudTaskConfig) Request() *cloudtaskspb.CreateTaskRequest {
	audience := CreateAppEngineAudience()
	if ctc.Audience != "" {
		audience = ctc.Audience
	}

	url := CreateCloudTaskURL(ctc.Path)
	if ctc.URL != "" {
		url = ctc.URL
	}

	return &cloudtaskspb.CreateTaskRequest{
		Parent: GetQueueResourceName(ctc.Queue),
		Task: &cloudtaskspb.Task{
			MessageType: &cloudtaskspb.Task_HttpRequest{
				HttpRequest: &cloudtaskspb.HttpRequest{
					HttpMethod: ctc.Method,
					Url:        url,
					Headers:    map[string]string{"Content-Type": "application/json"},
					Body:       ctc.Body,
					AuthorizationHeader: &cloudtaskspb.HttpRequest_OidcToken{
						OidcToken: &cloudtaskspb.OidcToken{
							ServiceAccountEmail: TaskServiceAccountEmail(),
							Audience:            audience,
						},
					},
				},
			},
			ScheduleTime:     ctc.ScheduleTime,
			DispatchDeadline: ctc.DispatchDeadline,
		},
	}
}

// TimeToTimestamp creates timestamp.Timestamp from go time.Time
func TimeToTimestamp(t time.Time) *timestamppb.Timestamp {
	return timestamppb.New(t)
}

func GetQueueResourceName(queue TaskQueue) string {
	return fmt.Sprintf(queueResourceNameFormat, ProjectID, location, queue)
}

func CreateCloudTaskURL(path string) string {
	return CreateAppEngineAudience() + path
}
