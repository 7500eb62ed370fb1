//go:build gcloud

package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type CloudTasksClient struct {
	client     *cloudtasks.Client
	projectID  string
	locationID string
	queueID    string
	targetURL  string
	maxRetries int
}

type CloudTasksConfig struct {
	ProjectID  string
	LocationID string
	QueueID    string
	TargetURL  string
	MaxRetries int
}

func NewCloudTasksClient(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksClient, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &CloudTasksClient{
		client:     client,
		projectID:  cfg.ProjectID,
		locationID: cfg.LocationID,
		queueID:    cfg.QueueID,
		targetURL:  cfg.TargetURL,
		maxRetries: maxRetries,
	}, nil
}

func (c *CloudTasksClient) queuePath() string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", c.projectID, c.locationID, c.queueID)
}

func (c *CloudTasksClient) taskPath(name string) string {
	return c.queuePath() + "/tasks/" + name
}

func (c *CloudTasksClient) CreateTask(ctx context.Context, task *TimerTask) (*TaskResponse, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timer task: %w", err)
	}

	cloudTask := &taskspb.Task{
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: &taskspb.HttpRequest{
				HttpMethod: taskspb.HttpMethod_POST,
				Url:        c.targetURL,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
				Body: payload,
			},
		},
	}
	if task.Name != "" {
		cloudTask.Name = c.taskPath(task.Name)
	}
	if !task.ScheduleAt.IsZero() {
		cloudTask.ScheduleTime = timestamppb.New(task.ScheduleAt)
	}

	req := &taskspb.CreateTaskRequest{
		Parent: c.queuePath(),
		Task:   cloudTask,
	}

	attrs := []any{
		slog.String("timer_key", task.Key().String()),
		slog.String("task_name", task.Name),
	}

	var resp *TaskResponse
	err = withRetry(ctx, c.maxRetries, "task registration", attrs, func() error {
		var rerr error
		resp, rerr = c.createTask(ctx, req, task)
		return rerr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register task: %w", err)
	}
	return resp, nil
}

func (c *CloudTasksClient) createTask(ctx context.Context, req *taskspb.CreateTaskRequest, task *TimerTask) (*TaskResponse, error) {
	slog.DebugContext(ctx, "registering timer to Cloud Tasks",
		slog.String("queue_path", req.Parent),
		slog.String("timer_key", task.Key().String()),
	)

	createdTask, err := c.client.CreateTask(ctx, req)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, fmt.Errorf("%w: %s", ErrTaskAlreadyExists, task.Name)
		}
		slog.WarnContext(ctx, "failed to create cloud task",
			slog.String("timer_key", task.Key().String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create cloud task: %w", err)
	}

	slog.InfoContext(ctx, "timer task registered to Cloud Tasks",
		slog.String("task_name", createdTask.Name),
		slog.String("timer_key", task.Key().String()),
	)

	resp := &TaskResponse{Name: createdTask.Name}
	if createdTask.ScheduleTime != nil {
		resp.ScheduleTime = createdTask.ScheduleTime.AsTime()
	}
	if createdTask.CreateTime != nil {
		resp.CreateTime = createdTask.CreateTime.AsTime()
	}
	return resp, nil
}

// DeleteTask accepts either a short task id or the full resource name
// returned by CreateTask.
func (c *CloudTasksClient) DeleteTask(ctx context.Context, taskName string) error {
	taskPath := taskName
	if !strings.HasPrefix(taskName, "projects/") {
		taskPath = c.taskPath(taskName)
	}
	attrs := []any{slog.String("task_name", taskPath)}

	err := withRetry(ctx, c.maxRetries, "task deletion", attrs, func() error {
		return c.deleteTask(ctx, taskPath)
	})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (c *CloudTasksClient) deleteTask(ctx context.Context, taskPath string) error {
	err := c.client.DeleteTask(ctx, &taskspb.DeleteTaskRequest{Name: taskPath})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			slog.InfoContext(ctx, "task not found in Cloud Tasks (may have been processed)",
				slog.String("task_name", taskPath),
			)
			return nil
		}
		slog.WarnContext(ctx, "failed to delete cloud task",
			slog.String("task_name", taskPath),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to delete cloud task: %w", err)
	}

	slog.InfoContext(ctx, "task deleted from Cloud Tasks", slog.String("task_name", taskPath))
	return nil
}

func (c *CloudTasksClient) Close() error {
	return c.client.Close()
}

