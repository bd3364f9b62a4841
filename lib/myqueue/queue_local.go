package myqueue

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/MarcGrol/storefront/lib/mylog"
)

type localTaskQueue struct {
	handler http.Handler
	logger  mylog.Logger
}

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newLocalQueue
	}
}

func newLocalQueue(c context.Context, handler http.Handler, logger mylog.Logger) (TaskQueuer, func(), error) {
	return &localTaskQueue{
			handler: handler,
			logger:  logger,
		}, func() {
		}, nil
}

// Enqueue delivers the task immediately on a fresh context, outside any transaction of the caller
func (q *localTaskQueue) Enqueue(c context.Context, task Task) error {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPut, task.WebhookURLPath, bytes.NewReader(task.Payload))
	if err != nil {
		return fmt.Errorf("error creating request for task %s: %s", task.UID, err)
	}

	resp := &taskResponse{header: http.Header{}}
	q.handler.ServeHTTP(resp, req)

	if resp.status >= 300 {
		return fmt.Errorf("task %s on %s failed with status %d: %s", task.UID, task.WebhookURLPath, resp.status, resp.body.String())
	}

	q.logger.Log(c, task.UID, mylog.SeverityDebug, "Task %s on %s completed with status %d", task.UID, task.WebhookURLPath, resp.status)

	return nil
}

type taskResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (r *taskResponse) Header() http.Header {
	return r.header
}

func (r *taskResponse) Write(data []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.body.Write(data)
}

func (r *taskResponse) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
}
