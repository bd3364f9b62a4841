package myqueue

import (
	"context"
	"net/http"

	"github.com/MarcGrol/storefront/lib/mylog"
)

type Task struct {
	UID            string
	WebhookURLPath string
	Payload        []byte
}

// New returns a queue that delivers each task as a PUT request on WebhookURLPath.
// The in-process queue delivers to the given handler, Cloud Tasks to the deployed app.
var New func(c context.Context, handler http.Handler, logger mylog.Logger) (TaskQueuer, func(), error)

//go:generate mockgen -source=api.go -package myqueue -destination queuer_mock.go TaskQueuer
type TaskQueuer interface {
	Enqueue(c context.Context, task Task) error
}
