package uow

import (
	"context"

	"mnh-itaccess-backend/internal/domain/notification"
	"mnh-itaccess-backend/internal/domain/request"
	"mnh-itaccess-backend/internal/domain/task"
)

type Repos struct {
	Requests      request.Repository
	Tasks         task.Repository
	Notifications notification.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the request row first, then pass it in. Serializes
	// concurrent decisions on the same request.
	WithinRequestTx(ctx context.Context, requestID string, fn func(r Repos, req *request.Request) error) error
}
