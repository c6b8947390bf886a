package taskmock

import (
	"context"

	domain "mnh-itaccess-backend/internal/domain/task"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn               func(ctx context.Context, a *domain.Assignment) error
	GetByTaskIDFn          func(ctx context.Context, taskID string) (*domain.Assignment, error)
	GetByTaskIDForUpdateFn func(ctx context.Context, taskID string) (*domain.Assignment, error)
	GetByRequestIDFn       func(ctx context.Context, requestNumericID uint64) (*domain.Assignment, error)
	ListByOfficerFn        func(ctx context.Context, officerID string) ([]domain.Assignment, error)
	SaveFn                 func(ctx context.Context, a *domain.Assignment) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Assignment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByTaskID(ctx context.Context, taskID string) (*domain.Assignment, error) {
	if m.GetByTaskIDFn != nil {
		return m.GetByTaskIDFn(ctx, taskID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByTaskIDForUpdate(ctx context.Context, taskID string) (*domain.Assignment, error) {
	if m.GetByTaskIDForUpdateFn != nil {
		return m.GetByTaskIDForUpdateFn(ctx, taskID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByRequestID(ctx context.Context, requestNumericID uint64) (*domain.Assignment, error) {
	if m.GetByRequestIDFn != nil {
		return m.GetByRequestIDFn(ctx, requestNumericID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByOfficer(ctx context.Context, officerID string) ([]domain.Assignment, error) {
	if m.ListByOfficerFn != nil {
		return m.ListByOfficerFn(ctx, officerID)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Assignment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}
