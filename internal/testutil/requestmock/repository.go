package requestmock

import (
	"context"

	domain "mnh-itaccess-backend/internal/domain/request"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only fill the function fields a test needs.
type Repo struct {
	CreateFn                  func(ctx context.Context, r *domain.Request) error
	GetByRequestIDFn          func(ctx context.Context, requestID string) (*domain.Request, error)
	GetByRequestIDForUpdateFn func(ctx context.Context, requestID string) (*domain.Request, error)
	GetByIDForUpdateFn        func(ctx context.Context, id uint64) (*domain.Request, error)
	SaveFn                    func(ctx context.Context, r *domain.Request) error
	ListPendingAtStageFn      func(ctx context.Context, stage int, f domain.Filter) ([]domain.Request, error)
	ListDecidedAtStageFn      func(ctx context.Context, stage int, f domain.Filter) ([]domain.Request, error)
	ListFn                    func(ctx context.Context, f domain.Filter) ([]domain.Request, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Request) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRequestID(ctx context.Context, requestID string) (*domain.Request, error) {
	if m.GetByRequestIDFn != nil {
		return m.GetByRequestIDFn(ctx, requestID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*domain.Request, error) {
	if m.GetByRequestIDForUpdateFn != nil {
		return m.GetByRequestIDForUpdateFn(ctx, requestID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Request, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, r *domain.Request) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) ListPendingAtStage(ctx context.Context, stage int, f domain.Filter) ([]domain.Request, error) {
	if m.ListPendingAtStageFn != nil {
		return m.ListPendingAtStageFn(ctx, stage, f)
	}
	return nil, nil
}

func (m *Repo) ListDecidedAtStage(ctx context.Context, stage int, f domain.Filter) ([]domain.Request, error) {
	if m.ListDecidedAtStageFn != nil {
		return m.ListDecidedAtStageFn(ctx, stage, f)
	}
	return nil, nil
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Request, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}
