package request

import "context"

// Filter narrows list queries. A nil/empty DepartmentIDs means no department
// restriction; StaffID restricts to a single requester's submissions.
type Filter struct {
	DepartmentIDs []string
	StaffID       string
}

type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetByRequestID(ctx context.Context, requestID string) (*Request, error)
	// GetByRequestIDForUpdate locks the row for the surrounding transaction.
	GetByRequestIDForUpdate(ctx context.Context, requestID string) (*Request, error)
	// GetByIDForUpdate is the numeric-PK variant, used when only a foreign
	// key is at hand (task sub-flow).
	GetByIDForUpdate(ctx context.Context, id uint64) (*Request, error)
	Save(ctx context.Context, r *Request) error

	// ListPendingAtStage: requests whose eligible stage is exactly `stage`
	// (all prior stages approved, this one pending).
	ListPendingAtStage(ctx context.Context, stage int, f Filter) ([]Request, error)
	// ListDecidedAtStage: requests whose stage `stage` was reached and
	// resolved, regardless of where the request is now.
	ListDecidedAtStage(ctx context.Context, stage int, f Filter) ([]Request, error)
	List(ctx context.Context, f Filter) ([]Request, error)
}
