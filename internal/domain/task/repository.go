package task

import "context"

type Repository interface {
	// Create a new assignment (DB uniqueness ensures at most one per request)
	Create(ctx context.Context, a *Assignment) error

	GetByTaskID(ctx context.Context, taskID string) (*Assignment, error)
	// GetByTaskIDForUpdate locks the row for the surrounding transaction.
	GetByTaskIDForUpdate(ctx context.Context, taskID string) (*Assignment, error)

	// Lookup by the owning request's numeric id.
	GetByRequestID(ctx context.Context, requestNumericID uint64) (*Assignment, error)

	// ListByOfficer returns the officer's open and closed tickets.
	ListByOfficer(ctx context.Context, officerID string) ([]Assignment, error)

	Save(ctx context.Context, a *Assignment) error
}
