package notifmock

import (
	"context"
	"sync"

	"mnh-itaccess-backend/internal/domain/directory"
	domain "mnh-itaccess-backend/internal/domain/notification"
	"mnh-itaccess-backend/internal/domain/request"
)

// Repo is a function-backed mock that satisfies domain.Repository. When
// CreateFn is nil it records created notifications for assertions.
type Repo struct {
	mu      sync.Mutex
	Created []domain.Notification

	CreateFn          func(ctx context.Context, n *domain.Notification) error
	ListByRecipientFn func(ctx context.Context, recipientID string, unreadOnly bool) ([]domain.Notification, error)
	MarkReadFn        func(ctx context.Context, recipientID string, ids []uint64) error
}

func (m *Repo) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Created = append(m.Created, *n)
	return nil
}

func (m *Repo) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]domain.Notification, error) {
	if m.ListByRecipientFn != nil {
		return m.ListByRecipientFn(ctx, recipientID, unreadOnly)
	}
	return nil, nil
}

func (m *Repo) MarkRead(ctx context.Context, recipientID string, ids []uint64) error {
	if m.MarkReadFn != nil {
		return m.MarkReadFn(ctx, recipientID, ids)
	}
	return nil
}

// Directory is a function-backed mock for directory.Directory.
type Directory struct {
	UsersInRoleFn func(ctx context.Context, role request.Role, departmentID string) ([]directory.Recipient, error)
	UserByIDFn    func(ctx context.Context, userID string) (*directory.Recipient, error)
}

func (m *Directory) UsersInRole(ctx context.Context, role request.Role, departmentID string) ([]directory.Recipient, error) {
	if m.UsersInRoleFn != nil {
		return m.UsersInRoleFn(ctx, role, departmentID)
	}
	return nil, nil
}

func (m *Directory) UserByID(ctx context.Context, userID string) (*directory.Recipient, error) {
	if m.UserByIDFn != nil {
		return m.UserByIDFn(ctx, userID)
	}
	return nil, context.Canceled
}
