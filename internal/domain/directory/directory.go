package directory

import (
	"context"

	"mnh-itaccess-backend/internal/domain/request"
)

// Recipient is an explicit, typed delivery descriptor. Channel resolution
// (email vs SMS vs inbox) happens in the external transport from these
// optional fields, never by probing the user record at runtime.
type Recipient struct {
	UserID string
	Name   string
	Email  *string
	Phone  *string
}

// Directory resolves who holds a role, for next-stage approver fan-out.
// Department narrows the lookup for department-scoped roles (HOD); pass ""
// for organisation-wide roles.
type Directory interface {
	UsersInRole(ctx context.Context, role request.Role, departmentID string) ([]Recipient, error)
	UserByID(ctx context.Context, userID string) (*Recipient, error)
}

// Staff is the read-only projection of the staff table the directory queries.
// Account administration lives in a separate system; this side only reads.
type Staff struct {
	UserID       string       `gorm:"primaryKey;size:32;column:user_id"`
	Name         string       `gorm:"size:120"`
	Role         request.Role `gorm:"size:32;index:idx_staff_role"`
	DepartmentID string       `gorm:"size:32;index:idx_staff_department"`
	Email        *string      `gorm:"size:190"`
	Phone        *string      `gorm:"size:32"`
}

func (Staff) TableName() string { return "staff" }
