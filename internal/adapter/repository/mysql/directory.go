package mysql

import (
	"context"

	"gorm.io/gorm"

	"mnh-itaccess-backend/internal/domain/directory"
	requestDomain "mnh-itaccess-backend/internal/domain/request"
)

// DirectoryRepository reads the staff table for notification fan-out. The
// table itself is owned by the account-admin system; this side never writes.
type DirectoryRepository struct{ db *gorm.DB }

func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository { return &DirectoryRepository{db: db} }

func (r *DirectoryRepository) UsersInRole(ctx context.Context, role requestDomain.Role, departmentID string) ([]directory.Recipient, error) {
	q := r.db.WithContext(ctx).Model(&directory.Staff{}).Where("role = ?", role)
	if departmentID != "" {
		q = q.Where("department_id = ?", departmentID)
	}
	var rows []directory.Staff
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]directory.Recipient, 0, len(rows))
	for _, s := range rows {
		out = append(out, directory.Recipient{UserID: s.UserID, Name: s.Name, Email: s.Email, Phone: s.Phone})
	}
	return out, nil
}

func (r *DirectoryRepository) UserByID(ctx context.Context, userID string) (*directory.Recipient, error) {
	var s directory.Staff
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error; err != nil {
		return nil, err
	}
	return &directory.Recipient{UserID: s.UserID, Name: s.Name, Email: s.Email, Phone: s.Phone}, nil
}
