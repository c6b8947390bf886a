package mysql

import (
	"context"

	"gorm.io/gorm"

	taskDomain "mnh-itaccess-backend/internal/domain/task"
)

type TaskRepository struct{ db *gorm.DB }

func NewTaskRepository(db *gorm.DB) *TaskRepository { return &TaskRepository{db: db} }

func (r *TaskRepository) Create(ctx context.Context, a *taskDomain.Assignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *TaskRepository) Save(ctx context.Context, a *taskDomain.Assignment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *TaskRepository) GetByTaskID(ctx context.Context, taskID string) (*taskDomain.Assignment, error) {
	var out taskDomain.Assignment
	res := r.db.WithContext(ctx).Where("task_id = ?", taskID).First(&out)
	return &out, res.Error
}

func (r *TaskRepository) GetByTaskIDForUpdate(ctx context.Context, taskID string) (*taskDomain.Assignment, error) {
	var out taskDomain.Assignment
	res := locking(r.db.WithContext(ctx)).
		Where("task_id = ?", taskID).
		First(&out)
	return &out, res.Error
}

func (r *TaskRepository) GetByRequestID(ctx context.Context, requestNumericID uint64) (*taskDomain.Assignment, error) {
	var out taskDomain.Assignment
	res := r.db.WithContext(ctx).
		Where("request_id = ?", requestNumericID).
		First(&out)
	return &out, res.Error
}

func (r *TaskRepository) ListByOfficer(ctx context.Context, officerID string) ([]taskDomain.Assignment, error) {
	var out []taskDomain.Assignment
	err := r.db.WithContext(ctx).
		Where("officer_id = ?", officerID).
		Order("assigned_at DESC, id DESC").
		Find(&out).Error
	return out, err
}
