package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	requestDomain "mnh-itaccess-backend/internal/domain/request"
)

type RequestRepository struct{ db *gorm.DB }

func NewRequestRepository(db *gorm.DB) *RequestRepository { return &RequestRepository{db: db} }

func (r *RequestRepository) Create(ctx context.Context, req *requestDomain.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequestRepository) Save(ctx context.Context, req *requestDomain.Request) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *RequestRepository) GetByRequestID(ctx context.Context, requestID string) (*requestDomain.Request, error) {
	var out requestDomain.Request
	res := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&out)
	return &out, res.Error
}

// locking returns the row-lock clause when the dialect supports it. SQLite
// (tests) has no FOR UPDATE and serializes writers anyway.
func locking(q *gorm.DB) *gorm.DB {
	if q.Dialector.Name() == "sqlite" {
		return q
	}
	return q.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (r *RequestRepository) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*requestDomain.Request, error) {
	var out requestDomain.Request
	res := locking(r.db.WithContext(ctx)).
		Where("request_id = ?", requestID).
		First(&out)
	return &out, res.Error
}

func (r *RequestRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*requestDomain.Request, error) {
	var out requestDomain.Request
	res := locking(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

// cascade builds the stage-ladder predicate from the policy's ordered stage
// table: prior stages approved, the target stage in one of the wanted
// statuses. All role-bucket queries share this one builder.
func cascade(q *gorm.DB, stage int, want ...requestDomain.StageStatus) *gorm.DB {
	for i := 0; i < stage; i++ {
		info, _ := requestDomain.StageAt(i)
		q = q.Where(info.Column+" = ?", requestDomain.StatusApproved)
	}
	info, _ := requestDomain.StageAt(stage)
	return q.Where(info.Column+" IN ?", want)
}

func applyFilter(q *gorm.DB, f requestDomain.Filter) *gorm.DB {
	if len(f.DepartmentIDs) > 0 {
		q = q.Where("department_id IN ?", f.DepartmentIDs)
	}
	if f.StaffID != "" {
		q = q.Where("staff_id = ?", f.StaffID)
	}
	return q
}

func (r *RequestRepository) ListPendingAtStage(ctx context.Context, stage int, f requestDomain.Filter) ([]requestDomain.Request, error) {
	if _, ok := requestDomain.StageAt(stage); !ok {
		return nil, requestDomain.ErrNotFound
	}
	var out []requestDomain.Request
	q := cascade(r.db.WithContext(ctx), stage, requestDomain.StatusPending)
	err := applyFilter(q, f).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *RequestRepository) ListDecidedAtStage(ctx context.Context, stage int, f requestDomain.Filter) ([]requestDomain.Request, error) {
	if _, ok := requestDomain.StageAt(stage); !ok {
		return nil, requestDomain.ErrNotFound
	}
	var out []requestDomain.Request
	q := cascade(r.db.WithContext(ctx), stage,
		requestDomain.StatusApproved, requestDomain.StatusRejected, requestDomain.StatusImplemented)
	err := applyFilter(q, f).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *RequestRepository) List(ctx context.Context, f requestDomain.Filter) ([]requestDomain.Request, error) {
	var out []requestDomain.Request
	err := applyFilter(r.db.WithContext(ctx).Model(&requestDomain.Request{}), f).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}
