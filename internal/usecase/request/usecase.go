package request

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "mnh-itaccess-backend/internal/domain/request"
	"mnh-itaccess-backend/internal/domain/uow"
	"mnh-itaccess-backend/pkg/id"
)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: tx}
}

var validServices = map[domain.Service]bool{
	domain.ServiceJeeva:    true,
	domain.ServiceWellsoft: true,
	domain.ServiceInternet: true,
}

func (u *Usecase) Create(ctx context.Context, in CreateRequestInput) (*RequestDTO, error) {
	if len(in.StaffID) != 32 || in.StaffName == "" || in.DepartmentID == "" {
		return nil, domain.ErrValidation
	}
	if len(in.Services) == 0 {
		return nil, domain.ErrValidation
	}
	for _, s := range in.Services {
		if !validServices[s] {
			return nil, domain.ErrValidation
		}
	}
	// temporary_until is present iff the access is temporary, and must lie
	// in the future.
	switch in.AccessMode {
	case domain.ModeTemporary:
		if in.TemporaryUntil == nil || !in.TemporaryUntil.After(time.Now().UTC()) {
			return nil, domain.ErrValidation
		}
	case domain.ModePermanent:
		if in.TemporaryUntil != nil {
			return nil, domain.ErrValidation
		}
	default:
		return nil, domain.ErrValidation
	}

	services, err := json.Marshal(in.Services)
	if err != nil {
		return nil, err
	}
	modules, err := json.Marshal(in.Modules)
	if err != nil {
		return nil, err
	}

	r := &domain.Request{
		RequestID:         id.NewID32(),
		StaffID:           in.StaffID,
		StaffName:         in.StaffName,
		PhoneNumber:       in.PhoneNumber,
		DepartmentID:      in.DepartmentID,
		Services:          services,
		Modules:           modules,
		AccessMode:        in.AccessMode,
		TemporaryUntil:    in.TemporaryUntil,
		HodStatus:         domain.StatusPending,
		DivisionalStatus:  domain.StatusPending,
		ICTDirectorStatus: domain.StatusPending,
		HeadITStatus:      domain.StatusPending,
		ICTOfficerStatus:  domain.StatusPending,
	}

	// Create and stamp the reference code from the numeric PK in one tx so
	// a failed second write does not leave a code-less row behind.
	err = u.uow.WithinTx(ctx, func(repos uow.Repos) error {
		if err := repos.Requests.Create(ctx, r); err != nil {
			return err
		}
		r.RefCode = id.RefCode(r.ID)
		return repos.Requests.Save(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return toDTO(r), nil
}

func (u *Usecase) Get(ctx context.Context, requestID string) (*RequestDTO, error) {
	r, err := u.repo.GetByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(r), nil
}

// Snapshot builds the approval projection handed to the PDF renderer.
func (u *Usecase) Snapshot(ctx context.Context, requestID string) (*SnapshotDTO, error) {
	r, err := u.repo.GetByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	out := &SnapshotDTO{
		RequestID:    r.RequestID,
		RefCode:      r.RefCode,
		StaffName:    r.StaffName,
		DepartmentID: r.DepartmentID,
		Services:     r.ServiceList(),
		Overall:      domain.Overall(r),
		Stages:       make([]SnapshotStage, 0, domain.StageCount),
	}
	for i := 0; i < domain.StageCount; i++ {
		info, _ := domain.StageAt(i)
		out.Stages = append(out.Stages, SnapshotStage{
			Key:         info.Key,
			Label:       info.Label,
			StageRecord: r.RecordAt(i),
		})
	}
	return out, nil
}

func toDTO(r *domain.Request) *RequestDTO {
	stages := make(map[string]domain.StageRecord, domain.StageCount)
	for i := 0; i < domain.StageCount; i++ {
		info, _ := domain.StageAt(i)
		stages[info.Key] = r.RecordAt(i)
	}
	return &RequestDTO{
		RequestID:      r.RequestID,
		RefCode:        r.RefCode,
		StaffID:        r.StaffID,
		StaffName:      r.StaffName,
		PhoneNumber:    r.PhoneNumber,
		DepartmentID:   r.DepartmentID,
		Services:       r.ServiceList(),
		AccessMode:     r.AccessMode,
		TemporaryUntil: r.TemporaryUntil,
		Overall:        domain.Overall(r),
		CurrentStage:   domain.CurrentStageKey(r),
		Stages:         stages,
		CreatedAt:      r.CreatedAt,
	}
}
