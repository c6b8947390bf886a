package assignment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mnh-itaccess-backend/internal/domain/request"
	"mnh-itaccess-backend/internal/domain/task"
	"mnh-itaccess-backend/internal/domain/uow"
	"mnh-itaccess-backend/internal/usecase/workflow"
	"mnh-itaccess-backend/pkg/id"
)

// Usecase drives the post-approval implementation ticket: assigned →
// in_progress → implemented. The final transition flows back through the
// stage policy so the request's ict_officer status stays the single source
// of truth.
type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

func (u *Usecase) AssignOfficer(ctx context.Context, in AssignInput) (*TaskDTO, *TaskAssignedEvent, error) {
	if u.uow == nil {
		return nil, nil, task.ErrPreconditionFailed
	}

	var (
		dto *TaskDTO
		ev  *TaskAssignedEvent
	)
	err := u.uow.WithinRequestTx(ctx, in.RequestID, func(r uow.Repos, req *request.Request) error {
		// Gate: the whole human approval chain must be cleared first.
		if req.HeadITStatus != request.StatusApproved {
			return task.ErrPreconditionFailed
		}

		if _, err := r.Tasks.GetByRequestID(ctx, req.ID); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		} else {
			// found one → the request is already assigned
			return task.ErrPreconditionFailed
		}

		now := time.Now().UTC()
		priority := in.Priority
		if priority == "" {
			priority = task.PriorityNormal
		}
		a := &task.Assignment{
			TaskID:              id.NewID32(),
			RequestID:           req.ID,
			OfficerID:           in.OfficerID,
			OfficerName:         in.OfficerName,
			AssignedByID:        in.AssignedByID,
			AssignedByName:      in.AssignedByName,
			Priority:            priority,
			Notes:               in.Notes,
			EstimatedCompletion: in.EstimatedCompletion,
			Status:              task.StatusAssigned,
			AssignedAt:          now,
		}
		if err := r.Tasks.Create(ctx, a); err != nil {
			return err
		}

		dto = toDTO(a, req)
		ev = &TaskAssignedEvent{
			EventID:      uuid.NewString(),
			TaskID:       a.TaskID,
			RequestID:    req.RequestID,
			RefCode:      req.RefCode,
			OfficerID:    a.OfficerID,
			AssignedByID: a.AssignedByID,
			Priority:     a.Priority,
			OccurredAt:   now,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, request.ErrNotFound
		}
		return nil, nil, err
	}
	return dto, ev, nil
}

// AdvanceTask applies a forward-only lifecycle move. Only the assigned
// officer may advance their own ticket. Reaching implemented also resolves
// the request's terminal stage and yields the corresponding TransitionEvent.
func (u *Usecase) AdvanceTask(ctx context.Context, in AdvanceInput) (*TaskDTO, *workflow.TransitionEvent, error) {
	if u.uow == nil {
		return nil, nil, task.ErrNotFound
	}

	var (
		dto *TaskDTO
		ev  *workflow.TransitionEvent
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Tasks.GetByTaskIDForUpdate(ctx, in.TaskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return task.ErrNotFound
			}
			return err
		}
		if a.OfficerID != in.ActorID {
			return request.ErrUnauthorized
		}
		if err := a.Advance(in.To); err != nil {
			return err
		}

		now := time.Now().UTC()
		var req *request.Request
		if in.To == task.StatusImplemented {
			req, err = r.Requests.GetByIDForUpdate(ctx, a.RequestID)
			if err != nil {
				return err
			}
			if err := request.Apply(req, request.Decision{
				Stage:     request.StageICTOfficer,
				Role:      request.RoleICTOfficer,
				Action:    request.ActionImplement,
				ActorID:   in.ActorID,
				ActorName: in.ActorName,
				Comment:   in.Note,
				Now:       now,
			}); err != nil {
				return err
			}
			if err := r.Requests.Save(ctx, req); err != nil {
				return err
			}
			ev = &workflow.TransitionEvent{
				EventID:     uuid.NewString(),
				RequestID:   req.RequestID,
				RefCode:     req.RefCode,
				RequesterID: req.StaffID,
				Stage:       request.StageICTOfficer,
				StageKey:    "ict_officer",
				Action:      request.ActionImplement,
				Comment:     in.Note,
				ActorID:     in.ActorID,
				ActorName:   in.ActorName,
				Role:        request.RoleICTOfficer,
				Overall:     request.Overall(req),
				Department:  req.DepartmentID,
				OccurredAt:  now,
			}
		}

		if err := r.Tasks.Save(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a, req)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return dto, ev, nil
}

func (u *Usecase) GetByTaskID(ctx context.Context, taskID string) (*TaskDTO, error) {
	var dto *TaskDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Tasks.GetByTaskID(ctx, taskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return task.ErrNotFound
			}
			return err
		}
		dto = toDTO(a, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func toDTO(a *task.Assignment, req *request.Request) *TaskDTO {
	dto := &TaskDTO{
		TaskID:              a.TaskID,
		OfficerID:           a.OfficerID,
		OfficerName:         a.OfficerName,
		AssignedByID:        a.AssignedByID,
		Priority:            a.Priority,
		Notes:               a.Notes,
		Status:              a.Status,
		EstimatedCompletion: a.EstimatedCompletion,
		AssignedAt:          a.AssignedAt,
	}
	if req != nil {
		dto.RequestID = req.RequestID
		dto.RefCode = req.RefCode
	}
	return dto
}
