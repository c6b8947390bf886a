package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mnh-itaccess-backend/internal/domain/request"
	"mnh-itaccess-backend/internal/domain/uow"
)

// Usecase is the workflow engine: the only writer of stage-status fields.
// Every decision runs inside a row-locked transaction so two racers on the
// same (request, stage) cannot both succeed.
type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

func (u *Usecase) SubmitDecision(ctx context.Context, in SubmitDecisionInput) (*DecisionDTO, *TransitionEvent, error) {
	if u.uow == nil {
		return nil, nil, request.ErrNotFound
	}

	var (
		dto *DecisionDTO
		ev  *TransitionEvent
	)
	err := u.uow.WithinRequestTx(ctx, in.RequestID, func(r uow.Repos, req *request.Request) error {
		now := time.Now().UTC()
		if err := request.Apply(req, request.Decision{
			Stage:        in.Stage,
			Role:         in.Role,
			Action:       in.Action,
			ActorID:      in.ActorID,
			ActorName:    in.ActorName,
			Comment:      in.Comment,
			SignatureRef: in.SignatureRef,
			Now:          now,
		}); err != nil {
			return err
		}
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}

		dto, ev = buildResult(req, in, now)
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

func buildResult(req *request.Request, in SubmitDecisionInput, now time.Time) (*DecisionDTO, *TransitionEvent) {
	info, _ := request.StageAt(in.Stage)
	overall := request.Overall(req)

	ev := &TransitionEvent{
		EventID:     uuid.NewString(),
		RequestID:   req.RequestID,
		RefCode:     req.RefCode,
		RequesterID: req.StaffID,
		Stage:       in.Stage,
		StageKey:    info.Key,
		Action:      in.Action,
		Comment:     in.Comment,
		ActorID:     in.ActorID,
		ActorName:   in.ActorName,
		Role:        in.Role,
		Overall:     overall,
		Department:  req.DepartmentID,
		OccurredAt:  now,
	}
	if next, ok := request.EligibleStage(req); ok {
		nextInfo, _ := request.StageAt(next)
		ev.NextStage = next
		ev.NextRole = nextInfo.Role
		ev.HasNext = true
	}

	dto := &DecisionDTO{
		RequestID:    req.RequestID,
		RefCode:      req.RefCode,
		StageKey:     info.Key,
		StageStatus:  req.StatusAt(in.Stage),
		Overall:      overall,
		CurrentStage: request.CurrentStageKey(req),
		DecidedAt:    now,
	}
	return dto, ev
}
