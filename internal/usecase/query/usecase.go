package query

import (
	"context"
	"time"

	"mnh-itaccess-backend/internal/domain/request"
)

// Actor identifies who is asking, with the department scope their role
// carries. Role/department resolution happens upstream (auth layer).
type Actor struct {
	UserID        string
	Role          request.Role
	DepartmentIDs []string
}

type Summary struct {
	RequestID    string                `json:"request_id"`
	RefCode      string                `json:"ref_code"`
	StaffID      string                `json:"staff_id"`
	StaffName    string                `json:"staff_name"`
	DepartmentID string                `json:"department_id"`
	Services     []request.Service     `json:"services"`
	AccessMode   request.AccessMode    `json:"access_mode"`
	Overall      request.OverallStatus `json:"overall_status"`
	CurrentStage string                `json:"current_stage,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

type BucketsDTO struct {
	PendingForMe []Summary `json:"pending_for_me"`
	DecidedByMe  []Summary `json:"decided_by_me"`
	AllVisible   []Summary `json:"all_visible"`
}

// Usecase builds the three per-actor buckets from the stage table. One
// algorithm for all five approver roles; the stage index is the only
// parameter that varies.
type Usecase struct {
	repo request.Repository
}

func NewUsecase(r request.Repository) *Usecase { return &Usecase{repo: r} }

func (u *Usecase) Buckets(ctx context.Context, actor Actor) (*BucketsDTO, error) {
	out := &BucketsDTO{
		PendingForMe: []Summary{},
		DecidedByMe:  []Summary{},
		AllVisible:   []Summary{},
	}

	stage, hasStage := request.StageForRole(actor.Role)
	scoped := actor.Role == request.RoleHOD

	if hasStage {
		// Department-scoped roles with no assigned department see nothing,
		// rather than everything.
		if scoped && len(actor.DepartmentIDs) == 0 {
			return out, nil
		}
		f := request.Filter{}
		if scoped {
			f.DepartmentIDs = actor.DepartmentIDs
		}

		pending, err := u.repo.ListPendingAtStage(ctx, stage, f)
		if err != nil {
			return nil, err
		}
		decided, err := u.repo.ListDecidedAtStage(ctx, stage, f)
		if err != nil {
			return nil, err
		}
		out.PendingForMe = summarize(pending)
		out.DecidedByMe = summarize(decided)
	}

	all, err := u.repo.List(ctx, visibleFilter(actor))
	if err != nil {
		return nil, err
	}
	out.AllVisible = summarize(all)
	return out, nil
}

// visibleFilter decides the AllVisible scope: ICT leadership and admins get
// the org-wide view, HODs their departments, everyone else their own
// submissions.
func visibleFilter(actor Actor) request.Filter {
	switch actor.Role {
	case request.RoleAdmin, request.RoleICTDirector, request.RoleHeadIT:
		return request.Filter{}
	case request.RoleHOD:
		return request.Filter{DepartmentIDs: actor.DepartmentIDs}
	default:
		return request.Filter{StaffID: actor.UserID}
	}
}

func summarize(rs []request.Request) []Summary {
	out := make([]Summary, 0, len(rs))
	for i := range rs {
		r := &rs[i]
		out = append(out, Summary{
			RequestID:    r.RequestID,
			RefCode:      r.RefCode,
			StaffID:      r.StaffID,
			StaffName:    r.StaffName,
			DepartmentID: r.DepartmentID,
			Services:     r.ServiceList(),
			AccessMode:   r.AccessMode,
			Overall:      request.Overall(r),
			CurrentStage: request.CurrentStageKey(r),
			CreatedAt:    r.CreatedAt,
		})
	}
	return out
}
