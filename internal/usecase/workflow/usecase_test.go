package workflow

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"mnh-itaccess-backend/internal/domain/request"
	"mnh-itaccess-backend/internal/domain/uow"
	"mnh-itaccess-backend/internal/testutil/requestmock"
	"mnh-itaccess-backend/internal/testutil/uowmock"
)

func pendingRequest() *request.Request {
	return &request.Request{
		ID:                1,
		RequestID:         "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		RefCode:           "REQ-000001",
		StaffID:           "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		DepartmentID:      "radiology",
		HodStatus:         request.StatusPending,
		DivisionalStatus:  request.StatusPending,
		ICTDirectorStatus: request.StatusPending,
		HeadITStatus:      request.StatusPending,
		ICTOfficerStatus:  request.StatusPending,
	}
}

func engineWith(req *request.Request, saveErr error) *Usecase {
	repo := &requestmock.Repo{
		GetByRequestIDForUpdateFn: func(ctx context.Context, requestID string) (*request.Request, error) {
			if req == nil || req.RequestID != requestID {
				return nil, gorm.ErrRecordNotFound
			}
			return req, nil
		},
		SaveFn: func(ctx context.Context, r *request.Request) error { return saveErr },
	}
	return NewUsecase(uowmock.Passthrough(uow.Repos{Requests: repo}))
}

func TestSubmitDecision_Approve(t *testing.T) {
	req := pendingRequest()
	u := engineWith(req, nil)

	dto, ev, err := u.SubmitDecision(context.Background(), SubmitDecisionInput{
		RequestID:    req.RequestID,
		ActorID:      "cccccccccccccccccccccccccccccccc",
		ActorName:    "Dr. Komba",
		Role:         request.RoleHOD,
		Stage:        request.StageHOD,
		Action:       request.ActionApprove,
		SignatureRef: "sig/komba.png",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if dto.StageKey != "hod" || dto.StageStatus != request.StatusApproved {
		t.Fatalf("dto stage = %s/%s", dto.StageKey, dto.StageStatus)
	}
	if dto.Overall != request.OverallInProgress || dto.CurrentStage != "divisional" {
		t.Fatalf("dto overall = %s, current = %s", dto.Overall, dto.CurrentStage)
	}
	if req.HodStatus != request.StatusApproved {
		t.Fatalf("decision not persisted to the entity")
	}

	if ev.EventID == "" {
		t.Fatalf("event id missing")
	}
	if !ev.HasNext || ev.NextStage != request.StageDivisional || ev.NextRole != request.RoleDivisionalDirector {
		t.Fatalf("next hop = (%d,%s,%v)", ev.NextStage, ev.NextRole, ev.HasNext)
	}
	if ev.RequesterID != req.StaffID || ev.Department != "radiology" {
		t.Fatalf("event routing fields wrong: %+v", ev)
	}
}

func TestSubmitDecision_RejectIsTerminal(t *testing.T) {
	req := pendingRequest()
	u := engineWith(req, nil)

	dto, ev, err := u.SubmitDecision(context.Background(), SubmitDecisionInput{
		RequestID: req.RequestID,
		ActorID:   "cccccccccccccccccccccccccccccccc",
		ActorName: "Dr. Komba",
		Role:      request.RoleHOD,
		Stage:     request.StageHOD,
		Action:    request.ActionReject,
		Comment:   "duplicate of an open request",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if dto.Overall != request.OverallRejected || dto.CurrentStage != "" {
		t.Fatalf("dto = %+v", dto)
	}
	if ev.HasNext {
		t.Fatalf("rejected request must not advertise a next stage")
	}
	if ev.Comment != "duplicate of an open request" {
		t.Fatalf("rejection reason not carried on the event")
	}
}

func TestSubmitDecision_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     func() *request.Request
		in      SubmitDecisionInput
		saveErr error
		wantErr error
	}{
		{
			"unknown request",
			func() *request.Request { return nil },
			SubmitDecisionInput{RequestID: "missing", Role: request.RoleHOD, Stage: request.StageHOD, Action: request.ActionApprove, SignatureRef: "s"},
			nil,
			request.ErrNotFound,
		},
		{
			"wrong role for the stage",
			pendingRequest,
			SubmitDecisionInput{RequestID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Role: request.RoleICTDirector, Stage: request.StageHOD, Action: request.ActionApprove, SignatureRef: "s"},
			nil,
			request.ErrUnauthorized,
		},
		{
			"stage already decided",
			func() *request.Request {
				r := pendingRequest()
				r.HodStatus = request.StatusApproved
				return r
			},
			SubmitDecisionInput{RequestID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Role: request.RoleHOD, Stage: request.StageHOD, Action: request.ActionApprove, SignatureRef: "s"},
			nil,
			request.ErrStaleStage,
		},
		{
			"reject without a comment",
			pendingRequest,
			SubmitDecisionInput{RequestID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Role: request.RoleHOD, Stage: request.StageHOD, Action: request.ActionReject},
			nil,
			request.ErrValidation,
		},
		{
			"save failure surfaces",
			pendingRequest,
			SubmitDecisionInput{RequestID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Role: request.RoleHOD, Stage: request.StageHOD, Action: request.ActionApprove, SignatureRef: "s"},
			errors.New("deadlock"),
			errors.New("deadlock"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := engineWith(tt.req(), tt.saveErr)
			dto, ev, err := u.SubmitDecision(context.Background(), tt.in)
			if err == nil {
				t.Fatalf("want error, got dto=%+v", dto)
			}
			if !errors.Is(err, tt.wantErr) && err.Error() != tt.wantErr.Error() {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
			if dto != nil || ev != nil {
				t.Fatalf("failed decision must not return a result")
			}
		})
	}
}

// Two decisions against the same in-memory request: the second actor hits a
// stage that is no longer eligible, the exact shape a lost row-lock race takes.
func TestSubmitDecision_SecondRacerGetsStale(t *testing.T) {
	req := pendingRequest()
	u := engineWith(req, nil)

	first := SubmitDecisionInput{
		RequestID: req.RequestID, ActorID: "cccccccccccccccccccccccccccccccc",
		Role: request.RoleHOD, Stage: request.StageHOD,
		Action: request.ActionApprove, SignatureRef: "s",
	}
	if _, _, err := u.SubmitDecision(context.Background(), first); err != nil {
		t.Fatalf("first decision: %v", err)
	}
	second := first
	second.ActorID = "dddddddddddddddddddddddddddddddd"
	if _, _, err := u.SubmitDecision(context.Background(), second); !errors.Is(err, request.ErrStaleStage) {
		t.Fatalf("second decision: want stale, got %v", err)
	}
}
