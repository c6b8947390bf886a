package query

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"mnh-itaccess-backend/internal/domain/request"
	"mnh-itaccess-backend/internal/testutil/requestmock"
)

// recordingRepo captures the stage and filter each list call received.
type recordingRepo struct {
	requestmock.Repo
	pendingStage  int
	pendingFilter request.Filter
	decidedStage  int
	decidedFilter request.Filter
	listFilter    request.Filter
	listCalled    bool
}

func newRecordingRepo() *recordingRepo {
	rr := &recordingRepo{pendingStage: -1, decidedStage: -1}
	rr.ListPendingAtStageFn = func(ctx context.Context, stage int, f request.Filter) ([]request.Request, error) {
		rr.pendingStage, rr.pendingFilter = stage, f
		return []request.Request{{RequestID: "p1", HodStatus: request.StatusPending}}, nil
	}
	rr.ListDecidedAtStageFn = func(ctx context.Context, stage int, f request.Filter) ([]request.Request, error) {
		rr.decidedStage, rr.decidedFilter = stage, f
		return []request.Request{{RequestID: "d1", HodStatus: request.StatusApproved}}, nil
	}
	rr.ListFn = func(ctx context.Context, f request.Filter) ([]request.Request, error) {
		rr.listFilter, rr.listCalled = f, true
		return []request.Request{{RequestID: "a1"}, {RequestID: "a2"}}, nil
	}
	return rr
}

func TestBuckets_HOD(t *testing.T) {
	rr := newRecordingRepo()
	u := NewUsecase(rr)

	out, err := u.Buckets(context.Background(), Actor{
		UserID:        "u1",
		Role:          request.RoleHOD,
		DepartmentIDs: []string{"radiology", "pharmacy"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rr.pendingStage != request.StageHOD || rr.decidedStage != request.StageHOD {
		t.Fatalf("stages queried = (%d,%d), want hod", rr.pendingStage, rr.decidedStage)
	}
	want := request.Filter{DepartmentIDs: []string{"radiology", "pharmacy"}}
	if !reflect.DeepEqual(rr.pendingFilter, want) || !reflect.DeepEqual(rr.listFilter, want) {
		t.Fatalf("filters = %+v / %+v, want department scope", rr.pendingFilter, rr.listFilter)
	}
	if len(out.PendingForMe) != 1 || len(out.DecidedByMe) != 1 || len(out.AllVisible) != 2 {
		t.Fatalf("bucket sizes = %d/%d/%d", len(out.PendingForMe), len(out.DecidedByMe), len(out.AllVisible))
	}
}

func TestBuckets_HODWithoutDepartmentsSeesNothing(t *testing.T) {
	rr := newRecordingRepo()
	u := NewUsecase(rr)

	out, err := u.Buckets(context.Background(), Actor{UserID: "u1", Role: request.RoleHOD})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out.PendingForMe)+len(out.DecidedByMe)+len(out.AllVisible) != 0 {
		t.Fatalf("unscoped HOD got data: %+v", out)
	}
	if rr.listCalled {
		t.Fatalf("unscoped HOD must not reach the repository")
	}
	// empty, not nil: handlers render [] rather than null
	if out.PendingForMe == nil || out.AllVisible == nil {
		t.Fatalf("buckets must be non-nil")
	}
}

func TestBuckets_Scopes(t *testing.T) {
	tests := []struct {
		name        string
		actor       Actor
		wantStage   int // -1 when the role has no approval stage
		wantPending request.Filter
		wantList    request.Filter
	}{
		{
			"ict director sees everything unscoped",
			Actor{UserID: "u2", Role: request.RoleICTDirector},
			request.StageICTDirector,
			request.Filter{},
			request.Filter{},
		},
		{
			"head of it sees everything unscoped",
			Actor{UserID: "u3", Role: request.RoleHeadIT},
			request.StageHeadIT,
			request.Filter{},
			request.Filter{},
		},
		{
			"ict officer works the terminal stage",
			Actor{UserID: "u4", Role: request.RoleICTOfficer},
			request.StageICTOfficer,
			request.Filter{},
			request.Filter{StaffID: "u4"},
		},
		{
			"staff sees only their own submissions",
			Actor{UserID: "u5", Role: request.RoleStaff},
			-1,
			request.Filter{},
			request.Filter{StaffID: "u5"},
		},
		{
			"admin has the org-wide view but no stage",
			Actor{UserID: "u6", Role: request.RoleAdmin},
			-1,
			request.Filter{},
			request.Filter{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := newRecordingRepo()
			u := NewUsecase(rr)
			out, err := u.Buckets(context.Background(), tt.actor)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if rr.pendingStage != tt.wantStage {
				t.Fatalf("pending stage = %d, want %d", rr.pendingStage, tt.wantStage)
			}
			if tt.wantStage >= 0 && !reflect.DeepEqual(rr.pendingFilter, tt.wantPending) {
				t.Fatalf("pending filter = %+v, want %+v", rr.pendingFilter, tt.wantPending)
			}
			if !reflect.DeepEqual(rr.listFilter, tt.wantList) {
				t.Fatalf("list filter = %+v, want %+v", rr.listFilter, tt.wantList)
			}
			if tt.wantStage < 0 && (len(out.PendingForMe) != 0 || len(out.DecidedByMe) != 0) {
				t.Fatalf("stage-less role got stage buckets: %+v", out)
			}
		})
	}
}

func TestBuckets_SummaryFields(t *testing.T) {
	rr := newRecordingRepo()
	rr.ListFn = func(ctx context.Context, f request.Filter) ([]request.Request, error) {
		return []request.Request{{
			RequestID:    "r1",
			RefCode:      "REQ-000007",
			StaffID:      "s1",
			StaffName:    "A. Mushi",
			DepartmentID: "icu",
			Services:     []byte(`["jeeva","internet"]`),
			AccessMode:   request.ModeTemporary,

			HodStatus:         request.StatusApproved,
			DivisionalStatus:  request.StatusPending,
			ICTDirectorStatus: request.StatusPending,
			HeadITStatus:      request.StatusPending,
			ICTOfficerStatus:  request.StatusPending,
		}}, nil
	}
	u := NewUsecase(rr)

	out, err := u.Buckets(context.Background(), Actor{UserID: "s1", Role: request.RoleStaff})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	s := out.AllVisible[0]
	if s.RefCode != "REQ-000007" || s.Overall != request.OverallInProgress {
		t.Fatalf("summary = %+v", s)
	}
	if s.CurrentStage != "divisional" {
		t.Fatalf("current stage = %q", s.CurrentStage)
	}
	if !reflect.DeepEqual(s.Services, []request.Service{request.ServiceJeeva, request.ServiceInternet}) {
		t.Fatalf("services = %v", s.Services)
	}
}

func TestBuckets_RepoErrorSurfaces(t *testing.T) {
	rr := newRecordingRepo()
	boom := errors.New("db gone")
	rr.ListPendingAtStageFn = func(ctx context.Context, stage int, f request.Filter) ([]request.Request, error) {
		return nil, boom
	}
	u := NewUsecase(rr)

	if _, err := u.Buckets(context.Background(), Actor{UserID: "u2", Role: request.RoleICTDirector}); !errors.Is(err, boom) {
		t.Fatalf("want repo error, got %v", err)
	}
}
