package request

import (
	"strings"
	"time"
)

// Stage indexes, in approval order. The order is fixed; every piece of
// sequencing logic derives from this table rather than re-implementing the
// cascade.
const (
	StageHOD = iota
	StageDivisional
	StageICTDirector
	StageHeadIT
	StageICTOfficer

	StageCount = 5
)

type StageInfo struct {
	Key    string // stable identifier used in events, routes and queries
	Label  string
	Column string // status column name, kept in sync with the gorm tags
	Role   Role   // role permitted to decide this stage
	// Terminal marks the implementation stage: its approve action is
	// "implement" and resolves to StatusImplemented.
	Terminal bool
}

var stages = [StageCount]StageInfo{
	{Key: "hod", Label: "Head of Department", Column: "hod_status", Role: RoleHOD},
	{Key: "divisional", Label: "Divisional Director", Column: "divisional_status", Role: RoleDivisionalDirector},
	{Key: "ict_director", Label: "ICT Director", Column: "ict_director_status", Role: RoleICTDirector},
	{Key: "head_it", Label: "Head of IT", Column: "head_it_status", Role: RoleHeadIT},
	{Key: "ict_officer", Label: "ICT Officer", Column: "ict_officer_status", Role: RoleICTOfficer, Terminal: true},
}

func StageAt(i int) (StageInfo, bool) {
	if i < 0 || i >= StageCount {
		return StageInfo{}, false
	}
	return stages[i], true
}

// StageForKey resolves a wire-format stage key ("hod", "head_it", …).
func StageForKey(key string) (int, bool) {
	for i, s := range stages {
		if s.Key == key {
			return i, true
		}
	}
	return 0, false
}

// StageForRole maps an approver role to its stage index.
func StageForRole(role Role) (int, bool) {
	for i, s := range stages {
		if s.Role == role {
			return i, true
		}
	}
	return 0, false
}

func decided(s StageStatus) bool {
	return s == StatusApproved || s == StatusRejected || s == StatusImplemented
}

// EligibleStage returns the first stage still pending, provided all prior
// stages are approved. ok is false when the request is fully resolved
// (implemented) or frozen by a rejection anywhere in the chain.
func EligibleStage(r *Request) (int, bool) {
	for i := 0; i < StageCount; i++ {
		switch r.StatusAt(i) {
		case StatusPending:
			return i, true
		case StatusRejected:
			return 0, false
		}
	}
	return 0, false
}

// CanAct reports whether role may decide the given stage right now: the
// stage must be the eligible one and the role must own it.
func CanAct(r *Request, role Role, stage int) bool {
	info, ok := StageAt(stage)
	if !ok || info.Role != role {
		return false
	}
	el, ok := EligibleStage(r)
	return ok && el == stage
}

// CanView is the read-side permission: a role may always view a stage it
// owns once that stage has been decided, for history/audit display.
func CanView(r *Request, role Role, stage int) bool {
	info, ok := StageAt(stage)
	if !ok {
		return false
	}
	if info.Role == role && decided(r.StatusAt(stage)) {
		return true
	}
	return CanAct(r, role, stage)
}

type OverallStatus string

const (
	OverallInProgress  OverallStatus = "in_progress"
	OverallApproved    OverallStatus = "approved"
	OverallRejected    OverallStatus = "rejected"
	OverallImplemented OverallStatus = "implemented"
)

// Overall derives the request-level status from the five stage statuses.
// It is pure and never persisted.
func Overall(r *Request) OverallStatus {
	for i := 0; i < StageCount; i++ {
		if r.StatusAt(i) == StatusRejected {
			return OverallRejected
		}
	}
	if r.ICTOfficerStatus == StatusImplemented {
		return OverallImplemented
	}
	if _, ok := EligibleStage(r); ok {
		return OverallInProgress
	}
	return OverallApproved
}

// CurrentStageKey names the eligible stage for UI routing, or "" when the
// request is terminal.
func CurrentStageKey(r *Request) string {
	i, ok := EligibleStage(r)
	if !ok {
		return ""
	}
	return stages[i].Key
}

type Action string

const (
	ActionApprove   Action = "approve"
	ActionReject    Action = "reject"
	ActionImplement Action = "implement"
)

// Decision is one actor's verdict on one stage.
type Decision struct {
	Stage        int
	Role         Role
	Action       Action
	ActorID      string
	ActorName    string
	Comment      string
	SignatureRef string
	Now          time.Time
}

// Apply validates a decision against the policy and writes the stage's
// fields. It is the only mutation path for stage statuses; both the workflow
// engine and the task sub-flow go through it.
func Apply(r *Request, d Decision) error {
	info, ok := StageAt(d.Stage)
	if !ok {
		return ErrNotFound
	}
	if info.Role != d.Role {
		return ErrUnauthorized
	}
	el, ok := EligibleStage(r)
	if !ok || el != d.Stage {
		return ErrStaleStage
	}

	var next StageStatus
	switch d.Action {
	case ActionReject:
		if strings.TrimSpace(d.Comment) == "" {
			return ErrValidation
		}
		next = StatusRejected
	case ActionApprove:
		if info.Terminal {
			return ErrValidation // terminal stage resolves via implement
		}
		if strings.TrimSpace(d.SignatureRef) == "" {
			return ErrValidation
		}
		next = StatusApproved
	case ActionImplement:
		if !info.Terminal {
			return ErrValidation
		}
		if strings.TrimSpace(d.Comment) == "" {
			return ErrValidation // implementation note is mandatory
		}
		next = StatusImplemented
	default:
		return ErrValidation
	}

	now := d.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	f := r.stage(d.Stage)
	*f.status = next
	*f.approverID = d.ActorID
	*f.approverName = d.ActorName
	*f.comment = d.Comment
	*f.signatureRef = d.SignatureRef
	*f.decidedAt = &now
	return nil
}
