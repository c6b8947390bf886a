package workflow

import (
	"time"

	"mnh-itaccess-backend/internal/domain/request"
)

type SubmitDecisionInput struct {
	RequestID    string
	ActorID      string // 32-char hex
	ActorName    string
	Role         request.Role
	Stage        int
	Action       request.Action
	Comment      string
	SignatureRef string
}

type DecisionDTO struct {
	RequestID    string                `json:"request_id"`
	RefCode      string                `json:"ref_code"`
	StageKey     string                `json:"stage"`
	StageStatus  request.StageStatus   `json:"stage_status"`
	Overall      request.OverallStatus `json:"overall_status"`
	CurrentStage string                `json:"current_stage,omitempty"`
	DecidedAt    time.Time             `json:"decided_at"`
}

// TransitionEvent describes one successful stage decision. The engine only
// returns it; delivery is the dispatcher's problem. EventID keys duplicate
// suppression downstream.
type TransitionEvent struct {
	EventID     string
	RequestID   string
	RefCode     string
	RequesterID string

	Stage    int
	StageKey string
	Action   request.Action
	Comment  string

	ActorID   string
	ActorName string
	Role      request.Role

	Overall request.OverallStatus
	// Next eligible stage after the decision; NextRole is empty when the
	// request is terminal (rejected, or implemented).
	NextStage  int
	NextRole   request.Role
	HasNext    bool
	Department string
	OccurredAt time.Time
}
