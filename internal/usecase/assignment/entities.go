package assignment

import (
	"time"

	"mnh-itaccess-backend/internal/domain/task"
)

type AssignInput struct {
	RequestID string

	OfficerID      string // 32-char hex
	OfficerName    string
	AssignedByID   string
	AssignedByName string

	Priority            task.Priority
	Notes               string
	EstimatedCompletion *time.Time
}

type AdvanceInput struct {
	TaskID    string
	To        task.Status
	ActorID   string
	ActorName string
	// Note becomes the implementation note on the final transition.
	Note string
}

type TaskDTO struct {
	TaskID              string        `json:"task_id"`
	RequestID           string        `json:"request_id"`
	RefCode             string        `json:"ref_code"`
	OfficerID           string        `json:"officer_id"`
	OfficerName         string        `json:"officer_name"`
	AssignedByID        string        `json:"assigned_by_id"`
	Priority            task.Priority `json:"priority"`
	Notes               string        `json:"notes,omitempty"`
	Status              task.Status   `json:"status"`
	EstimatedCompletion *time.Time    `json:"estimated_completion,omitempty"`
	AssignedAt          time.Time     `json:"assigned_at"`
}

// TaskAssignedEvent mirrors TransitionEvent for the assignment sub-flow.
type TaskAssignedEvent struct {
	EventID      string
	TaskID       string
	RequestID    string
	RefCode      string
	OfficerID    string
	AssignedByID string
	Priority     task.Priority
	OccurredAt   time.Time
}
