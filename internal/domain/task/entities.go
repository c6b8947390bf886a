package task

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusAssigned    Status = "assigned"
	StatusInProgress  Status = "in_progress"
	StatusImplemented Status = "implemented"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var (
	ErrNotFound = errors.New("task assignment not found")
	// ErrPreconditionFailed: assignment attempted before head-of-IT approval,
	// or the request already has an assignment.
	ErrPreconditionFailed = errors.New("assignment precondition failed")
	// ErrInvalidTransition: backward or skipping move in the task lifecycle.
	ErrInvalidTransition = errors.New("invalid task transition")
)

// Assignment is the implementation ticket created by the Head of IT once a
// request clears the approval chain. One active assignment per request.
type Assignment struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	TaskID string `gorm:"size:32;uniqueIndex:ux_tasks_task_id" json:"task_id"`
	// FK to requests.id (numeric); unique so a second assignment is refused
	// at the schema level as well.
	RequestID uint64 `gorm:"column:request_id;not null;uniqueIndex:ux_tasks_request" json:"-"`

	OfficerID      string `gorm:"size:32;index:idx_tasks_officer" json:"officer_id"`
	OfficerName    string `gorm:"size:120" json:"officer_name"`
	AssignedByID   string `gorm:"size:32" json:"assigned_by_id"`
	AssignedByName string `gorm:"size:120" json:"assigned_by_name"`

	Priority Priority `gorm:"type:enum('low','normal','high','urgent');default:'normal'" json:"priority"`
	Notes    string   `gorm:"type:text" json:"notes,omitempty"`

	EstimatedCompletion *time.Time `gorm:"column:estimated_completion" json:"estimated_completion,omitempty"`
	Status              Status     `gorm:"type:enum('assigned','in_progress','implemented');default:'assigned'" json:"status"`
	AssignedAt          time.Time  `gorm:"column:assigned_at" json:"assigned_at"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Assignment) TableName() string { return "task_assignments" }

// rank orders the lifecycle; transitions must move forward one step at a time.
func rank(s Status) int {
	switch s {
	case StatusAssigned:
		return 0
	case StatusInProgress:
		return 1
	case StatusImplemented:
		return 2
	}
	return -1
}

// Advance validates and applies a forward-only, no-skip transition.
func (a *Assignment) Advance(to Status) error {
	from, dest := rank(a.Status), rank(to)
	if dest < 0 || dest != from+1 {
		return ErrInvalidTransition
	}
	a.Status = to
	return nil
}
