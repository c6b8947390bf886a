package request

import (
	"time"

	domain "mnh-itaccess-backend/internal/domain/request"
)

type CreateRequestInput struct {
	StaffID      string // 32-char hex
	StaffName    string
	PhoneNumber  string
	DepartmentID string

	Services []domain.Service
	Modules  map[domain.Service][]string

	AccessMode     domain.AccessMode
	TemporaryUntil *time.Time
}

type RequestDTO struct {
	RequestID      string            `json:"request_id"`
	RefCode        string            `json:"ref_code"`
	StaffID        string            `json:"staff_id"`
	StaffName      string            `json:"staff_name"`
	PhoneNumber    string            `json:"phone_number"`
	DepartmentID   string            `json:"department_id"`
	Services       []domain.Service  `json:"services"`
	AccessMode     domain.AccessMode `json:"access_mode"`
	TemporaryUntil *time.Time        `json:"temporary_until,omitempty"`

	Overall      domain.OverallStatus `json:"overall_status"`
	CurrentStage string               `json:"current_stage,omitempty"`

	Stages    map[string]domain.StageRecord `json:"stages"`
	CreatedAt time.Time                     `json:"created_at"`
}

// SnapshotDTO is the read-only projection the external PDF renderer
// consumes verbatim: requester header plus all five stages' decision fields.
type SnapshotDTO struct {
	RequestID    string               `json:"request_id"`
	RefCode      string               `json:"ref_code"`
	StaffName    string               `json:"staff_name"`
	DepartmentID string               `json:"department_id"`
	Services     []domain.Service     `json:"services"`
	Overall      domain.OverallStatus `json:"overall_status"`

	Stages []SnapshotStage `json:"stages"`
}

type SnapshotStage struct {
	Key   string `json:"stage"`
	Label string `json:"label"`
	domain.StageRecord
}
