package request

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StageStatus string

const (
	StatusPending     StageStatus = "pending"
	StatusApproved    StageStatus = "approved"
	StatusRejected    StageStatus = "rejected"
	StatusImplemented StageStatus = "implemented"
)

type AccessMode string

const (
	ModePermanent AccessMode = "permanent"
	ModeTemporary AccessMode = "temporary"
)

type Service string

const (
	ServiceJeeva    Service = "jeeva"
	ServiceWellsoft Service = "wellsoft"
	ServiceInternet Service = "internet"
)

type Role string

const (
	RoleStaff              Role = "staff"
	RoleHOD                Role = "hod"
	RoleDivisionalDirector Role = "divisional_director"
	RoleICTDirector        Role = "ict_director"
	RoleHeadIT             Role = "head_of_it"
	RoleICTOfficer         Role = "ict_officer"
	RoleAdmin              Role = "admin"
)

// Request is an access/booking request moving through the five-stage
// approval chain. Each stage keeps its own status plus approver metadata so
// the stages stay independently queryable.
type Request struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	RequestID string `gorm:"size:32;uniqueIndex:ux_requests_request_id" json:"request_id"`
	// Human-readable reference, e.g. REQ-000123. Assigned from the numeric
	// PK right after insert.
	RefCode string `gorm:"size:16;index:idx_requests_ref_code" json:"ref_code"`

	StaffID      string `gorm:"size:32;index:idx_requests_staff" json:"staff_id"`
	StaffName    string `gorm:"size:120" json:"staff_name"`
	PhoneNumber  string `gorm:"size:32" json:"phone_number"`
	DepartmentID string `gorm:"size:32;index:idx_requests_department" json:"department_id"`

	// Services holds a JSON array of requested services (subset of
	// jeeva/wellsoft/internet); Modules maps service → selected module names.
	Services datatypes.JSON `gorm:"column:services" json:"services"`
	Modules  datatypes.JSON `gorm:"column:modules" json:"modules"`

	AccessMode     AccessMode `gorm:"type:enum('permanent','temporary');default:'permanent'" json:"access_mode"`
	TemporaryUntil *time.Time `gorm:"column:temporary_until" json:"temporary_until,omitempty"`

	HodStatus       StageStatus `gorm:"column:hod_status;type:enum('pending','approved','rejected');default:'pending'" json:"hod_status"`
	HodApproverID   string      `gorm:"column:hod_approver_id;size:32" json:"hod_approver_id,omitempty"`
	HodApproverName string      `gorm:"column:hod_approver_name;size:120" json:"hod_approver_name,omitempty"`
	HodComment      string      `gorm:"column:hod_comment;type:text" json:"hod_comment,omitempty"`
	HodSignatureRef string      `gorm:"column:hod_signature_ref;type:text" json:"hod_signature_ref,omitempty"`
	HodDecidedAt    *time.Time  `gorm:"column:hod_decided_at" json:"hod_decided_at,omitempty"`

	DivisionalStatus       StageStatus `gorm:"column:divisional_status;type:enum('pending','approved','rejected');default:'pending'" json:"divisional_status"`
	DivisionalApproverID   string      `gorm:"column:divisional_approver_id;size:32" json:"divisional_approver_id,omitempty"`
	DivisionalApproverName string      `gorm:"column:divisional_approver_name;size:120" json:"divisional_approver_name,omitempty"`
	DivisionalComment      string      `gorm:"column:divisional_comment;type:text" json:"divisional_comment,omitempty"`
	DivisionalSignatureRef string      `gorm:"column:divisional_signature_ref;type:text" json:"divisional_signature_ref,omitempty"`
	DivisionalDecidedAt    *time.Time  `gorm:"column:divisional_decided_at" json:"divisional_decided_at,omitempty"`

	ICTDirectorStatus       StageStatus `gorm:"column:ict_director_status;type:enum('pending','approved','rejected');default:'pending'" json:"ict_director_status"`
	ICTDirectorApproverID   string      `gorm:"column:ict_director_approver_id;size:32" json:"ict_director_approver_id,omitempty"`
	ICTDirectorApproverName string      `gorm:"column:ict_director_approver_name;size:120" json:"ict_director_approver_name,omitempty"`
	ICTDirectorComment      string      `gorm:"column:ict_director_comment;type:text" json:"ict_director_comment,omitempty"`
	ICTDirectorSignatureRef string      `gorm:"column:ict_director_signature_ref;type:text" json:"ict_director_signature_ref,omitempty"`
	ICTDirectorDecidedAt    *time.Time  `gorm:"column:ict_director_decided_at" json:"ict_director_decided_at,omitempty"`

	HeadITStatus       StageStatus `gorm:"column:head_it_status;type:enum('pending','approved','rejected');default:'pending'" json:"head_it_status"`
	HeadITApproverID   string      `gorm:"column:head_it_approver_id;size:32" json:"head_it_approver_id,omitempty"`
	HeadITApproverName string      `gorm:"column:head_it_approver_name;size:120" json:"head_it_approver_name,omitempty"`
	HeadITComment      string      `gorm:"column:head_it_comment;type:text" json:"head_it_comment,omitempty"`
	HeadITSignatureRef string      `gorm:"column:head_it_signature_ref;type:text" json:"head_it_signature_ref,omitempty"`
	HeadITDecidedAt    *time.Time  `gorm:"column:head_it_decided_at" json:"head_it_decided_at,omitempty"`

	ICTOfficerStatus       StageStatus `gorm:"column:ict_officer_status;type:enum('pending','approved','rejected','implemented');default:'pending'" json:"ict_officer_status"`
	ICTOfficerApproverID   string      `gorm:"column:ict_officer_approver_id;size:32" json:"ict_officer_approver_id,omitempty"`
	ICTOfficerApproverName string      `gorm:"column:ict_officer_approver_name;size:120" json:"ict_officer_approver_name,omitempty"`
	ICTOfficerComment      string      `gorm:"column:ict_officer_comment;type:text" json:"ict_officer_comment,omitempty"`
	ICTOfficerSignatureRef string      `gorm:"column:ict_officer_signature_ref;type:text" json:"ict_officer_signature_ref,omitempty"`
	ICTOfficerDecidedAt    *time.Time  `gorm:"column:ict_officer_decided_at" json:"ict_officer_decided_at,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Request) TableName() string { return "requests" }

// StageRecord is a value copy of one stage's decision fields, used by the
// approval-snapshot projection and the policy helpers.
type StageRecord struct {
	Status       StageStatus `json:"status"`
	ApproverID   string      `json:"approver_id,omitempty"`
	ApproverName string      `json:"approver_name,omitempty"`
	Comment      string      `json:"comment,omitempty"`
	SignatureRef string      `json:"signature_ref,omitempty"`
	DecidedAt    *time.Time  `json:"decided_at,omitempty"`
}

// stageFields points at one stage's column group so policy code can treat
// the five groups as an indexed array.
type stageFields struct {
	status       *StageStatus
	approverID   *string
	approverName *string
	comment      *string
	signatureRef *string
	decidedAt    **time.Time
}

func (r *Request) stage(i int) stageFields {
	switch i {
	case StageHOD:
		return stageFields{&r.HodStatus, &r.HodApproverID, &r.HodApproverName, &r.HodComment, &r.HodSignatureRef, &r.HodDecidedAt}
	case StageDivisional:
		return stageFields{&r.DivisionalStatus, &r.DivisionalApproverID, &r.DivisionalApproverName, &r.DivisionalComment, &r.DivisionalSignatureRef, &r.DivisionalDecidedAt}
	case StageICTDirector:
		return stageFields{&r.ICTDirectorStatus, &r.ICTDirectorApproverID, &r.ICTDirectorApproverName, &r.ICTDirectorComment, &r.ICTDirectorSignatureRef, &r.ICTDirectorDecidedAt}
	case StageHeadIT:
		return stageFields{&r.HeadITStatus, &r.HeadITApproverID, &r.HeadITApproverName, &r.HeadITComment, &r.HeadITSignatureRef, &r.HeadITDecidedAt}
	case StageICTOfficer:
		return stageFields{&r.ICTOfficerStatus, &r.ICTOfficerApproverID, &r.ICTOfficerApproverName, &r.ICTOfficerComment, &r.ICTOfficerSignatureRef, &r.ICTOfficerDecidedAt}
	}
	return stageFields{}
}

func (r *Request) StatusAt(i int) StageStatus {
	f := r.stage(i)
	if f.status == nil {
		return ""
	}
	return *f.status
}

func (r *Request) RecordAt(i int) StageRecord {
	f := r.stage(i)
	if f.status == nil {
		return StageRecord{}
	}
	return StageRecord{
		Status:       *f.status,
		ApproverID:   *f.approverID,
		ApproverName: *f.approverName,
		Comment:      *f.comment,
		SignatureRef: *f.signatureRef,
		DecidedAt:    *f.decidedAt,
	}
}

// ServiceList decodes the Services JSON column. A broken column yields nil.
func (r *Request) ServiceList() []Service {
	var out []Service
	if len(r.Services) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Services, &out); err != nil {
		return nil
	}
	return out
}
