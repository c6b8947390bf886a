package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mnh-itaccess-backend/internal/domain/directory"
	"mnh-itaccess-backend/internal/domain/notification"
	"mnh-itaccess-backend/internal/domain/request"
	"mnh-itaccess-backend/internal/usecase/assignment"
	"mnh-itaccess-backend/internal/usecase/workflow"
)

const dedupKeyPrefix = "notify:done:"

// Dispatcher fans a workflow event out to inbox records. Delivery is
// at-least-once; the redis SetNX guard keyed by event id makes duplicate
// dispatch of the same event a no-op. Failures are logged and never
// propagated: a dead notification channel must not undo an approval.
type Dispatcher struct {
	notifs notification.Repository
	dir    directory.Directory
	rdb    *redis.Client // optional; nil disables dedup
	log    *zap.Logger

	dedupTTL time.Duration
}

func NewDispatcher(n notification.Repository, d directory.Directory, rdb *redis.Client, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{notifs: n, dir: d, rdb: rdb, log: log, dedupTTL: 24 * time.Hour}
}

// SubmittedEvent announces a freshly created request to the requester's
// department HODs.
type SubmittedEvent struct {
	EventID      string
	RequestID    string
	RefCode      string
	StaffID      string
	StaffName    string
	DepartmentID string
	OccurredAt   time.Time
}

func (d *Dispatcher) DispatchSubmitted(ctx context.Context, ev SubmittedEvent) {
	if !d.claim(ctx, ev.EventID) {
		return
	}
	hods, err := d.dir.UsersInRole(ctx, request.RoleHOD, ev.DepartmentID)
	if err != nil {
		d.log.Warn("notify: resolve HODs failed", zap.String("request_id", ev.RequestID), zap.Error(err))
		return
	}
	title := fmt.Sprintf("New access request %s", ev.RefCode)
	msg := fmt.Sprintf("%s submitted an access request awaiting your approval.", ev.StaffName)
	for _, rec := range hods {
		d.write(ctx, &notification.Notification{
			RecipientID: rec.UserID,
			SenderID:    ev.StaffID,
			RequestID:   ev.RequestID,
			Type:        notification.TypeApprovalPending,
			Title:       title,
			Message:     msg,
		}, ev.EventID)
	}
}

func (d *Dispatcher) DispatchTransition(ctx context.Context, ev *workflow.TransitionEvent) {
	if ev == nil || !d.claim(ctx, ev.EventID) {
		return
	}

	data, _ := json.Marshal(map[string]any{
		"stage":          ev.StageKey,
		"action":         ev.Action,
		"overall_status": ev.Overall,
	})

	// Requester always hears about the decision; a rejection carries the
	// approver's reason.
	var msg string
	switch ev.Action {
	case request.ActionReject:
		msg = fmt.Sprintf("Your request %s was rejected at the %s stage: %s", ev.RefCode, ev.StageKey, ev.Comment)
	case request.ActionImplement:
		msg = fmt.Sprintf("Your request %s has been implemented.", ev.RefCode)
	default:
		msg = fmt.Sprintf("Your request %s was approved at the %s stage.", ev.RefCode, ev.StageKey)
	}
	d.write(ctx, &notification.Notification{
		RecipientID: ev.RequesterID,
		SenderID:    ev.ActorID,
		RequestID:   ev.RequestID,
		Type:        notification.TypeStatusChanged,
		Title:       fmt.Sprintf("Request %s: %s", ev.RefCode, ev.Overall),
		Message:     msg,
		Data:        data,
	}, ev.EventID)

	// Approver fan-out: only while the chain is still moving. The terminal
	// stage is reached by explicit assignment, not by broadcast.
	if ev.Action == request.ActionReject || !ev.HasNext || ev.NextRole == request.RoleICTOfficer {
		return
	}
	dept := ""
	if ev.NextRole == request.RoleHOD {
		dept = ev.Department
	}
	recipients, err := d.dir.UsersInRole(ctx, ev.NextRole, dept)
	if err != nil {
		d.log.Warn("notify: resolve next approvers failed",
			zap.String("request_id", ev.RequestID), zap.String("role", string(ev.NextRole)), zap.Error(err))
		return
	}
	for _, rec := range recipients {
		d.write(ctx, &notification.Notification{
			RecipientID: rec.UserID,
			SenderID:    ev.ActorID,
			RequestID:   ev.RequestID,
			Type:        notification.TypeApprovalPending,
			Title:       fmt.Sprintf("Request %s awaits your approval", ev.RefCode),
			Message:     fmt.Sprintf("Request %s cleared the %s stage and is now pending your decision.", ev.RefCode, ev.StageKey),
			Data:        data,
		}, ev.EventID)
	}
}

func (d *Dispatcher) DispatchTaskAssigned(ctx context.Context, ev *assignment.TaskAssignedEvent) {
	if ev == nil || !d.claim(ctx, ev.EventID) {
		return
	}
	data, _ := json.Marshal(map[string]any{
		"task_id":  ev.TaskID,
		"priority": ev.Priority,
	})
	d.write(ctx, &notification.Notification{
		RecipientID: ev.OfficerID,
		SenderID:    ev.AssignedByID,
		RequestID:   ev.RequestID,
		Type:        notification.TypeTaskAssigned,
		Title:       fmt.Sprintf("Implementation task for %s", ev.RefCode),
		Message:     fmt.Sprintf("You have been assigned to implement request %s (%s priority).", ev.RefCode, ev.Priority),
		Data:        data,
	}, ev.EventID)
	// assigner confirmation
	d.write(ctx, &notification.Notification{
		RecipientID: ev.AssignedByID,
		SenderID:    ev.AssignedByID,
		RequestID:   ev.RequestID,
		Type:        notification.TypeTaskAssigned,
		Title:       fmt.Sprintf("Task for %s assigned", ev.RefCode),
		Message:     fmt.Sprintf("Request %s was assigned for implementation.", ev.RefCode),
		Data:        data,
	}, ev.EventID)
}

// claim reserves the event id. First caller wins; replays and errors on the
// dedup store fall back to delivering (at-least-once beats dropping).
func (d *Dispatcher) claim(ctx context.Context, eventID string) bool {
	if d.rdb == nil || eventID == "" {
		return true
	}
	ok, err := d.rdb.SetNX(ctx, dedupKeyPrefix+eventID, 1, d.dedupTTL).Result()
	if err != nil {
		d.log.Warn("notify: dedup store unavailable", zap.String("event_id", eventID), zap.Error(err))
		return true
	}
	return ok
}

func (d *Dispatcher) write(ctx context.Context, n *notification.Notification, eventID string) {
	if err := d.notifs.Create(ctx, n); err != nil {
		d.log.Warn("notify: write failed",
			zap.String("event_id", eventID), zap.String("recipient", n.RecipientID), zap.Error(err))
	}
}
