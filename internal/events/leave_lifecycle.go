package events

import "time"

const LeaveLifecycleTopic = "leave.lifecycle.v1"

const (
	EventTypeLeaveRequested = "leave.requested"
	EventTypeLeaveApproved  = "leave.approved"
	EventTypeLeaveRejected  = "leave.rejected"
	EventTypeLeaveCancelled = "leave.cancelled"
)

// LeaveLifecycleEvent is emitted through the outbox whenever a leave is
// created or transitions state. ActorID is the employee who performed the
// action, which for approvals differs from the requester.
type LeaveLifecycleEvent struct {
	EventType   string    `json:"event_type"`
	LeaveID     string    `json:"leave_id"`
	RequesterID string    `json:"requester_id"`
	ActorID     string    `json:"actor_id"`
	NewStatus   string    `json:"new_status"`
	OccurredAt  time.Time `json:"occurred_at"`
}
