package leave

import "leavedesk/internal/authz"

// Actor identifies the authenticated employee performing an operation.
// It is built from the auth context, never from request bodies, so a
// caller cannot act on behalf of someone else.
type Actor struct {
	EmployeeID string
	Role       authz.Role
}

type CreateLeaveRequest struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason"`
}

// UpdateLeaveRequest edits a pending request. Status and requester are
// deliberately absent: transitions go through approve/reject/cancel.
type UpdateLeaveRequest struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason"`
}

type ReviewLeaveRequest struct {
	Comment *string `json:"comment"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	RequesterID     string  `json:"requester_id"`
	LeaveTypeID     string  `json:"leave_type_id"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	DaysCount       int     `json:"days_count"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	ApproverID      *string `json:"approver_id,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	ReviewerComment *string `json:"reviewer_comment,omitempty"`
}
