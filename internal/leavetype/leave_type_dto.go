package leavetype

type CreateLeaveTypeRequest struct {
	Name                 string `json:"name" binding:"required,min=2,max=100"`
	Description          string `json:"description" binding:"max=500"`
	DefaultAllowanceDays int    `json:"default_allowance_days" binding:"gte=0,lte=366"`
	IsPaid               *bool  `json:"is_paid"`
}

type UpdateLeaveTypeRequest struct {
	Name                 string `json:"name" binding:"required,min=2,max=100"`
	Description          string `json:"description" binding:"max=500"`
	DefaultAllowanceDays int    `json:"default_allowance_days" binding:"gte=0,lte=366"`
	IsPaid               *bool  `json:"is_paid"`
}

type LeaveTypeResponse struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Description          string `json:"description,omitempty"`
	DefaultAllowanceDays int    `json:"default_allowance_days"`
	IsPaid               bool   `json:"is_paid"`
	CreatedAt            string `json:"created_at,omitempty"`
	UpdatedAt            string `json:"updated_at,omitempty"`
}
