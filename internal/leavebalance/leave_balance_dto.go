package leavebalance

type AdjustBalanceRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID   string `json:"leave_type_id" binding:"required,uuid"`
	Year          int    `json:"year" binding:"required,min=2000,max=2200"`
	AllowanceDays int    `json:"allowance_days" binding:"required,min=0"`
}

type BalanceResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	LeaveTypeID   string `json:"leave_type_id"`
	Year          int    `json:"year"`
	AllowanceDays int    `json:"allowance_days"`
	UsedDays      int    `json:"used_days"`
	RemainingDays int    `json:"remaining_days"`
}
