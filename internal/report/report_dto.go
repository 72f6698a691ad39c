package report

type LeaveUsageRow struct {
	EmployeeID    string `json:"employee_id"`
	FullName      string `json:"full_name"`
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name"`
	ApprovedDays  int    `json:"approved_days"`
	RequestCount  int    `json:"request_count"`
}

type StatusBreakdownRow struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type LeaveUsageReport struct {
	Year            int                  `json:"year"`
	Rows            []LeaveUsageRow      `json:"rows"`
	StatusBreakdown []StatusBreakdownRow `json:"status_breakdown"`
}
