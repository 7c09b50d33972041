package attendance

type RecordAttendanceRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	Date       string  `json:"date" binding:"required"`
	Status     string  `json:"status" binding:"required,oneof=PRESENT ABSENT LEAVE HOLIDAY WEEK_OFF"`
	Source     string  `json:"source" binding:"omitempty,max=30"`
	Notes      *string `json:"notes"`
}

type ListAttendanceQuery struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	From       string `form:"from"`
	To         string `form:"to"`
}

type LOPSummaryQuery struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=2000"`
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	AttendanceDate string  `json:"attendance_date"`
	Status         string  `json:"status"`
	Source         string  `json:"source"`
	Notes          *string `json:"notes,omitempty"`
}

type LOPSummaryResponse struct {
	EmployeeID  string `json:"employee_id"`
	Month       int    `json:"month"`
	Year        int    `json:"year"`
	WorkingDays int    `json:"working_days"`
	LOPDays     int    `json:"lop_days"`
}
