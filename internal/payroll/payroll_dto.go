package payroll

type CreatePayrollRunRequest struct {
	Month int     `json:"month" binding:"required,min=1,max=12"`
	Year  int     `json:"year" binding:"required,min=2000"`
	Notes *string `json:"notes" binding:"omitempty,max=1000"`
}

type ProcessPeriodRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=2000"`
}

type UpdatePayrollRunRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=1000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED LOCKED CANCELLED"`
}

type ListPayrollRunQuery struct {
	Year   int    `form:"year" binding:"omitempty,min=2000"`
	Status string `form:"status" binding:"omitempty,oneof=DRAFT PROCESSING COMPLETED APPROVED LOCKED CANCELLED"`
}

type PayrollRunResponse struct {
	ID                   string        `json:"id"`
	OrganizationID       string        `json:"organization_id"`
	RunCode              string        `json:"run_code"`
	Month                int           `json:"month"`
	Year                 int           `json:"year"`
	Status               string        `json:"status"`
	PeriodStart          string        `json:"period_start"`
	PeriodEnd            string        `json:"period_end"`
	TotalEmployees       int           `json:"total_employees"`
	ProcessedEmployees   int           `json:"processed_employees"`
	FailedEmployeesCount int           `json:"failed_employees_count"`
	SkippedEmployees     int           `json:"skipped_employees"`
	TotalGross           int64         `json:"total_gross"`
	TotalDeductions      int64         `json:"total_deductions"`
	TotalNet             int64         `json:"total_net"`
	Logs                 []RunLogEntry `json:"logs,omitempty"`
	Notes                *string       `json:"notes,omitempty"`
	GeneratedBy          string        `json:"generated_by"`
	ApprovedBy           *string       `json:"approved_by,omitempty"`
	ApprovedAt           *string       `json:"approved_at,omitempty"`
	LockedBy             *string       `json:"locked_by,omitempty"`
	LockedAt             *string       `json:"locked_at,omitempty"`
	CancelledBy          *string       `json:"cancelled_by,omitempty"`
	CancelledAt          *string       `json:"cancelled_at,omitempty"`
	ProcessedAt          *string       `json:"processed_at,omitempty"`
	Queued               bool          `json:"queued,omitempty"`
}
