package events

import "time"

const (
	PayrollRunRequestedTopic = "payroll.run.requested.v1"
	PayrollRunCompletedTopic = "payroll.run.completed.v1"
)

const (
	EventPayrollRunRequested = "payroll_run_requested"
	EventPayrollRunCompleted = "payroll_run_completed"
)

// PayrollRunRequestedEvent asks the consumer to process a run outside the request.
type PayrollRunRequestedEvent struct {
	EventType      string    `json:"event_type"`
	RunID          string    `json:"run_id"`
	OrganizationID string    `json:"organization_id"`
	Month          int       `json:"month"`
	Year           int       `json:"year"`
	RequestedBy    string    `json:"requested_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type PayrollRunCompletedEvent struct {
	EventType            string    `json:"event_type"`
	RunID                string    `json:"run_id"`
	OrganizationID       string    `json:"organization_id"`
	Month                int       `json:"month"`
	Year                 int       `json:"year"`
	ProcessedEmployees   int       `json:"processed_employees"`
	FailedEmployeesCount int       `json:"failed_employees_count"`
	SkippedEmployees     int       `json:"skipped_employees"`
	TotalGross           int64     `json:"total_gross"`
	TotalDeductions      int64     `json:"total_deductions"`
	TotalNet             int64     `json:"total_net"`
	OccurredAt           time.Time `json:"occurred_at"`
}
