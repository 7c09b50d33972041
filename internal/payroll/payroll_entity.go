package payroll

import (
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	StatusDraft      RunStatus = "DRAFT"
	StatusProcessing RunStatus = "PROCESSING"
	StatusCompleted  RunStatus = "COMPLETED"
	StatusApproved   RunStatus = "APPROVED"
	StatusLocked     RunStatus = "LOCKED"
	StatusCancelled  RunStatus = "CANCELLED"
)

const (
	LogLevelInfo  = "INFO"
	LogLevelWarn  = "WARN"
	LogLevelError = "ERROR"
)

type RunLogEntry struct {
	At         time.Time `json:"at"`
	Level      string    `json:"level"`
	EmployeeID string    `json:"employee_id,omitempty"`
	Message    string    `json:"message"`
}

// PayrollRun is the batch for one organization and month, unique per period.
// Logs is append-only.
type PayrollRun struct {
	ID                   uuid.UUID     `gorm:"column:id;type:uuid;primaryKey"`
	OrganizationID       uuid.UUID     `gorm:"column:organization_id;type:uuid;not null;uniqueIndex:uq_payroll_run_period"`
	RunCode              string        `gorm:"column:run_code;type:varchar(20);not null"`
	Month                int           `gorm:"column:month;not null;uniqueIndex:uq_payroll_run_period"`
	Year                 int           `gorm:"column:year;not null;uniqueIndex:uq_payroll_run_period"`
	Status               RunStatus     `gorm:"column:status;type:varchar(20);not null;default:DRAFT;index"`
	PeriodStart          time.Time     `gorm:"column:period_start;type:date;not null"`
	PeriodEnd            time.Time     `gorm:"column:period_end;type:date;not null"`
	TotalEmployees       int           `gorm:"column:total_employees;not null;default:0"`
	ProcessedEmployees   int           `gorm:"column:processed_employees;not null;default:0"`
	FailedEmployeesCount int           `gorm:"column:failed_employees_count;not null;default:0"`
	SkippedEmployees     int           `gorm:"column:skipped_employees;not null;default:0"`
	TotalGross           int64         `gorm:"column:total_gross;not null;default:0"`
	TotalDeductions      int64         `gorm:"column:total_deductions;not null;default:0"`
	TotalNet             int64         `gorm:"column:total_net;not null;default:0"`
	Logs                 []RunLogEntry `gorm:"column:logs;type:jsonb;serializer:json"`
	Notes                *string       `gorm:"column:notes;type:text"`
	GeneratedBy          uuid.UUID     `gorm:"column:generated_by;type:uuid;not null"`
	ApprovedBy           *uuid.UUID    `gorm:"column:approved_by;type:uuid"`
	ApprovedAt           *time.Time    `gorm:"column:approved_at"`
	LockedBy             *uuid.UUID    `gorm:"column:locked_by;type:uuid"`
	LockedAt             *time.Time    `gorm:"column:locked_at"`
	CancelledBy          *uuid.UUID    `gorm:"column:cancelled_by;type:uuid"`
	CancelledAt          *time.Time    `gorm:"column:cancelled_at"`
	ProcessedAt          *time.Time    `gorm:"column:processed_at"`
	CreatedAt            time.Time     `gorm:"column:created_at"`
	UpdatedAt            time.Time     `gorm:"column:updated_at"`
}

func (PayrollRun) TableName() string {
	return "payroll_runs"
}

func (r *PayrollRun) AppendLog(level, employeeID, message string) {
	r.Logs = append(r.Logs, RunLogEntry{
		At:         time.Now().UTC(),
		Level:      level,
		EmployeeID: employeeID,
		Message:    message,
	})
}

// resetTotals clears the aggregates before a processing pass.
func (r *PayrollRun) resetTotals() {
	r.TotalEmployees = 0
	r.ProcessedEmployees = 0
	r.FailedEmployeesCount = 0
	r.SkippedEmployees = 0
	r.TotalGross = 0
	r.TotalDeductions = 0
	r.TotalNet = 0
}
