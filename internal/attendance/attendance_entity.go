package attendance

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusLeave   Status = "LEAVE"
	StatusHoliday Status = "HOLIDAY"
	StatusWeekOff Status = "WEEK_OFF"
)

// LOPStatuses are the day statuses that count as loss of pay.
var LOPStatuses = []Status{StatusAbsent, StatusLeave}

// Attendance is one employee's status for one calendar day, unique per
// (employee_id, attendance_date).
type Attendance struct {
	ID             uuid.UUID    `gorm:"column:id;type:uuid;primaryKey"`
	OrganizationID uuid.UUID    `gorm:"column:organization_id;type:uuid;not null;index"`
	EmployeeID     uuid.UUID    `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate time.Time    `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	Status         Status       `gorm:"column:status;type:varchar(20);not null;default:PRESENT"`
	Source         string       `gorm:"column:source;type:varchar(30);not null;default:MANUAL"`
	Notes          *string      `gorm:"column:notes;type:text"`
	RecordedBy     uuid.UUID    `gorm:"column:recorded_by;type:uuid"`
	CreatedAt      time.Time    `gorm:"column:created_at"`
	UpdatedAt      time.Time    `gorm:"column:updated_at"`
	Employee       *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
