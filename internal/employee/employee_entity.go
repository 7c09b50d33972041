package employee

import (
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusInactive   Status = "INACTIVE"
	StatusTerminated Status = "TERMINATED"
)

type Employee struct {
	ID                  uuid.UUID         `gorm:"type:uuid;primaryKey"`
	OrganizationID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	EmployeeCode        string            `gorm:"not null"`
	FullName            string            `gorm:"not null"`
	Email               string            `gorm:"not null"`
	Gender              string            `gorm:"type:varchar(10)"`
	WorkState           string            `gorm:"type:varchar(50)"`
	Status              Status            `gorm:"type:varchar(20);not null;default:ACTIVE;index"`
	JoiningDate         time.Time         `gorm:"type:date"`
	PFApplicable        bool              `gorm:"not null"`
	PFRestrictToCeiling bool              `gorm:"not null"`
	ESICApplicable      bool              `gorm:"not null"`
	PayslipStructure    *salary.Structure `gorm:"type:jsonb;serializer:json"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (Employee) TableName() string {
	return "employees"
}

// Profile returns the statutory facts used when resolving this employee's pay.
func (e Employee) Profile() salary.StatutoryProfile {
	return salary.StatutoryProfile{
		State:               e.WorkState,
		Gender:              e.Gender,
		PFApplicable:        e.PFApplicable,
		PFRestrictToCeiling: e.PFRestrictToCeiling,
		ESICApplicable:      e.ESICApplicable,
	}
}
