package employeesalary

import (
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"

	"github.com/google/uuid"
)

// EmployeeSalary is one immutable revision of an employee's payslip structure.
type EmployeeSalary struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID         `gorm:"type:uuid;not null;index"`
	EmployeeID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	EmployeeName   string            `gorm:"->;-:migration"`
	SalaryType     salary.SalaryType `gorm:"type:varchar(20);not null"`
	BasicSalary    float64           `gorm:"type:numeric(14,2);not null"`
	NetSalary      int64             `gorm:"not null"`
	Structure      salary.Structure  `gorm:"type:jsonb;serializer:json;not null"`
	EffectiveDate  time.Time         `gorm:"type:date;not null"`
	CreatedBy      uuid.UUID         `gorm:"type:uuid"`
	CreatedAt      time.Time
}

func (EmployeeSalary) TableName() string {
	return "employee_salaries"
}
