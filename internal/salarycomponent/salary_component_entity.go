package salarycomponent

import (
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"

	"github.com/google/uuid"
)

// SalaryComponent is the organization-wide master definition of an earning or deduction.
// DefaultValue is a percentage for PERCENTAGE components and an amount for FIXED ones.
type SalaryComponent struct {
	ID              uuid.UUID              `gorm:"type:uuid;primaryKey"`
	OrganizationID  uuid.UUID              `gorm:"type:uuid;not null;index"`
	Name            string                 `gorm:"not null"`
	Kind            salary.ComponentKind   `gorm:"type:varchar(20);not null"`
	CalculationMode salary.CalculationMode `gorm:"type:varchar(20);not null"`
	BaseReference   salary.BaseReference   `gorm:"type:varchar(20)"`
	DefaultValue    float64                `gorm:"type:numeric(14,4);not null;default:0"`
	StatutoryCode   salary.StatutoryCode   `gorm:"type:varchar(10)"`
	Formula         string                 `gorm:"type:text"`
	Taxable         bool                   `gorm:"not null"`
	Statutory       bool                   `gorm:"not null"`
	Enabled         bool                   `gorm:"not null"`
	DisplayOrder    int                    `gorm:"not null;default:0"`
	CreatedBy       uuid.UUID              `gorm:"type:uuid"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (SalaryComponent) TableName() string {
	return "salary_components"
}

// ToLine snapshots the definition into a structure line.
func (c SalaryComponent) ToLine() salary.ComponentLine {
	line := salary.ComponentLine{
		Name:          c.Name,
		Kind:          c.Kind,
		Mode:          c.CalculationMode,
		BaseReference: c.BaseReference,
		StatutoryCode: c.StatutoryCode,
		Formula:       c.Formula,
		Taxable:       c.Taxable,
	}
	switch c.CalculationMode {
	case salary.ModePercentage:
		line.Percentage = c.DefaultValue
	case salary.ModeFixed:
		line.FixedAmount = c.DefaultValue
	}
	return line
}
