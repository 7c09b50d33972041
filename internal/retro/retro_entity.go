package retro

import (
	"fmt"
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryRetro      Category = "RETRO"
	CategoryBonus      Category = "BONUS"
	CategoryArrear     Category = "ARREAR"
	CategoryCorrection Category = "CORRECTION"
	CategoryOther      Category = "OTHER"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApplied   Status = "APPLIED"
	StatusCancelled Status = "CANCELLED"
)

// RetroAdjustment is a one-off earning or deduction consumed by exactly one payroll run.
// AppliedMonth and AppliedYear are set while the adjustment is APPLIED and cleared on rollback.
type RetroAdjustment struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	OrganizationID uuid.UUID            `gorm:"column:organization_id;type:uuid;not null;index"`
	EmployeeID     uuid.UUID            `gorm:"column:employee_id;type:uuid;not null;index"`
	ComponentName  string               `gorm:"column:component_name;type:varchar(100);not null"`
	Kind           salary.ComponentKind `gorm:"column:kind;type:varchar(20);not null"`
	Amount         int64                `gorm:"column:amount;not null"`
	Reason         string               `gorm:"column:reason;type:text"`
	Category       Category             `gorm:"column:category;type:varchar(20);not null;default:RETRO"`
	Status         Status               `gorm:"column:status;type:varchar(20);not null;default:PENDING;index"`
	TargetMonth    int                  `gorm:"column:target_month;not null"`
	TargetYear     int                  `gorm:"column:target_year;not null"`
	AppliedMonth   *int                 `gorm:"column:applied_month"`
	AppliedYear    *int                 `gorm:"column:applied_year"`
	CreatedBy      uuid.UUID            `gorm:"column:created_by;type:uuid"`
	CancelledBy    *uuid.UUID           `gorm:"column:cancelled_by;type:uuid"`
	CreatedAt      time.Time            `gorm:"column:created_at"`
	UpdatedAt      time.Time            `gorm:"column:updated_at"`
	Employee       *EmployeeRef         `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (RetroAdjustment) TableName() string {
	return "retro_adjustments"
}

// LineItem renders the adjustment as an extra payslip line.
func (r RetroAdjustment) LineItem() salary.LineItem {
	return salary.LineItem{
		Type:            r.Kind,
		Name:            r.ComponentName,
		Amount:          r.Amount,
		CalculationMode: salary.ModeFixed,
		Source:          fmt.Sprintf("%s:%s", r.Category, r.ID),
	}
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
