package payslip

import (
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft  Status = "DRAFT"
	StatusLocked Status = "LOCKED"
	StatusPaid   Status = "PAID"
)

// Payslip is one employee's pay for one month. Amounts are whole currency units and
// NetSalary always equals GrossEarnings minus TotalDeductions. Only DRAFT payslips
// are rewritten by payroll processing.
type Payslip struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	OrganizationID  uuid.UUID         `gorm:"column:organization_id;type:uuid;not null;index;uniqueIndex:uq_payslip_number,priority:1"`
	EmployeeID      uuid.UUID         `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_payslip_employee_period"`
	PayrollRunID    *uuid.UUID        `gorm:"column:payroll_run_id;type:uuid;index"`
	PayslipNumber   string            `gorm:"column:payslip_number;type:varchar(30);not null;uniqueIndex:uq_payslip_number,priority:2"`
	Month           int               `gorm:"column:month;not null;uniqueIndex:uq_payslip_employee_period"`
	Year            int               `gorm:"column:year;not null;uniqueIndex:uq_payslip_employee_period"`
	SalaryType      salary.SalaryType `gorm:"column:salary_type;type:varchar(20);not null"`
	BasicSalary     float64           `gorm:"column:basic_salary;type:numeric(14,2);not null"`
	ProratedBasic   int64             `gorm:"column:prorated_basic;not null"`
	GrossEarnings   int64             `gorm:"column:gross_earnings;not null"`
	TotalDeductions int64             `gorm:"column:total_deductions;not null"`
	NetSalary       int64             `gorm:"column:net_salary;not null"`
	EmployerPF      int64             `gorm:"column:employer_pf;not null;default:0"`
	EmployerESIC    int64             `gorm:"column:employer_esic;not null;default:0"`
	Earnings        []salary.LineItem `gorm:"column:earnings;type:jsonb;serializer:json"`
	Deductions      []salary.LineItem `gorm:"column:deductions;type:jsonb;serializer:json"`
	WorkingDays     int               `gorm:"column:working_days;not null"`
	PresentDays     int               `gorm:"column:present_days;not null"`
	LOPDays         int               `gorm:"column:lop_days;not null"`
	Status          Status            `gorm:"column:status;type:varchar(20);not null;default:DRAFT;index"`
	GeneratedBy     uuid.UUID         `gorm:"column:generated_by;type:uuid"`
	LockedAt        *time.Time        `gorm:"column:locked_at"`
	PaidAt          *time.Time        `gorm:"column:paid_at"`
	CreatedAt       time.Time         `gorm:"column:created_at"`
	UpdatedAt       time.Time         `gorm:"column:updated_at"`
	Employee        *EmployeeRef      `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Payslip) TableName() string {
	return "payslips"
}

func (p Payslip) Frozen() bool {
	return p.Status != StatusDraft
}

// Apply overwrites the computed amounts with a resolution. Identity, number and
// status are left alone.
func (p *Payslip) Apply(res salary.Resolution) {
	p.SalaryType = res.SalaryType
	p.BasicSalary = res.DeclaredBasic
	p.ProratedBasic = res.ResolvedBasic
	p.GrossEarnings = res.Gross
	p.TotalDeductions = res.TotalDeductions
	p.NetSalary = res.Gross - res.TotalDeductions
	p.EmployerPF = res.EmployerPF
	p.EmployerESIC = res.EmployerESIC
	p.Earnings = res.Earnings
	p.Deductions = res.Deductions
	p.WorkingDays = res.WorkingDays
	p.PresentDays = res.PayableDays
	p.LOPDays = res.LOPDays
}

type EmployeeRef struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string    `gorm:"column:employee_code"`
	FullName     string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
