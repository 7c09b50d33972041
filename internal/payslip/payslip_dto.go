package payslip

import (
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/taxregime"
)

type ListPayslipQuery struct {
	EmployeeID   string `form:"employee_id" binding:"omitempty,uuid"`
	PayrollRunID string `form:"payroll_run_id" binding:"omitempty,uuid"`
	Month        int    `form:"month" binding:"omitempty,min=1,max=12"`
	Year         int    `form:"year" binding:"omitempty,min=2000"`
	Status       string `form:"status" binding:"omitempty,oneof=DRAFT LOCKED PAID"`
}

type TaxComparisonRequest struct {
	taxregime.Exemptions
}

type TaxComparisonResponse struct {
	PayslipID     string               `json:"payslip_id"`
	MonthlyGross  int64                `json:"monthly_gross"`
	AnnualGross   float64              `json:"annual_gross"`
	Comparison    taxregime.Comparison `json:"comparison"`
	PayslipNumber string               `json:"payslip_number"`
}

type PayslipResponse struct {
	ID              string            `json:"id"`
	OrganizationID  string            `json:"organization_id"`
	EmployeeID      string            `json:"employee_id"`
	EmployeeCode    string            `json:"employee_code,omitempty"`
	EmployeeName    string            `json:"employee_name,omitempty"`
	PayrollRunID    *string           `json:"payroll_run_id,omitempty"`
	PayslipNumber   string            `json:"payslip_number"`
	Month           int               `json:"month"`
	Year            int               `json:"year"`
	SalaryType      string            `json:"salary_type"`
	BasicSalary     float64           `json:"basic_salary"`
	ProratedBasic   int64             `json:"prorated_basic"`
	GrossEarnings   int64             `json:"gross_earnings"`
	TotalDeductions int64             `json:"total_deductions"`
	NetSalary       int64             `json:"net_salary"`
	EmployerPF      int64             `json:"employer_pf"`
	EmployerESIC    int64             `json:"employer_esic"`
	Earnings        []salary.LineItem `json:"earnings"`
	Deductions      []salary.LineItem `json:"deductions"`
	WorkingDays     int               `json:"working_days"`
	PresentDays     int               `json:"present_days"`
	LOPDays         int               `json:"lop_days"`
	Status          string            `json:"status"`
	LockedAt        *string           `json:"locked_at,omitempty"`
	PaidAt          *string           `json:"paid_at,omitempty"`
}
