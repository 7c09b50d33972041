package employeesalary

import "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"

// ComponentAssignment picks a master component and optionally overrides its
// default percentage or fixed amount for this employee.
type ComponentAssignment struct {
	ComponentID string   `json:"component_id" binding:"required,uuid"`
	Value       *float64 `json:"value" binding:"omitempty,gte=0"`
}

type AssignStructureRequest struct {
	EmployeeID    string                `json:"employee_id" binding:"required,uuid"`
	SalaryType    string                `json:"salary_type" binding:"required,oneof=MONTHLY PER_DAY"`
	BasicSalary   float64               `json:"basic_salary" binding:"required,gt=0"`
	EffectiveDate string                `json:"effective_date" binding:"required"`
	Components    []ComponentAssignment `json:"components" binding:"dive"`
}

type EmployeeSalaryResponse struct {
	ID            string           `json:"id"`
	EmployeeID    string           `json:"employee_id"`
	EmployeeName  string           `json:"employee_name,omitempty"`
	SalaryType    string           `json:"salary_type"`
	BasicSalary   float64          `json:"basic_salary"`
	NetSalary     int64            `json:"net_salary"`
	Structure     salary.Structure `json:"structure"`
	EffectiveDate string           `json:"effective_date"`
	CreatedBy     string           `json:"created_by,omitempty"`
}

type PreviewRequest struct {
	Month   int `form:"month" binding:"required,min=1,max=12"`
	Year    int `form:"year" binding:"required,min=2000"`
	LOPDays int `form:"lop_days" binding:"omitempty,min=0"`
}

type PreviewResponse struct {
	EmployeeID      string            `json:"employee_id"`
	Month           int               `json:"month"`
	Year            int               `json:"year"`
	SalaryType      string            `json:"salary_type"`
	DeclaredBasic   float64           `json:"declared_basic"`
	ResolvedBasic   int64             `json:"resolved_basic"`
	WorkingDays     int               `json:"working_days"`
	PayableDays     int               `json:"payable_days"`
	LOPDays         int               `json:"lop_days"`
	Earnings        []salary.LineItem `json:"earnings"`
	Deductions      []salary.LineItem `json:"deductions"`
	Gross           int64             `json:"gross"`
	TotalDeductions int64             `json:"total_deductions"`
	Net             int64             `json:"net"`
	EmployerPF      int64             `json:"employer_pf"`
	EmployerESIC    int64             `json:"employer_esic"`
}
