package employee

import "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"

type CreateEmployeeRequest struct {
	EmployeeCode        string `json:"employee_code" binding:"omitempty,max=30"`
	FullName            string `json:"full_name" binding:"required"`
	Email               string `json:"email" binding:"required,email"`
	Gender              string `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	WorkState           string `json:"work_state" binding:"omitempty,max=50"`
	JoiningDate         string `json:"joining_date" binding:"required"`
	PFApplicable        *bool  `json:"pf_applicable"`
	PFRestrictToCeiling *bool  `json:"pf_restrict_to_ceiling"`
	ESICApplicable      *bool  `json:"esic_applicable"`
}

type UpdateEmployeeRequest struct {
	FullName            string `json:"full_name" binding:"required"`
	Email               string `json:"email" binding:"required,email"`
	Gender              string `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	WorkState           string `json:"work_state" binding:"omitempty,max=50"`
	Status              string `json:"status" binding:"required,oneof=ACTIVE INACTIVE TERMINATED"`
	PFApplicable        *bool  `json:"pf_applicable"`
	PFRestrictToCeiling *bool  `json:"pf_restrict_to_ceiling"`
	ESICApplicable      *bool  `json:"esic_applicable"`
}

type EmployeeResponse struct {
	ID                  string            `json:"id"`
	OrganizationID      string            `json:"organization_id"`
	EmployeeCode        string            `json:"employee_code"`
	FullName            string            `json:"full_name"`
	Email               string            `json:"email"`
	Gender              string            `json:"gender,omitempty"`
	WorkState           string            `json:"work_state,omitempty"`
	Status              string            `json:"status"`
	JoiningDate         string            `json:"joining_date"`
	PFApplicable        bool              `json:"pf_applicable"`
	PFRestrictToCeiling bool              `json:"pf_restrict_to_ceiling"`
	ESICApplicable      bool              `json:"esic_applicable"`
	PayslipStructure    *salary.Structure `json:"payslip_structure,omitempty"`
}
