package salarycomponent

type UpsertSalaryComponentRequest struct {
	Name            string  `json:"name" binding:"required,max=100"`
	Kind            string  `json:"kind" binding:"required,oneof=EARNING DEDUCTION"`
	CalculationMode string  `json:"calculation_mode" binding:"required,oneof=PERCENTAGE FIXED COMPUTED"`
	BaseReference   string  `json:"base_reference" binding:"omitempty,oneof=BASIC GROSS"`
	DefaultValue    float64 `json:"default_value" binding:"gte=0"`
	StatutoryCode   string  `json:"statutory_code" binding:"omitempty,oneof=PF ESIC PT"`
	Formula         string  `json:"formula" binding:"max=500"`
	Taxable         *bool   `json:"taxable"`
	Enabled         *bool   `json:"enabled"`
	DisplayOrder    int     `json:"display_order"`
}

type SalaryComponentResponse struct {
	ID              string  `json:"id"`
	OrganizationID  string  `json:"organization_id"`
	Name            string  `json:"name"`
	Kind            string  `json:"kind"`
	CalculationMode string  `json:"calculation_mode"`
	BaseReference   string  `json:"base_reference,omitempty"`
	DefaultValue    float64 `json:"default_value"`
	StatutoryCode   string  `json:"statutory_code,omitempty"`
	Formula         string  `json:"formula,omitempty"`
	Taxable         bool    `json:"taxable"`
	Statutory       bool    `json:"statutory"`
	Enabled         bool    `json:"enabled"`
	DisplayOrder    int     `json:"display_order"`
}
