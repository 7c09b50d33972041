package retro

type CreateRetroAdjustmentRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	ComponentName string `json:"component_name" binding:"required,max=100"`
	Kind          string `json:"kind" binding:"required,oneof=EARNING DEDUCTION"`
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	Reason        string `json:"reason" binding:"omitempty,max=500"`
	Category      string `json:"category" binding:"omitempty,oneof=RETRO BONUS ARREAR CORRECTION OTHER"`
	TargetMonth   int    `json:"target_month" binding:"required,min=1,max=12"`
	TargetYear    int    `json:"target_year" binding:"required,min=2000"`
}

type ListRetroAdjustmentQuery struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=PENDING APPLIED CANCELLED"`
}

type RetroAdjustmentResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name,omitempty"`
	ComponentName  string `json:"component_name"`
	Kind           string `json:"kind"`
	Amount         int64  `json:"amount"`
	Reason         string `json:"reason,omitempty"`
	Category       string `json:"category"`
	Status         string `json:"status"`
	TargetMonth    int    `json:"target_month"`
	TargetYear     int    `json:"target_year"`
	AppliedMonth   *int   `json:"applied_month,omitempty"`
	AppliedYear    *int   `json:"applied_year,omitempty"`
	CreatedBy      string `json:"created_by"`
	CreatedAt      string `json:"created_at"`
}
