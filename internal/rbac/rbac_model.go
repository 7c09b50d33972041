package rbac

const modelText = `[request_definition]
r = sub, dom, obj, act

[policy_definition]
p = sub, dom, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && (p.dom == "*" || r.dom == p.dom) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

const (
	RoleAdmin   = "admin"
	RoleHR      = "hr"
	RoleFinance = "finance"
	RoleViewer  = "viewer"
)

// defaultPolicies apply to every organization; rows are role, resource, action.
var defaultPolicies = [][3]string{
	{RoleAdmin, "*", "*"},

	{RoleHR, "employee", "*"},
	{RoleHR, "employee_salary", "*"},
	{RoleHR, "attendance", "*"},
	{RoleHR, "salary_component", "*"},
	{RoleHR, "retro", "*"},
	{RoleHR, "payslip", "read"},
	{RoleHR, "payroll", "read"},
	{RoleHR, "tax", "read"},

	{RoleFinance, "payroll", "*"},
	{RoleFinance, "payslip", "*"},
	{RoleFinance, "retro", "read"},
	{RoleFinance, "retro", "create"},
	{RoleFinance, "tax", "read"},
	{RoleFinance, "salary_component", "read"},
	{RoleFinance, "employee", "read"},
	{RoleFinance, "employee_salary", "read"},
	{RoleFinance, "attendance", "read"},

	{RoleViewer, "*", "read"},
}

// Resources and Actions enumerate what Permissions reports on.
var (
	Resources = []string{"employee", "employee_salary", "attendance", "salary_component", "retro", "payslip", "payroll", "tax"}
	Actions   = []string{"read", "create", "update", "delete", "approve", "process", "rollback"}
)
