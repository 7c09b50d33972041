package employeesalary

import (
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	salaries := r.Group("/employee-salaries")
	{
		salaries.GET("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "employee_salary", "read"),
			handler.GetAll,
		)
		salaries.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "employee_salary", "read"),
			handler.GetByID,
		)
		salaries.GET("/employees/:employee_id/preview",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "employee_salary", "read"),
			handler.Preview,
		)
		salaries.POST("",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "employee_salary", "create"),
			handler.Assign,
		)
	}
}
