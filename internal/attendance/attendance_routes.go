package attendance

import (
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	attendances := r.Group("/attendances")
	{
		attendances.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			handler.GetAll,
		)
		attendances.GET("/employees/:employee_id/lop",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			handler.LOPSummary,
		)
		attendances.PUT("",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			handler.Record,
		)
	}
}
