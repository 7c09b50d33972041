package payslip

import (
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	payslips := r.Group("/payslips")
	{
		payslips.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payslip", "read"),
			handler.GetAll,
		)
		payslips.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payslip", "read"),
			handler.GetByID,
		)
		payslips.POST("/:id/tax-comparison",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "tax", "read"),
			handler.TaxComparison,
		)
		payslips.PUT("/:id/paid",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payslip", "update"),
			handler.MarkPaid,
		)
	}
}
