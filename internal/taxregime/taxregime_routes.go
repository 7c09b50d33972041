package taxregime

import (
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	regimes := r.Group("/tax-regimes")
	{
		regimes.POST("/compare",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "tax", "read"),
			handler.Compare,
		)
	}
}
