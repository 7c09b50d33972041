package payroll

import (
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	runs := r.Group("/payroll-runs")
	{
		runs.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetAll,
		)
		runs.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetByID,
		)
		runs.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(redisClient),
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			handler.Create,
		)
		runs.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "update"),
			handler.Update,
		)
		runs.PUT("/:id/status",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "approve"),
			handler.UpdateStatus,
		)
		runs.POST("/process",
			middleware.RateLimitByUser(0.2, 1),
			middleware.Idempotency(redisClient),
			middleware.RBACAuthorize(rbacService, "payroll", "process"),
			handler.ProcessPeriod,
		)
		runs.POST("/:id/process",
			middleware.RateLimitByUser(0.2, 1),
			middleware.Idempotency(redisClient),
			middleware.RBACAuthorize(rbacService, "payroll", "process"),
			handler.Process,
		)
		runs.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "rollback"),
			handler.Rollback,
		)
	}
}
