package middleware

import "github.com/gin-gonic/gin"

// Keys set on the gin context by AuthMiddleware.
const (
	ContextUserID         = "user_id"
	ContextOrganizationID = "organization_id"
	ContextRole           = "role"
)

// OrganizationID returns the tenant of the authenticated caller.
func OrganizationID(c *gin.Context) string {
	return c.GetString(ContextOrganizationID)
}

// ActorID returns the authenticated user id.
func ActorID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func Role(c *gin.Context) string {
	return c.GetString(ContextRole)
}
