package domain

// EnforceRequest is one authorization question: may this role act on a resource
// inside the given organization.
type EnforceRequest struct {
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id" binding:"required"`
	Role           string `json:"role" binding:"required"`
	Resource       string `json:"resource" binding:"required"`
	Action         string `json:"action" binding:"required"`
}
