package rbac

import (
	"net/http"
	"strings"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/domain"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/middleware"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/apperror"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type EnforceRequest struct {
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type PermissionsResponse struct {
	Role        string              `json:"role"`
	Permissions map[string][]string `json:"permissions"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Enforce answers whether the caller's own role may perform an action.
func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, err.Error())
		return
	}

	allowed, err := h.service.Enforce(domain.EnforceRequest{
		UserID:         middleware.ActorID(c),
		OrganizationID: middleware.OrganizationID(c),
		Role:           middleware.Role(c),
		Resource:       strings.TrimSpace(req.Resource),
		Action:         strings.TrimSpace(req.Action),
	})
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed}, nil)
}

// Permissions reports what the caller's role may do in its organization.
func (h *Handler) Permissions(c *gin.Context) {
	perms, err := h.service.Permissions(middleware.OrganizationID(c), middleware.Role(c))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, PermissionsResponse{Role: middleware.Role(c), Permissions: perms}, nil)
}
