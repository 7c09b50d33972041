package attendance

import (
	"net/http"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/middleware"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/apperror"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, err.Error())
}

func (h *Handler) Record(c *gin.Context) {
	var req RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Record(c.Request.Context(), middleware.OrganizationID(c), middleware.ActorID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	var query ListAttendanceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), middleware.OrganizationID(c), query)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, meta)
}

func (h *Handler) LOPSummary(c *gin.Context) {
	var query LOPSummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.LOPSummary(
		c.Request.Context(),
		middleware.OrganizationID(c),
		c.Param("employee_id"),
		query.Month,
		query.Year,
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
