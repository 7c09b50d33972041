package payroll

import (
	"net/http"
	"strconv"

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
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payroll request failed",
		zap.String("method", c.Request.Method),
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

// asyncRequested reads ?async=true. Anything unparsable means synchronous.
func asyncRequested(c *gin.Context) bool {
	async, _ := strconv.ParseBool(c.Query("async"))
	return async
}

func processStatus(resp PayrollRunResponse) int {
	if resp.Queued {
		return http.StatusAccepted
	}
	return http.StatusOK
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePayrollRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), middleware.OrganizationID(c), middleware.ActorID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	var query ListPayrollRunQuery
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

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), middleware.OrganizationID(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdatePayrollRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), middleware.OrganizationID(c), middleware.ActorID(c), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), middleware.OrganizationID(c), middleware.ActorID(c), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Process(c *gin.Context) {
	resp, err := h.service.Process(
		c.Request.Context(),
		middleware.OrganizationID(c),
		middleware.ActorID(c),
		c.Param("id"),
		asyncRequested(c),
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, processStatus(resp), resp, nil)
}

func (h *Handler) ProcessPeriod(c *gin.Context) {
	var req ProcessPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.ProcessPeriod(
		c.Request.Context(),
		middleware.OrganizationID(c),
		middleware.ActorID(c),
		req,
		asyncRequested(c),
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, processStatus(resp), resp, nil)
}

func (h *Handler) Rollback(c *gin.Context) {
	if err := h.service.Rollback(c.Request.Context(), middleware.OrganizationID(c), middleware.ActorID(c), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rolled_back": true}, nil)
}
