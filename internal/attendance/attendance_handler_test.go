package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/attendance"
	attendanceerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/attendance/errors"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	recordFn     func(ctx context.Context, organizationID, actorID string, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error)
	getAllFn     func(ctx context.Context, organizationID string, query attendance.ListAttendanceQuery) ([]attendance.AttendanceResponse, error)
	lopSummaryFn func(ctx context.Context, organizationID, employeeID string, month, year int) (attendance.LOPSummaryResponse, error)
}

func (f *fakeService) Record(ctx context.Context, organizationID, actorID string, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error) {
	return f.recordFn(ctx, organizationID, actorID, req)
}

func (f *fakeService) GetAll(ctx context.Context, organizationID string, query attendance.ListAttendanceQuery) ([]attendance.AttendanceResponse, error) {
	return f.getAllFn(ctx, organizationID, query)
}

func (f *fakeService) LOPSummary(ctx context.Context, organizationID, employeeID string, month, year int) (attendance.LOPSummaryResponse, error) {
	return f.lopSummaryFn(ctx, organizationID, employeeID, month, year)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextOrganizationID, "org-1")
	c.Set(middleware.ContextUserID, "user-1")
	return c, w
}

func TestHandler_Record(t *testing.T) {
	const empID = "6f1c9d1e-2f4b-4b7a-9a59-3d2f0c1b7e11"

	t.Run("success", func(t *testing.T) {
		h := attendance.NewHandler(&fakeService{
			recordFn: func(ctx context.Context, organizationID, actorID string, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error) {
				assert.Equal(t, "org-1", organizationID)
				assert.Equal(t, "user-1", actorID)
				return attendance.AttendanceResponse{ID: "att-1", EmployeeID: req.EmployeeID, Status: req.Status}, nil
			},
		})
		c, w := newTestContext(http.MethodPut, "/attendances",
			`{"employee_id":"`+empID+`","date":"2024-03-05","status":"LEAVE"}`)

		h.Record(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"LEAVE"`)
	})

	t.Run("unknown status", func(t *testing.T) {
		h := attendance.NewHandler(&fakeService{})
		c, w := newTestContext(http.MethodPut, "/attendances",
			`{"employee_id":"`+empID+`","date":"2024-03-05","status":"LATE"}`)

		h.Record(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("employee not found", func(t *testing.T) {
		h := attendance.NewHandler(&fakeService{
			recordFn: func(ctx context.Context, organizationID, actorID string, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
			},
		})
		c, w := newTestContext(http.MethodPut, "/attendances",
			`{"employee_id":"`+empID+`","date":"2024-03-05","status":"ABSENT"}`)

		h.Record(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_GetAll(t *testing.T) {
	h := attendance.NewHandler(&fakeService{
		getAllFn: func(ctx context.Context, organizationID string, query attendance.ListAttendanceQuery) ([]attendance.AttendanceResponse, error) {
			assert.Equal(t, "2024-03-01", query.From)
			return []attendance.AttendanceResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
		},
	})
	c, w := newTestContext(http.MethodGet, "/attendances?from=2024-03-01&page=1&page_size=2", "")

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":3`)
	assert.Contains(t, w.Body.String(), `"totalPages":2`)
}

func TestHandler_LOPSummary(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := attendance.NewHandler(&fakeService{
			lopSummaryFn: func(ctx context.Context, organizationID, employeeID string, month, year int) (attendance.LOPSummaryResponse, error) {
				assert.Equal(t, "emp-1", employeeID)
				return attendance.LOPSummaryResponse{EmployeeID: employeeID, Month: month, Year: year, WorkingDays: 31, LOPDays: 2}, nil
			},
		})
		c, w := newTestContext(http.MethodGet, "/attendances/employees/emp-1/lop?month=3&year=2024", "")
		c.Params = gin.Params{{Key: "employee_id", Value: "emp-1"}}

		h.LOPSummary(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"lop_days":2`)
	})

	t.Run("month out of range", func(t *testing.T) {
		h := attendance.NewHandler(&fakeService{})
		c, w := newTestContext(http.MethodGet, "/attendances/employees/emp-1/lop?month=13&year=2024", "")
		c.Params = gin.Params{{Key: "employee_id", Value: "emp-1"}}

		h.LOPSummary(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
