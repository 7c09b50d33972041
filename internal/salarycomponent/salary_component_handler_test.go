package salarycomponent_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/middleware"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salarycomponent"
	salarycomponenterrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salarycomponent/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeSalaryComponentService struct {
	CreateFn  func(ctx context.Context, organizationID, actorID string, req salarycomponent.UpsertSalaryComponentRequest) (salarycomponent.SalaryComponentResponse, error)
	GetAllFn  func(ctx context.Context, organizationID string) ([]salarycomponent.SalaryComponentResponse, error)
	GetByIDFn func(ctx context.Context, organizationID, id string) (salarycomponent.SalaryComponentResponse, error)
	UpdateFn  func(ctx context.Context, organizationID, actorID, id string, req salarycomponent.UpsertSalaryComponentRequest) (salarycomponent.SalaryComponentResponse, error)
	DeleteFn  func(ctx context.Context, organizationID, actorID, id string) error
}

func (f *fakeSalaryComponentService) Create(ctx context.Context, organizationID, actorID string, req salarycomponent.UpsertSalaryComponentRequest) (salarycomponent.SalaryComponentResponse, error) {
	return f.CreateFn(ctx, organizationID, actorID, req)
}
func (f *fakeSalaryComponentService) GetAll(ctx context.Context, organizationID string) ([]salarycomponent.SalaryComponentResponse, error) {
	return f.GetAllFn(ctx, organizationID)
}
func (f *fakeSalaryComponentService) GetByID(ctx context.Context, organizationID, id string) (salarycomponent.SalaryComponentResponse, error) {
	return f.GetByIDFn(ctx, organizationID, id)
}
func (f *fakeSalaryComponentService) Update(ctx context.Context, organizationID, actorID, id string, req salarycomponent.UpsertSalaryComponentRequest) (salarycomponent.SalaryComponentResponse, error) {
	return f.UpdateFn(ctx, organizationID, actorID, id, req)
}
func (f *fakeSalaryComponentService) Delete(ctx context.Context, organizationID, actorID, id string) error {
	return f.DeleteFn(ctx, organizationID, actorID, id)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextOrganizationID, "org-1")
	c.Set(middleware.ContextUserID, "user-1")
	return c, w
}

func TestSalaryComponentHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeSalaryComponentService{
			CreateFn: func(ctx context.Context, organizationID, actorID string, req salarycomponent.UpsertSalaryComponentRequest) (salarycomponent.SalaryComponentResponse, error) {
				assert.Equal(t, "org-1", organizationID)
				assert.Equal(t, "user-1", actorID)
				return salarycomponent.SalaryComponentResponse{ID: "sc-1", Name: req.Name, Kind: req.Kind}, nil
			},
		}
		h := salarycomponent.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/api/v1/salary-components",
			`{"name":"HRA","kind":"EARNING","calculation_mode":"PERCENTAGE","default_value":40}`)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"HRA"`)
	})

	t.Run("validation error", func(t *testing.T) {
		h := salarycomponent.NewHandler(&fakeSalaryComponentService{})
		c, w := newTestContext(http.MethodPost, "/api/v1/salary-components", `{"name":"HRA","kind":"BONUS"}`)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conflict from service", func(t *testing.T) {
		svc := &fakeSalaryComponentService{
			CreateFn: func(ctx context.Context, organizationID, actorID string, req salarycomponent.UpsertSalaryComponentRequest) (salarycomponent.SalaryComponentResponse, error) {
				return salarycomponent.SalaryComponentResponse{}, salarycomponenterrors.ErrSalaryComponentAlreadyExists
			},
		}
		h := salarycomponent.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/api/v1/salary-components",
			`{"name":"HRA","kind":"EARNING","calculation_mode":"FIXED","default_value":100}`)

		h.Create(c)

		assert.Equal(t, salarycomponenterrors.ErrSalaryComponentAlreadyExists.HTTPStatus, w.Code)
	})
}

func TestSalaryComponentHandler_GetAll_FiltersByKind(t *testing.T) {
	svc := &fakeSalaryComponentService{
		GetAllFn: func(ctx context.Context, organizationID string) ([]salarycomponent.SalaryComponentResponse, error) {
			return []salarycomponent.SalaryComponentResponse{
				{ID: "1", Name: "HRA", Kind: "EARNING"},
				{ID: "2", Name: "Canteen", Kind: "DEDUCTION"},
			}, nil
		},
	}
	h := salarycomponent.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/api/v1/salary-components?kind=DEDUCTION", "")

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Canteen")
	assert.NotContains(t, w.Body.String(), "HRA")
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestSalaryComponentHandler_Delete_NotFound(t *testing.T) {
	svc := &fakeSalaryComponentService{
		DeleteFn: func(ctx context.Context, organizationID, actorID, id string) error {
			assert.Equal(t, "sc-9", id)
			return salarycomponenterrors.ErrSalaryComponentNotFound
		},
	}
	h := salarycomponent.NewHandler(svc)
	c, w := newTestContext(http.MethodDelete, "/api/v1/salary-components/sc-9", "")
	c.Params = gin.Params{{Key: "id", Value: "sc-9"}}

	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
