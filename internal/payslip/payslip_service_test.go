package payslip_test

import (
	"context"
	"testing"
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payslip"
	paysliperrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payslip/errors"
	payslipMock "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payslip/mock"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/taxregime"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func setupServiceTest(t *testing.T) (*payslipMock.MockRepository, payslip.Service) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := payslipMock.NewMockRepository(ctrl)
	return repo, payslip.NewService(repo, nil)
}

func TestService_GetAll(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()

	t.Run("filters by period", func(t *testing.T) {
		repo, svc := setupServiceTest(t)
		repo.EXPECT().FindAllByOrganization(ctx, orgID, payslip.ListFilter{Month: 3, Year: 2024}).
			Return([]payslip.Payslip{{
				ID:            uuid.New(),
				PayslipNumber: "PS-000001",
				GrossEarnings: 30000,
				NetSalary:     27000,
				Status:        payslip.StatusDraft,
				Employee:      &payslip.EmployeeRef{EmployeeCode: "EMP-000001", FullName: "Asha Rao"},
			}}, nil)

		resp, err := svc.GetAll(ctx, orgID, payslip.ListPayslipQuery{Month: 3, Year: 2024})

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Asha Rao", resp[0].EmployeeName)
		assert.Equal(t, "DRAFT", resp[0].Status)
	})

	t.Run("month without year", func(t *testing.T) {
		_, svc := setupServiceTest(t)

		_, err := svc.GetAll(ctx, orgID, payslip.ListPayslipQuery{Month: 3})

		assert.ErrorIs(t, err, paysliperrors.ErrInvalidPeriodFilter)
	})
}

func TestService_TaxComparison(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()
	id := uuid.New()

	t.Run("annualizes the monthly gross", func(t *testing.T) {
		repo, svc := setupServiceTest(t)
		repo.EXPECT().FindByIDAndOrganization(ctx, orgID, id.String()).
			Return(&payslip.Payslip{ID: id, PayslipNumber: "PS-000007", GrossEarnings: 100000}, nil)

		ex := taxregime.Exemptions{Section80C: 150000}
		resp, err := svc.TaxComparison(ctx, orgID, id.String(), payslip.TaxComparisonRequest{Exemptions: ex})

		assert.NoError(t, err)
		assert.Equal(t, float64(1200000), resp.AnnualGross)
		assert.Equal(t, taxregime.CompareTaxRegimes(1200000, ex), resp.Comparison)
	})

	t.Run("not found", func(t *testing.T) {
		repo, svc := setupServiceTest(t)
		repo.EXPECT().FindByIDAndOrganization(ctx, orgID, id.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.TaxComparison(ctx, orgID, id.String(), payslip.TaxComparisonRequest{})

		assert.ErrorIs(t, err, paysliperrors.ErrPayslipNotFound)
	})
}

func TestService_MarkPaid(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()
	id := uuid.New()

	t.Run("locked payslip becomes paid", func(t *testing.T) {
		repo, svc := setupServiceTest(t)
		paidAt := time.Now().UTC()
		repo.EXPECT().MarkPaid(ctx, orgID, id.String(), gomock.Any()).Return(nil)
		repo.EXPECT().FindByIDAndOrganization(ctx, orgID, id.String()).
			Return(&payslip.Payslip{ID: id, Status: payslip.StatusPaid, PaidAt: &paidAt}, nil)

		resp, err := svc.MarkPaid(ctx, orgID, uuid.New().String(), id.String())

		assert.NoError(t, err)
		assert.Equal(t, "PAID", resp.Status)
		assert.NotNil(t, resp.PaidAt)
	})

	t.Run("draft payslip is rejected", func(t *testing.T) {
		repo, svc := setupServiceTest(t)
		repo.EXPECT().MarkPaid(ctx, orgID, id.String(), gomock.Any()).Return(paysliperrors.ErrPayslipNotLocked)

		_, err := svc.MarkPaid(ctx, orgID, uuid.New().String(), id.String())

		assert.ErrorIs(t, err, paysliperrors.ErrPayslipNotLocked)
	})
}

func TestPayslip_Apply(t *testing.T) {
	p := payslip.Payslip{PayslipNumber: "PS-000001", Status: payslip.StatusDraft}
	res := salary.Resolution{
		SalaryType:      salary.SalaryTypeMonthly,
		DeclaredBasic:   30000,
		ResolvedBasic:   29032,
		WorkingDays:     31,
		PayableDays:     30,
		LOPDays:         1,
		Gross:           40000,
		TotalDeductions: 3684,
		Net:             36316,
		EmployerPF:      1800,
	}

	p.Apply(res)

	assert.Equal(t, "PS-000001", p.PayslipNumber)
	assert.Equal(t, payslip.StatusDraft, p.Status)
	assert.Equal(t, int64(40000-3684), p.NetSalary)
	assert.Equal(t, 30, p.PresentDays)
	assert.Equal(t, int64(1800), p.EmployerPF)
	assert.False(t, p.Frozen())
}

func TestMapRepositoryError(t *testing.T) {
	assert.ErrorIs(t, payslip.MapRepositoryError(gorm.ErrRecordNotFound), paysliperrors.ErrPayslipNotFound)
	assert.ErrorIs(t,
		payslip.MapRepositoryError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_payslip_employee_period"}),
		paysliperrors.ErrPayslipAlreadyExists,
	)
	assert.Nil(t, payslip.MapRepositoryError(nil))
}
