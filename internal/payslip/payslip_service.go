package payslip

import (
	"context"
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/activitylog"
	paysliperrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payslip/errors"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/contextutil"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/taxregime"

	"go.uber.org/zap"
)

//go:generate mockgen -source=payslip_service.go -destination=mock/payslip_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, organizationID string, query ListPayslipQuery) ([]PayslipResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (PayslipResponse, error)
	TaxComparison(ctx context.Context, organizationID, id string, req TaxComparisonRequest) (TaxComparisonResponse, error)
	MarkPaid(ctx context.Context, organizationID, actorID, id string) (PayslipResponse, error)
}

type service struct {
	repo     Repository
	activity activitylog.Sink
	logger   *zap.Logger
}

func NewService(repo Repository, activity activitylog.Sink, logger ...*zap.Logger) Service {
	l := zap.L().Named("payslip.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.service")
	}
	if activity == nil {
		activity = activitylog.NewNopSink()
	}
	return &service{repo: repo, activity: activity, logger: l}
}

func (s *service) GetAll(ctx context.Context, organizationID string, query ListPayslipQuery) ([]PayslipResponse, error) {
	if (query.Month == 0) != (query.Year == 0) {
		return nil, paysliperrors.ErrInvalidPeriodFilter
	}

	rows, err := s.repo.FindAllByOrganization(ctx, organizationID, ListFilter{
		EmployeeID:   query.EmployeeID,
		PayrollRunID: query.PayrollRunID,
		Month:        query.Month,
		Year:         query.Year,
		Status:       Status(query.Status),
	})
	if err != nil {
		s.logger.Error("get all payslips failed", zap.Error(err))
		return nil, MapRepositoryError(err)
	}

	res := make([]PayslipResponse, len(rows))
	for i, p := range rows {
		res[i] = mapToResponse(p)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (PayslipResponse, error) {
	p, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return PayslipResponse{}, MapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

// TaxComparison projects the payslip's gross over twelve months and compares regimes.
func (s *service) TaxComparison(
	ctx context.Context,
	organizationID, id string,
	req TaxComparisonRequest,
) (TaxComparisonResponse, error) {
	p, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return TaxComparisonResponse{}, MapRepositoryError(err)
	}

	annual := float64(p.GrossEarnings * 12)
	return TaxComparisonResponse{
		PayslipID:     p.ID.String(),
		PayslipNumber: p.PayslipNumber,
		MonthlyGross:  p.GrossEarnings,
		AnnualGross:   annual,
		Comparison:    taxregime.CompareTaxRegimes(annual, req.Exemptions),
	}, nil
}

func (s *service) MarkPaid(ctx context.Context, organizationID, actorID, id string) (PayslipResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if err := s.repo.MarkPaid(ctx, organizationID, id, time.Now().UTC()); err != nil {
		log.Warn("mark payslip paid failed", zap.String("payslip_id", id), zap.Error(err))
		return PayslipResponse{}, MapRepositoryError(err)
	}

	p, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return PayslipResponse{}, MapRepositoryError(err)
	}

	s.activity.Record(ctx, activitylog.Entry{
		OrganizationID: organizationID,
		ActorID:        actorID,
		Action:         "payslip.paid",
		EntityType:     "payslip",
		EntityID:       id,
		Message:        "payslip " + p.PayslipNumber + " marked as paid",
	})
	log.Info("mark payslip paid success", zap.String("payslip_id", id))

	return mapToResponse(*p), nil
}

func mapToResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:              p.ID.String(),
		OrganizationID:  p.OrganizationID.String(),
		EmployeeID:      p.EmployeeID.String(),
		PayslipNumber:   p.PayslipNumber,
		Month:           p.Month,
		Year:            p.Year,
		SalaryType:      string(p.SalaryType),
		BasicSalary:     p.BasicSalary,
		ProratedBasic:   p.ProratedBasic,
		GrossEarnings:   p.GrossEarnings,
		TotalDeductions: p.TotalDeductions,
		NetSalary:       p.NetSalary,
		EmployerPF:      p.EmployerPF,
		EmployerESIC:    p.EmployerESIC,
		Earnings:        p.Earnings,
		Deductions:      p.Deductions,
		WorkingDays:     p.WorkingDays,
		PresentDays:     p.PresentDays,
		LOPDays:         p.LOPDays,
		Status:          string(p.Status),
	}
	if p.PayrollRunID != nil {
		v := p.PayrollRunID.String()
		resp.PayrollRunID = &v
	}
	if p.Employee != nil {
		resp.EmployeeCode = p.Employee.EmployeeCode
		resp.EmployeeName = p.Employee.FullName
	}
	if p.LockedAt != nil {
		v := p.LockedAt.Format(time.RFC3339)
		resp.LockedAt = &v
	}
	if p.PaidAt != nil {
		v := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	return resp
}
