package employeesalary

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/activitylog"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/employee"
	employeeerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/employee/errors"
	employeesalaryerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/employeesalary/errors"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salarycomponent"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_salary_service.go -destination=mock/employee_salary_service_mock.go -package=mock
type Service interface {
	Assign(ctx context.Context, organizationID, actorID string, req AssignStructureRequest) (EmployeeSalaryResponse, error)
	GetAll(ctx context.Context, organizationID, employeeID string) ([]EmployeeSalaryResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (EmployeeSalaryResponse, error)
	Preview(ctx context.Context, organizationID, employeeID string, req PreviewRequest) (PreviewResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	employees  employee.Repository
	components salarycomponent.Repository
	activity   activitylog.Sink
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	components salarycomponent.Repository,
	activity activitylog.Sink,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employeesalary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeesalary.service")
	}
	if activity == nil {
		activity = activitylog.NewNopSink()
	}
	return &service{
		db:         db,
		repo:       repo,
		employees:  employees,
		components: components,
		activity:   activity,
		logger:     l,
	}
}

// Assign snapshots the chosen master components into a new structure, stores it
// on the employee and records a revision, all in one transaction.
func (s *service) Assign(
	ctx context.Context,
	organizationID, actorID string,
	req AssignStructureRequest,
) (EmployeeSalaryResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidActorID
	}
	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidEffectiveDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("assign structure begin tx failed", zap.Error(err))
		return EmployeeSalaryResponse{}, err
	}
	defer tx.Rollback()

	empRepo := s.employees.WithTx(tx)
	empl, err := empRepo.FindByIDAndOrganization(ctx, organizationID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeSalaryResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeSalaryResponse{}, err
	}

	structure, err := s.buildStructure(ctx, tx, organizationID, req)
	if err != nil {
		log.Warn("assign structure rejected", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return EmployeeSalaryResponse{}, err
	}

	if err := empRepo.UpdateStructure(ctx, organizationID, req.EmployeeID, structure); err != nil {
		log.Error("assign structure update employee failed", zap.Error(err))
		return EmployeeSalaryResponse{}, err
	}

	revision := &EmployeeSalary{
		ID:             uuid.New(),
		OrganizationID: empl.OrganizationID,
		EmployeeID:     empl.ID,
		EmployeeName:   empl.FullName,
		SalaryType:     structure.SalaryType,
		BasicSalary:    structure.BasicSalary,
		NetSalary:      structure.NetSalary,
		Structure:      *structure,
		EffectiveDate:  effectiveDate,
		CreatedBy:      actorUUID,
	}
	if err := s.repo.WithTx(tx).Create(ctx, revision); err != nil {
		log.Error("assign structure persist revision failed", zap.Error(err))
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("assign structure commit failed", zap.Error(err))
		return EmployeeSalaryResponse{}, err
	}

	s.activity.Record(ctx, activitylog.Entry{
		OrganizationID: organizationID,
		ActorID:        actorID,
		Action:         "employee_salary.assigned",
		EntityType:     "employee",
		EntityID:       req.EmployeeID,
		Message:        "salary structure assigned to " + empl.FullName,
		Meta: map[string]any{
			"effective_date": req.EffectiveDate,
			"net_salary":     structure.NetSalary,
		},
	})
	log.Info("assign structure success",
		zap.String("employee_id", req.EmployeeID),
		zap.Int64("net_salary", structure.NetSalary),
	)

	return mapToResponse(*revision), nil
}

func (s *service) buildStructure(
	ctx context.Context,
	tx *sql.Tx,
	organizationID string,
	req AssignStructureRequest,
) (*salary.Structure, error) {
	ids := make([]string, len(req.Components))
	for i, c := range req.Components {
		ids[i] = c.ComponentID
	}

	byID := make(map[string]salarycomponent.SalaryComponent, len(ids))
	if len(ids) > 0 {
		found, err := s.components.WithTx(tx).FindByIDs(ctx, organizationID, ids)
		if err != nil {
			return nil, err
		}
		for _, c := range found {
			byID[c.ID.String()] = c
		}
	}

	structure := &salary.Structure{
		SalaryType:  salary.SalaryType(req.SalaryType),
		BasicSalary: req.BasicSalary,
	}
	for _, a := range req.Components {
		component, ok := byID[a.ComponentID]
		if !ok {
			return nil, employeesalaryerrors.ErrComponentNotFound
		}
		if !component.Enabled {
			return nil, employeesalaryerrors.ErrComponentDisabled
		}

		line := component.ToLine()
		if a.Value != nil {
			switch line.Mode {
			case salary.ModePercentage:
				line.Percentage = *a.Value
			case salary.ModeFixed:
				line.FixedAmount = *a.Value
			}
		}

		if line.Kind == salary.KindEarning {
			structure.Earnings = append(structure.Earnings, line)
		} else {
			structure.Deductions = append(structure.Deductions, line)
		}
	}

	if err := structure.Validate(); err != nil {
		return nil, err
	}
	structure.RecomputeTotals()
	return structure, nil
}

func (s *service) GetAll(ctx context.Context, organizationID, employeeID string) ([]EmployeeSalaryResponse, error) {
	revisions, err := s.repo.FindAllByOrganization(ctx, organizationID, employeeID)
	if err != nil {
		s.logger.Error("get all salary revisions failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(revisions), nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (EmployeeSalaryResponse, error) {
	revision, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*revision), nil
}

// Preview resolves the employee's current structure for a month without persisting anything.
func (s *service) Preview(
	ctx context.Context,
	organizationID, employeeID string,
	req PreviewRequest,
) (PreviewResponse, error) {
	if req.Month < 1 || req.Month > 12 || req.Year <= 0 {
		return PreviewResponse{}, employeesalaryerrors.ErrInvalidPreviewPeriod
	}

	empl, err := s.employees.FindByIDAndOrganization(ctx, organizationID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PreviewResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return PreviewResponse{}, err
	}

	res, err := salary.Resolve(empl.PayslipStructure, salary.Period{
		Month:       req.Month,
		Year:        req.Year,
		WorkingDays: salary.DaysInMonth(req.Year, req.Month),
		LOPDays:     req.LOPDays,
		Profile:     empl.Profile(),
	})
	if err != nil {
		return PreviewResponse{}, err
	}

	return PreviewResponse{
		EmployeeID:      employeeID,
		Month:           req.Month,
		Year:            req.Year,
		SalaryType:      string(res.SalaryType),
		DeclaredBasic:   res.DeclaredBasic,
		ResolvedBasic:   res.ResolvedBasic,
		WorkingDays:     res.WorkingDays,
		PayableDays:     res.PayableDays,
		LOPDays:         res.LOPDays,
		Earnings:        res.Earnings,
		Deductions:      res.Deductions,
		Gross:           res.Gross,
		TotalDeductions: res.TotalDeductions,
		Net:             res.Net,
		EmployerPF:      res.EmployerPF,
		EmployerESIC:    res.EmployerESIC,
	}, nil
}

func mapToResponse(revision EmployeeSalary) EmployeeSalaryResponse {
	resp := EmployeeSalaryResponse{
		ID:            revision.ID.String(),
		EmployeeID:    revision.EmployeeID.String(),
		EmployeeName:  revision.EmployeeName,
		SalaryType:    string(revision.SalaryType),
		BasicSalary:   revision.BasicSalary,
		NetSalary:     revision.NetSalary,
		Structure:     revision.Structure,
		EffectiveDate: revision.EffectiveDate.Format("2006-01-02"),
	}
	if revision.CreatedBy != uuid.Nil {
		resp.CreatedBy = revision.CreatedBy.String()
	}
	return resp
}

func mapToListResponse(revisions []EmployeeSalary) []EmployeeSalaryResponse {
	res := make([]EmployeeSalaryResponse, len(revisions))
	for i, r := range revisions {
		res[i] = mapToResponse(r)
	}
	return res
}
