package attendance

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	attendanceerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/attendance/errors"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/employee"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, organizationID, actorID string, req RecordAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, organizationID string, query ListAttendanceQuery) ([]AttendanceResponse, error)
	LOPSummary(ctx context.Context, organizationID, employeeID string, month, year int) (LOPSummaryResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, employees: employees, logger: l}
}

func (s *service) Record(
	ctx context.Context,
	organizationID, actorID string,
	req RecordAttendanceRequest,
) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	day, err := time.Parse(dateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}
	actorUUID, _ := uuid.Parse(actorID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("record attendance begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	if _, err := s.employees.WithTx(tx).FindByIDAndOrganization(ctx, organizationID, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
		}
		log.Error("record attendance load employee failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = "MANUAL"
	}
	now := time.Now().UTC()
	row := &Attendance{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		EmployeeID:     employeeUUID,
		AttendanceDate: day,
		Status:         Status(req.Status),
		Source:         source,
		Notes:          req.Notes,
		RecordedBy:     actorUUID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.Upsert(ctx, row); err != nil {
		log.Error("record attendance upsert failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	// The upsert may have hit an existing row; read back the stored id.
	stored, err := qtx.FindByEmployeeAndDate(ctx, organizationID, req.EmployeeID, day)
	if err != nil {
		log.Error("record attendance reload failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("record attendance commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	log.Info("record attendance success",
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("status", req.Status),
	)
	return mapToResponse(*stored), nil
}

func (s *service) GetAll(ctx context.Context, organizationID string, query ListAttendanceQuery) ([]AttendanceResponse, error) {
	filter := ListFilter{EmployeeID: query.EmployeeID}
	if query.From != "" {
		from, err := time.Parse(dateLayout, query.From)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDate
		}
		filter.From = &from
	}
	if query.To != "" {
		to, err := time.Parse(dateLayout, query.To)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDate
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, attendanceerrors.ErrInvalidDateRange
	}

	rows, err := s.repo.FindAllByOrganization(ctx, organizationID, filter)
	if err != nil {
		s.logger.Error("get all attendances failed", zap.Error(err))
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

// LOPSummary reports the loss-of-pay days the payroll processor would count for the period.
func (s *service) LOPSummary(ctx context.Context, organizationID, employeeID string, month, year int) (LOPSummaryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return LOPSummaryResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	from, to := salary.PeriodBounds(year, month)
	lop, err := s.repo.CountByStatus(ctx, organizationID, employeeID, from, to, LOPStatuses)
	if err != nil {
		s.logger.Error("count lop days failed", zap.String("employee_id", employeeID), zap.Error(err))
		return LOPSummaryResponse{}, err
	}

	return LOPSummaryResponse{
		EmployeeID:  employeeID,
		Month:       month,
		Year:        year,
		WorkingDays: salary.DaysInMonth(year, month),
		LOPDays:     lop,
	}, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		OrganizationID: a.OrganizationID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format(dateLayout),
		Status:         string(a.Status),
		Source:         a.Source,
		Notes:          a.Notes,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
	}
	return resp
}
