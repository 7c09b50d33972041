package attendance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/attendance"
	attendanceerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/attendance/errors"
	attendanceMock "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/attendance/mock"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/employee"
	employeeMock "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/employee/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock   sqlmock.Sqlmock
	repo      *attendanceMock.MockRepository
	employees *employeeMock.MockRepository
	service   attendance.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := attendanceMock.NewMockRepository(ctrl)
	employees := employeeMock.NewMockRepository(ctrl)

	return &serviceDeps{
		sqlMock:   sqlMock,
		repo:      repo,
		employees: employees,
		service:   attendance.NewService(db, repo, employees),
	}
}

func TestService_Record(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()
	empID := uuid.New().String()
	actorID := uuid.New().String()

	t.Run("upserts the day status", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.employees.EXPECT().WithTx(gomock.Any()).Return(deps.employees)
		deps.employees.EXPECT().FindByIDAndOrganization(ctx, orgID, empID).
			Return(&employee.Employee{ID: uuid.MustParse(empID)}, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		storedID := uuid.New()
		deps.repo.EXPECT().Upsert(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, a *attendance.Attendance) error {
				assert.Equal(t, attendance.StatusAbsent, a.Status)
				assert.Equal(t, "MANUAL", a.Source)
				assert.Equal(t, "2024-03-05", a.AttendanceDate.Format("2006-01-02"))
				return nil
			})
		deps.repo.EXPECT().FindByEmployeeAndDate(ctx, orgID, empID, gomock.Any()).Return(&attendance.Attendance{
			ID:             storedID,
			OrganizationID: uuid.MustParse(orgID),
			EmployeeID:     uuid.MustParse(empID),
			AttendanceDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			Status:         attendance.StatusAbsent,
			Source:         "MANUAL",
		}, nil)
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Record(ctx, orgID, actorID, attendance.RecordAttendanceRequest{
			EmployeeID: empID,
			Date:       "2024-03-05",
			Status:     "ABSENT",
		})

		assert.NoError(t, err)
		assert.Equal(t, storedID.String(), resp.ID)
		assert.Equal(t, "ABSENT", resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid date", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Record(ctx, orgID, actorID, attendance.RecordAttendanceRequest{
			EmployeeID: empID,
			Date:       "05/03/2024",
			Status:     "ABSENT",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.employees.EXPECT().WithTx(gomock.Any()).Return(deps.employees)
		deps.employees.EXPECT().FindByIDAndOrganization(ctx, orgID, empID).Return(nil, gorm.ErrRecordNotFound)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Record(ctx, orgID, actorID, attendance.RecordAttendanceRequest{
			EmployeeID: empID,
			Date:       "2024-03-05",
			Status:     "PRESENT",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestService_GetAll(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()

	t.Run("passes the parsed range", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAllByOrganization(ctx, orgID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, f attendance.ListFilter) ([]attendance.Attendance, error) {
				assert.Equal(t, "2024-03-01", f.From.Format("2006-01-02"))
				assert.Equal(t, "2024-03-31", f.To.Format("2006-01-02"))
				return []attendance.Attendance{{ID: uuid.New(), Status: attendance.StatusLeave}}, nil
			})

		resp, err := deps.service.GetAll(ctx, orgID, attendance.ListAttendanceQuery{From: "2024-03-01", To: "2024-03-31"})

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "LEAVE", resp[0].Status)
	})

	t.Run("reversed range", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetAll(ctx, orgID, attendance.ListAttendanceQuery{From: "2024-03-31", To: "2024-03-01"})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateRange)
	})
}

func TestService_LOPSummary(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()
	empID := uuid.New().String()

	t.Run("counts absent and leave days in the month", func(t *testing.T) {
		deps := setupServiceTest(t)
		from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
		deps.repo.EXPECT().CountByStatus(ctx, orgID, empID, from, to, attendance.LOPStatuses).Return(3, nil)

		resp, err := deps.service.LOPSummary(ctx, orgID, empID, 2, 2024)

		assert.NoError(t, err)
		assert.Equal(t, 29, resp.WorkingDays)
		assert.Equal(t, 3, resp.LOPDays)
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().CountByStatus(ctx, orgID, empID, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(0, errors.New("db down"))

		_, err := deps.service.LOPSummary(ctx, orgID, empID, 2, 2024)

		assert.EqualError(t, err, "db down")
	})
}
