package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/connection"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dateLayout = "2006-01-02"

type ListFilter struct {
	EmployeeID string
	From       *time.Time
	To         *time.Time
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, organizationID, employeeID string, date time.Time) (*Attendance, error)
	FindAllByOrganization(ctx context.Context, organizationID string, filter ListFilter) ([]Attendance, error)
	CountByStatus(ctx context.Context, organizationID, employeeID string, from, to time.Time, statuses []Status) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.GormTx(r.db, tx)}
}

// Upsert records the day status; a second record for the same employee and day overwrites it.
func (r *repository) Upsert(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "attendance_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "source", "notes", "recorded_by", "updated_at"}),
		}).
		Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, organizationID, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format(dateLayout)).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string, filter ListFilter) ([]Attendance, error) {
	q := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(organizationID))
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.From != nil {
		q = q.Where("attendance_date >= ?", filter.From.Format(dateLayout))
	}
	if filter.To != nil {
		q = q.Where("attendance_date <= ?", filter.To.Format(dateLayout))
	}

	var rows []Attendance
	err := q.Order("attendance_date DESC").Find(&rows).Error
	return rows, err
}

// CountByStatus counts days in [from, to] inclusive whose status is one of statuses.
func (r *repository) CountByStatus(
	ctx context.Context,
	organizationID, employeeID string,
	from, to time.Time,
	statuses []Status,
) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Scopes(tenant.Scope(organizationID)).
		Where("employee_id = ?", employeeID).
		Where("attendance_date BETWEEN ? AND ?", from.Format(dateLayout), to.Format(dateLayout)).
		Where("status IN ?", statuses).
		Count(&count).Error
	return int(count), err
}
