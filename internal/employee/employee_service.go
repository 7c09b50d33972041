package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	employeeerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/employee/errors"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/contextutil"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const EmployeeOptionsKeyPrefix = "employees:options:"

func GetEmployeeOptionsKey(organizationID string) string {
	return EmployeeOptionsKeyPrefix + organizationID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, organizationID string) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, organizationID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, organizationID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(
	ctx context.Context,
	organizationID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidOrganizationID
	}
	joiningDate, err := time.Parse("2006-01-02", req.JoiningDate)
	if err != nil {
		log.Warn("create employee invalid joining_date", zap.String("joining_date", req.JoiningDate))
		return EmployeeResponse{}, employeeerrors.ErrInvalidJoiningDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	if req.EmployeeCode == "" {
		nextVal, err := s.counter.WithTx(tx).GetNextValue(ctx, organizationID, counter.EmployeeCode)
		if err != nil {
			log.Error("create employee generate code failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeCode = fmt.Sprintf("EMP-%06d", nextVal)
	}

	empl := &Employee{
		ID:                  uuid.New(),
		OrganizationID:      orgUUID,
		EmployeeCode:        req.EmployeeCode,
		FullName:            strings.TrimSpace(req.FullName),
		Email:               strings.ToLower(strings.TrimSpace(req.Email)),
		Gender:              req.Gender,
		WorkState:           strings.TrimSpace(req.WorkState),
		Status:              StatusActive,
		JoiningDate:         joiningDate,
		PFApplicable:        boolOr(req.PFApplicable, true),
		PFRestrictToCeiling: boolOr(req.PFRestrictToCeiling, true),
		ESICApplicable:      boolOr(req.ESICApplicable, true),
	}

	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		log.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, organizationID)
	log.Info("create employee success", zap.String("employee_id", empl.ID.String()))

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, organizationID string) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindAllByOrganization(ctx, organizationID)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

// GetOptions lists active employees without their structures, cached per organization.
func (s *service) GetOptions(ctx context.Context, organizationID string) ([]EmployeeResponse, error) {
	cacheKey := GetEmployeeOptionsKey(organizationID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindActiveByOrganization(ctx, organizationID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeResponse, len(empls))
		for i, e := range empls {
			e.PayslipStructure = nil
			resp[i] = mapToResponse(e)
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, time.Hour)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	organizationID, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		log.Warn("update employee fetch existing failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.FullName = strings.TrimSpace(req.FullName)
	empl.Email = strings.ToLower(strings.TrimSpace(req.Email))
	empl.Gender = req.Gender
	empl.WorkState = strings.TrimSpace(req.WorkState)
	empl.Status = Status(req.Status)
	empl.PFApplicable = boolOr(req.PFApplicable, empl.PFApplicable)
	empl.PFRestrictToCeiling = boolOr(req.PFRestrictToCeiling, empl.PFRestrictToCeiling)
	empl.ESICApplicable = boolOr(req.ESICApplicable, empl.ESICApplicable)

	if err := qtx.Update(ctx, empl); err != nil {
		log.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, organizationID)
	log.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) invalidateOptions(ctx context.Context, organizationID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey(organizationID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                  empl.ID.String(),
		OrganizationID:      empl.OrganizationID.String(),
		EmployeeCode:        empl.EmployeeCode,
		FullName:            empl.FullName,
		Email:               empl.Email,
		Gender:              empl.Gender,
		WorkState:           empl.WorkState,
		Status:              string(empl.Status),
		PFApplicable:        empl.PFApplicable,
		PFRestrictToCeiling: empl.PFRestrictToCeiling,
		ESICApplicable:      empl.ESICApplicable,
		PayslipStructure:    empl.PayslipStructure,
	}
	if !empl.JoiningDate.IsZero() {
		resp.JoiningDate = empl.JoiningDate.Format("2006-01-02")
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
