package retro

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/activitylog"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/employee"
	retroerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/retro/errors"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=retro_service.go -destination=mock/retro_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID, actorID string, req CreateRetroAdjustmentRequest) (RetroAdjustmentResponse, error)
	GetAll(ctx context.Context, organizationID string, query ListRetroAdjustmentQuery) ([]RetroAdjustmentResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (RetroAdjustmentResponse, error)
	Cancel(ctx context.Context, organizationID, actorID, id string) error
}

type service struct {
	repo      Repository
	employees employee.Repository
	activity  activitylog.Sink
	logger    *zap.Logger
}

func NewService(repo Repository, employees employee.Repository, activity activitylog.Sink, logger ...*zap.Logger) Service {
	l := zap.L().Named("retro.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("retro.service")
	}
	if activity == nil {
		activity = activitylog.NewNopSink()
	}
	return &service{repo: repo, employees: employees, activity: activity, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	organizationID, actorID string,
	req CreateRetroAdjustmentRequest,
) (RetroAdjustmentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return RetroAdjustmentResponse{}, retroerrors.ErrInvalidOrganizationID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RetroAdjustmentResponse{}, retroerrors.ErrInvalidActorID
	}

	empl, err := s.employees.FindByIDAndOrganization(ctx, organizationID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RetroAdjustmentResponse{}, retroerrors.ErrEmployeeNotFound
		}
		log.Error("create retro adjustment load employee failed", zap.Error(err))
		return RetroAdjustmentResponse{}, err
	}

	category := Category(req.Category)
	if category == "" {
		category = CategoryRetro
	}
	now := time.Now().UTC()
	adj := &RetroAdjustment{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		EmployeeID:     empl.ID,
		ComponentName:  strings.TrimSpace(req.ComponentName),
		Kind:           salary.ComponentKind(req.Kind),
		Amount:         req.Amount,
		Reason:         strings.TrimSpace(req.Reason),
		Category:       category,
		Status:         StatusPending,
		TargetMonth:    req.TargetMonth,
		TargetYear:     req.TargetYear,
		CreatedBy:      actorUUID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, adj); err != nil {
		log.Error("create retro adjustment persist failed", zap.Error(err))
		return RetroAdjustmentResponse{}, mapRepositoryError(err)
	}
	adj.Employee = &EmployeeRef{ID: empl.ID, FullName: empl.FullName}

	s.activity.Record(ctx, activitylog.Entry{
		OrganizationID: organizationID,
		ActorID:        actorID,
		Action:         "retro_adjustment.created",
		EntityType:     "retro_adjustment",
		EntityID:       adj.ID.String(),
		Message: fmt.Sprintf("%s %s of %d for %s targeting %02d/%d",
			strings.ToLower(string(adj.Category)), strings.ToLower(string(adj.Kind)),
			adj.Amount, empl.FullName, adj.TargetMonth, adj.TargetYear),
	})
	log.Info("create retro adjustment success", zap.String("retro_adjustment_id", adj.ID.String()))

	return mapToResponse(*adj), nil
}

func (s *service) GetAll(ctx context.Context, organizationID string, query ListRetroAdjustmentQuery) ([]RetroAdjustmentResponse, error) {
	adjs, err := s.repo.FindAllByOrganization(ctx, organizationID, ListFilter{
		EmployeeID: query.EmployeeID,
		Status:     Status(query.Status),
	})
	if err != nil {
		s.logger.Error("get all retro adjustments failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]RetroAdjustmentResponse, len(adjs))
	for i, a := range adjs {
		res[i] = mapToResponse(a)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (RetroAdjustmentResponse, error) {
	adj, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return RetroAdjustmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*adj), nil
}

func (s *service) Cancel(ctx context.Context, organizationID, actorID, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return retroerrors.ErrInvalidActorID
	}

	adj, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if adj.Status != StatusPending {
		return retroerrors.ErrRetroAdjustmentNotPending
	}

	if err := s.repo.Cancel(ctx, organizationID, id, actorUUID); err != nil {
		log.Warn("cancel retro adjustment failed", zap.String("retro_adjustment_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.activity.Record(ctx, activitylog.Entry{
		OrganizationID: organizationID,
		ActorID:        actorID,
		Action:         "retro_adjustment.cancelled",
		EntityType:     "retro_adjustment",
		EntityID:       id,
		Message:        "retro adjustment " + adj.ComponentName + " cancelled",
	})
	log.Info("cancel retro adjustment success", zap.String("retro_adjustment_id", id))
	return nil
}

func mapToResponse(a RetroAdjustment) RetroAdjustmentResponse {
	resp := RetroAdjustmentResponse{
		ID:             a.ID.String(),
		OrganizationID: a.OrganizationID.String(),
		EmployeeID:     a.EmployeeID.String(),
		ComponentName:  a.ComponentName,
		Kind:           string(a.Kind),
		Amount:         a.Amount,
		Reason:         a.Reason,
		Category:       string(a.Category),
		Status:         string(a.Status),
		TargetMonth:    a.TargetMonth,
		TargetYear:     a.TargetYear,
		AppliedMonth:   a.AppliedMonth,
		AppliedYear:    a.AppliedYear,
		CreatedBy:      a.CreatedBy.String(),
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
	}
	return resp
}
