package salarycomponent

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/activitylog"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"
	salarycomponenterrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salarycomponent/errors"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/apperror"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const listKeyPrefix = "salary_components:list:"

func ListCacheKey(organizationID string) string {
	return listKeyPrefix + organizationID
}

//go:generate mockgen -source=salary_component_service.go -destination=mock/salary_component_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID, actorID string, req UpsertSalaryComponentRequest) (SalaryComponentResponse, error)
	GetAll(ctx context.Context, organizationID string) ([]SalaryComponentResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (SalaryComponentResponse, error)
	Update(ctx context.Context, organizationID, actorID, id string, req UpsertSalaryComponentRequest) (SalaryComponentResponse, error)
	Delete(ctx context.Context, organizationID, actorID, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	rdb      *redis.Client
	sf       *singleflight.Group
	activity activitylog.Sink
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, activity activitylog.Sink, logger ...*zap.Logger) Service {
	l := zap.L().Named("salarycomponent.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarycomponent.service")
	}
	if activity == nil {
		activity = activitylog.NewNopSink()
	}
	return &service{
		db:       db,
		repo:     repo,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		activity: activity,
		logger:   l,
	}
}

func (s *service) Create(
	ctx context.Context,
	organizationID, actorID string,
	req UpsertSalaryComponentRequest,
) (SalaryComponentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	orgUUID, actorUUID, err := parseIDs(organizationID, actorID)
	if err != nil {
		return SalaryComponentResponse{}, err
	}

	component := &SalaryComponent{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		CreatedBy:      actorUUID,
		Taxable:        true,
		Enabled:        true,
	}
	if err := applyRequest(component, req); err != nil {
		log.Warn("create salary component rejected", zap.String("name", req.Name), zap.Error(err))
		return SalaryComponentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create salary component begin tx failed", zap.Error(err))
		return SalaryComponentResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, component); err != nil {
		log.Error("create salary component persist failed", zap.Error(err))
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("create salary component commit failed", zap.Error(err))
		return SalaryComponentResponse{}, err
	}

	s.invalidateList(ctx, organizationID)
	s.activity.Record(ctx, activitylog.Entry{
		OrganizationID: organizationID,
		ActorID:        actorID,
		Action:         "salary_component.created",
		EntityType:     "salary_component",
		EntityID:       component.ID.String(),
		Message:        "salary component " + component.Name + " created",
	})
	log.Info("create salary component success", zap.String("salary_component_id", component.ID.String()))

	return mapToResponse(*component), nil
}

func (s *service) GetAll(ctx context.Context, organizationID string) ([]SalaryComponentResponse, error) {
	cacheKey := ListCacheKey(organizationID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []SalaryComponentResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// collapse concurrent cache misses into a single query
	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		components, err := s.repo.FindAllByOrganization(ctx, organizationID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(components)
		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, payload, time.Hour)
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get all salary components failed", zap.String("organization_id", organizationID), zap.Error(err))
		return nil, err
	}

	return v.([]SalaryComponentResponse), nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (SalaryComponentResponse, error) {
	component, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*component), nil
}

func (s *service) Update(
	ctx context.Context,
	organizationID, actorID, id string,
	req UpsertSalaryComponentRequest,
) (SalaryComponentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if _, _, err := parseIDs(organizationID, actorID); err != nil {
		return SalaryComponentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update salary component begin tx failed", zap.Error(err))
		return SalaryComponentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	component, err := qtx.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}

	if err := applyRequest(component, req); err != nil {
		log.Warn("update salary component rejected", zap.String("salary_component_id", id), zap.Error(err))
		return SalaryComponentResponse{}, err
	}

	if err := qtx.Update(ctx, component); err != nil {
		log.Error("update salary component persist failed", zap.Error(err))
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("update salary component commit failed", zap.Error(err))
		return SalaryComponentResponse{}, err
	}

	s.invalidateList(ctx, organizationID)
	s.activity.Record(ctx, activitylog.Entry{
		OrganizationID: organizationID,
		ActorID:        actorID,
		Action:         "salary_component.updated",
		EntityType:     "salary_component",
		EntityID:       id,
		Message:        "salary component " + component.Name + " updated",
	})

	return mapToResponse(*component), nil
}

func (s *service) Delete(ctx context.Context, organizationID, actorID, id string) error {
	if _, _, err := parseIDs(organizationID, actorID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, organizationID, id); err != nil {
		s.logger.Error("delete salary component failed", zap.String("salary_component_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.invalidateList(ctx, organizationID)
	s.activity.Record(ctx, activitylog.Entry{
		OrganizationID: organizationID,
		ActorID:        actorID,
		Action:         "salary_component.deleted",
		EntityType:     "salary_component",
		EntityID:       id,
		Message:        "salary component deleted",
	})
	return nil
}

func (s *service) invalidateList(ctx context.Context, organizationID string) {
	if s.rdb == nil {
		return
	}
	key := ListCacheKey(organizationID)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.logger.Error("failed to invalidate salary component cache", zap.String("key", key), zap.Error(err))
	}
}

func parseIDs(organizationID, actorID string) (uuid.UUID, uuid.UUID, error) {
	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return uuid.Nil, uuid.Nil, salarycomponenterrors.ErrInvalidOrganizationID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, salarycomponenterrors.ErrInvalidActorID
	}
	return orgUUID, actorUUID, nil
}

func applyRequest(c *SalaryComponent, req UpsertSalaryComponentRequest) error {
	c.Name = strings.TrimSpace(req.Name)
	c.Kind = salary.ComponentKind(req.Kind)
	c.CalculationMode = salary.CalculationMode(req.CalculationMode)
	c.BaseReference = salary.BaseReference(req.BaseReference)
	c.DefaultValue = req.DefaultValue
	c.StatutoryCode = salary.StatutoryCode(req.StatutoryCode)
	c.Formula = strings.TrimSpace(req.Formula)
	c.Statutory = c.StatutoryCode != ""
	c.DisplayOrder = req.DisplayOrder
	if req.Taxable != nil {
		c.Taxable = *req.Taxable
	}
	if req.Enabled != nil {
		c.Enabled = *req.Enabled
	}

	if err := c.ToLine().Validate(); err != nil {
		return apperror.WithCause(salarycomponenterrors.ErrInvalidSalaryComponent, err)
	}
	return nil
}

func mapToResponse(c SalaryComponent) SalaryComponentResponse {
	return SalaryComponentResponse{
		ID:              c.ID.String(),
		OrganizationID:  c.OrganizationID.String(),
		Name:            c.Name,
		Kind:            string(c.Kind),
		CalculationMode: string(c.CalculationMode),
		BaseReference:   string(c.BaseReference),
		DefaultValue:    c.DefaultValue,
		StatutoryCode:   string(c.StatutoryCode),
		Formula:         c.Formula,
		Taxable:         c.Taxable,
		Statutory:       c.Statutory,
		Enabled:         c.Enabled,
		DisplayOrder:    c.DisplayOrder,
	}
}

func mapToListResponse(components []SalaryComponent) []SalaryComponentResponse {
	res := make([]SalaryComponentResponse, len(components))
	for i, c := range components {
		res[i] = mapToResponse(c)
	}
	return res
}
