package rbac

import (
	"context"
	"sync"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/domain"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	// Permissions lists the actions a role holds per resource; resources with none are omitted.
	Permissions(organizationID, role string) (map[string][]string, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	loaded   map[string]bool
	mu       sync.Mutex
	logger   *zap.Logger
}

// NewEnforcer builds a casbin enforcer with the role model and default policies.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	for _, p := range defaultPolicies {
		if _, err := e.AddPolicy(p[0], "*", p[1], p[2]); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// NewService wires the enforcer with an optional repository of per-organization grants.
func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		loaded:   make(map[string]bool),
		logger:   l,
	}
}

// loadUnlocked adds an organization's grants once; callers hold s.mu.
func (s *service) loadUnlocked(ctx context.Context, organizationID string) error {
	if s.repo == nil || s.loaded[organizationID] {
		return nil
	}

	grants, err := s.repo.GetRolePermissions(ctx, organizationID)
	if err != nil {
		return err
	}

	for _, g := range grants {
		if _, err := s.enforcer.AddPolicy(g.Role, organizationID, g.Resource, g.Action); err != nil {
			return err
		}
	}
	s.loaded[organizationID] = true
	s.logger.Debug("rbac organization policy loaded",
		zap.String("organization_id", organizationID),
		zap.Int("grants", len(grants)),
	)
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadUnlocked(context.Background(), req.OrganizationID); err != nil {
		s.logger.Error("rbac load policy failed", zap.String("organization_id", req.OrganizationID), zap.Error(err))
		return false, err
	}

	allowed, err := s.enforcer.Enforce(req.Role, req.OrganizationID, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed", zap.Error(err))
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("user_id", req.UserID),
		zap.String("organization_id", req.OrganizationID),
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Permissions(organizationID, role string) (map[string][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadUnlocked(context.Background(), organizationID); err != nil {
		return nil, err
	}

	out := make(map[string][]string)
	for _, resource := range Resources {
		for _, action := range Actions {
			ok, err := s.enforcer.Enforce(role, organizationID, resource, action)
			if err != nil {
				return nil, err
			}
			if ok {
				out[resource] = append(out[resource], action)
			}
		}
	}
	return out, nil
}
