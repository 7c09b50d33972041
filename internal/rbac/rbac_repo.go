package rbac

import (
	"context"

	"gorm.io/gorm"
)

// RolePermission grants an extra resource/action to a role inside one organization.
type RolePermission struct {
	OrganizationID string `gorm:"type:uuid;primaryKey"`
	Role           string `gorm:"primaryKey"`
	Resource       string `gorm:"primaryKey"`
	Action         string `gorm:"primaryKey"`
}

func (RolePermission) TableName() string {
	return "organization_role_permissions"
}

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetRolePermissions(ctx context.Context, organizationID string) ([]RolePermission, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetRolePermissions(ctx context.Context, organizationID string) ([]RolePermission, error) {
	var result []RolePermission
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("role, resource, action").
		Find(&result).Error
	return result, err
}
