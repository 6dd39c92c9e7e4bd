package masters

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
)

// Repository exposes department and functional-role persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a masters repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *Repository) ListFunctionalRoles(ctx context.Context, departmentID *uuid.UUID) ([]models.FunctionalRole, error) {
	query := r.db.WithContext(ctx).Model(&models.FunctionalRole{})
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}
	var roles []models.FunctionalRole
	if err := query.Order("name ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *Repository) FindFunctionalRoleByID(ctx context.Context, id uuid.UUID) (*models.FunctionalRole, error) {
	var role models.FunctionalRole
	if err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *Repository) FindFunctionalRoleByName(ctx context.Context, name string) (*models.FunctionalRole, error) {
	var role models.FunctionalRole
	if err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *Repository) CreateFunctionalRole(ctx context.Context, role *models.FunctionalRole) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *Repository) UpdateFunctionalRole(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.FunctionalRole{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *Repository) DeleteFunctionalRole(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.FunctionalRole{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// CountUsersWithFunctionalRole reports how many users still reference the role.
func (r *Repository) CountUsersWithFunctionalRole(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("functional_role_id = ?", id).
		Count(&count).Error
	return count, err
}
