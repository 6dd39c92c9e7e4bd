package employees

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
)

const salesmanRole = "salesman"

// Repository exposes employee persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an employees repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new employee.
func (r *Repository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID loads an employee by UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByContactNumber retrieves the employee matching the phone number.
func (r *Repository) FindByContactNumber(ctx context.Context, contactNumber string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("contact_number = ?", contactNumber).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail retrieves the employee matching the email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns a filtered page of employees plus the unpaged total.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"lower(name) LIKE ? OR lower(email) LIKE ? OR lower(contact_number) LIKE ? OR lower(coalesce(employee_code, '')) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	params := filter.Pagination.Normalize()
	err := query.
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Updates applies a partial column update to an employee.
func (r *Repository) Updates(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes an employee row. Returns gorm.ErrRecordNotFound semantics via RowsAffected.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// UpdateLastLogin refreshes the employee's last_login timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login", at).Error
}

// ListSalesmen returns active users holding the salesman role either as their
// primary role id or inside the roles array. Matching is case-insensitive.
func (r *Repository) ListSalesmen(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	salesmen := make([]models.User, 0, len(users))
	for _, user := range users {
		if isSalesman(user) {
			salesmen = append(salesmen, user)
		}
	}
	return salesmen, nil
}

func isSalesman(user models.User) bool {
	if user.RoleID != nil && strings.EqualFold(*user.RoleID, salesmanRole) {
		return true
	}
	for _, role := range user.Roles {
		if strings.EqualFold(role, salesmanRole) {
			return true
		}
	}
	return false
}
