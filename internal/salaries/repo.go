package salaries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert writes the salary row for an employee, replacing the existing
// structure when one is already on file. The conflict target is the
// unique employee_id index so concurrent saves cannot create duplicates.
func (r *Repository) Upsert(ctx context.Context, record *models.SalaryInformation) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "employee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"basic_salary", "hra", "travel_allowance", "daily_allowance",
			"medical_allowance", "special_allowance", "other_allowances",
			"provident_fund", "professional_tax", "income_tax", "other_deductions",
			"effective_from", "effective_to", "currency", "payment_frequency",
			"bank_name", "account_number", "ifsc_code", "pan_number",
			"remarks", "is_active", "updated_at",
		}),
	}).Create(record).Error
}

func (r *Repository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) (*models.SalaryInformation, error) {
	var record models.SalaryInformation
	if err := r.db.WithContext(ctx).First(&record, "employee_id = ?", employeeID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.SalaryInformation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SalaryInformation{})
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.PaymentFrequency != "" {
		query = query.Where("payment_frequency = ?", filter.PaymentFrequency)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := filter.Pagination.Normalize()
	var records []models.SalaryInformation
	err := query.Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&records).Error
	return records, total, err
}

func (r *Repository) ListAll(ctx context.Context) ([]models.SalaryInformation, error) {
	var records []models.SalaryInformation
	err := r.db.WithContext(ctx).Find(&records).Error
	return records, err
}

func (r *Repository) DeleteByEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.SalaryInformation{}, "employee_id = ?", employeeID)
	return result.RowsAffected, result.Error
}
