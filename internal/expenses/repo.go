package expenses

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *Repository) filtered(ctx context.Context, filter ListFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Expense{})
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ExpenseType != "" {
		query = query.Where("expense_type = ?", filter.ExpenseType)
	}
	if filter.From != nil {
		query = query.Where("expense_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("expense_date <= ?", *filter.To)
	}
	return query
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Expense, int64, error) {
	query := r.filtered(ctx, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := filter.Pagination.Normalize()
	var expenses []models.Expense
	err := query.Order("expense_date DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&expenses).Error
	return expenses, total, err
}

// ListMatched returns every expense the filter matches without paging, for
// summary and statistics aggregation.
func (r *Repository) ListMatched(ctx context.Context, filter ListFilter) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.filtered(ctx, filter).Find(&expenses).Error
	return expenses, err
}

func (r *Repository) Updates(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Expense{}, "id = ?", id)
	return result.RowsAffected, result.Error
}
