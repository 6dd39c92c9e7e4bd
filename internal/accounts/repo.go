package accounts

import (
	"context"
	"strings"
	"time"

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

func (r *Repository) Create(ctx context.Context, account *models.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Account, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Account{})
	if filter.AreaID != nil {
		query = query.Where("area_id = ?", *filter.AreaID)
	}
	if filter.AssignedToID != nil {
		query = query.Where("assigned_to_id = ?", *filter.AssignedToID)
	}
	if filter.CustomerStage != "" {
		query = query.Where("customer_stage = ?", filter.CustomerStage)
	}
	if filter.FunnelStage != "" {
		query = query.Where("funnel_stage = ?", filter.FunnelStage)
	}
	if filter.Search != "" {
		needle := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"lower(person_name) LIKE ? OR lower(account_code) LIKE ? OR contact_number LIKE ?",
			needle, needle, "%"+filter.Search+"%",
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := filter.Pagination.Normalize()
	var accounts []models.Account
	err := query.Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&accounts).Error
	return accounts, total, err
}

func (r *Repository) Updates(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Account{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// BulkAssign points every listed account at one salesman in a single update.
func (r *Repository) BulkAssign(ctx context.Context, ids []uuid.UUID, assignedTo uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"assigned_to_id": assignedTo,
			"updated_at":     time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Account{}).Count(&count).Error
	return count, err
}

type stageCount struct {
	Stage string
	Count int64
}

func (r *Repository) CountByColumn(ctx context.Context, column string) (map[string]int64, error) {
	var rows []stageCount
	err := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Select(column+" AS stage, count(*) AS count").
		Where(column + " IS NOT NULL").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Stage] = row.Count
	}
	return counts, nil
}

func (r *Repository) Recent(ctx context.Context, limit int) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&accounts).Error
	return accounts, err
}
