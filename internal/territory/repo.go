package territory

import (
	"context"
	"time"

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

// UpsertAssignment writes the assignment for a (salesman, pincode) pair in a
// single statement. The ON CONFLICT target is the composite unique index, so
// a repeat assignment replaces areas, business types and the cached count
// without a read-then-write window.
func (r *Repository) UpsertAssignment(ctx context.Context, assignment *models.TaskAssignment) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "salesman_id"}, {Name: "pincode"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"salesman_name", "country", "state", "district", "city",
			"areas", "business_types", "total_businesses", "updated_at",
		}),
	}).Create(assignment).Error
}

func (r *Repository) FindAssignment(ctx context.Context, salesmanID uuid.UUID, pincode string) (*models.TaskAssignment, error) {
	var assignment models.TaskAssignment
	err := r.db.WithContext(ctx).
		First(&assignment, "salesman_id = ? AND pincode = ?", salesmanID, pincode).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *Repository) FindAssignmentByID(ctx context.Context, id uuid.UUID) (*models.TaskAssignment, error) {
	var assignment models.TaskAssignment
	if err := r.db.WithContext(ctx).First(&assignment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *Repository) ListAssignmentsBySalesman(ctx context.Context, salesmanID uuid.UUID) ([]models.TaskAssignment, error) {
	var assignments []models.TaskAssignment
	err := r.db.WithContext(ctx).
		Where("salesman_id = ?", salesmanID).
		Order("created_at DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *Repository) UpdateAssignment(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.TaskAssignment{}).
		Where("id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *Repository) DeleteAssignment(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.TaskAssignment{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// SaveShops persists a discovery batch and recomputes the cached business
// counts in one transaction. Shops carrying a provider place id upsert
// through the partial unique index; shops without one always insert fresh.
// The totals written back to task_assignments come from a count over the
// shops table, never from the caller.
func (r *Repository) SaveShops(ctx context.Context, shops []models.Shop) ([]models.Shop, []PincodeCount, error) {
	saved := make([]models.Shop, 0, len(shops))
	var counts []PincodeCount

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range shops {
			shop := shops[i]
			if shop.PlaceID != nil {
				// A nil incoming owner keeps the row's current owner.
				err := tx.Clauses(clause.OnConflict{
					Columns: []clause.Column{{Name: "place_id"}},
					DoUpdates: clause.Assignments(map[string]interface{}{
						"assigned_to": gorm.Expr("COALESCE(excluded.assigned_to, shops.assigned_to)"),
						"updated_at":  gorm.Expr("excluded.updated_at"),
					}),
				}).Create(&shop).Error
				if err != nil {
					return err
				}
				// Re-read into a fresh struct so a conflicting row
				// reports its original id.
				var persisted models.Shop
				if err := tx.First(&persisted, "place_id = ?", *shop.PlaceID).Error; err != nil {
					return err
				}
				shop = persisted
			} else {
				if err := tx.Create(&shop).Error; err != nil {
					return err
				}
			}
			saved = append(saved, shop)
		}

		recounted, err := recountShops(tx, saved)
		if err != nil {
			return err
		}
		counts = recounted
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return saved, counts, nil
}

// recountShops derives the shop tally for every (pincode, assigned_to) pair
// touched by the batch and writes it onto the matching assignment rows.
func recountShops(tx *gorm.DB, shops []models.Shop) ([]PincodeCount, error) {
	type pairKey struct {
		pincode    string
		assignedTo uuid.UUID
	}
	seen := map[pairKey]bool{}
	var counts []PincodeCount

	for _, shop := range shops {
		if shop.AssignedTo == nil {
			continue
		}
		key := pairKey{pincode: shop.Pincode, assignedTo: *shop.AssignedTo}
		if seen[key] {
			continue
		}
		seen[key] = true

		var total int64
		err := tx.Model(&models.Shop{}).
			Where("pincode = ? AND assigned_to = ?", key.pincode, key.assignedTo).
			Count(&total).Error
		if err != nil {
			return nil, err
		}

		err = tx.Model(&models.TaskAssignment{}).
			Where("salesman_id = ? AND pincode = ?", key.assignedTo, key.pincode).
			Updates(map[string]any{
				"total_businesses": total,
				"updated_at":       time.Now().UTC(),
			}).Error
		if err != nil {
			return nil, err
		}

		assignedTo := key.assignedTo
		counts = append(counts, PincodeCount{
			Pincode:         key.pincode,
			AssignedTo:      &assignedTo,
			TotalBusinesses: total,
		})
	}
	return counts, nil
}

func (r *Repository) FindShopByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *Repository) UpdateShop(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where("id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *Repository) ListShops(ctx context.Context, filter ShopFilter) ([]models.Shop, error) {
	query := r.db.WithContext(ctx).Model(&models.Shop{})
	if filter.SalesmanID != nil {
		query = query.Where("assigned_to = ?", *filter.SalesmanID)
	}
	if filter.Pincode != "" {
		query = query.Where("pincode = ?", filter.Pincode)
	}
	if filter.Stage != "" {
		query = query.Where("stage = ?", filter.Stage)
	}
	if filter.BusinessType != "" {
		query = query.Where("business_type = ?", filter.BusinessType)
	}
	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	var shops []models.Shop
	err := query.Order("created_at DESC").Find(&shops).Error
	return shops, err
}
