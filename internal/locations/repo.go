package locations

import (
	"context"

	"gorm.io/gorm"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
)

// Repository persists the geographic master hierarchy.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListCountries(ctx context.Context) ([]models.Country, error) {
	var countries []models.Country
	err := r.db.WithContext(ctx).Order("country_name ASC").Find(&countries).Error
	return countries, err
}

func (r *Repository) CreateCountry(ctx context.Context, country *models.Country) error {
	return r.db.WithContext(ctx).Create(country).Error
}

func (r *Repository) UpdateCountry(ctx context.Context, id uint, name string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Country{}).
		Where("country_id = ?", id).
		Update("country_name", name)
	return result.RowsAffected, result.Error
}

func (r *Repository) DeleteCountry(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Country{}, "country_id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *Repository) ListStates(ctx context.Context, countryID *uint) ([]models.State, error) {
	query := r.db.WithContext(ctx).Model(&models.State{})
	if countryID != nil {
		query = query.Where("country_id = ?", *countryID)
	}
	var states []models.State
	err := query.Order("state_name ASC").Find(&states).Error
	return states, err
}

func (r *Repository) CreateState(ctx context.Context, state *models.State) error {
	return r.db.WithContext(ctx).Create(state).Error
}

func (r *Repository) UpdateState(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.State{}).
		Where("state_id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *Repository) DeleteState(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.State{}, "state_id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *Repository) ListDistricts(ctx context.Context, stateID *uint) ([]models.District, error) {
	query := r.db.WithContext(ctx).Model(&models.District{})
	if stateID != nil {
		query = query.Where("state_id = ?", *stateID)
	}
	var districts []models.District
	err := query.Order("district_name ASC").Find(&districts).Error
	return districts, err
}

func (r *Repository) CreateDistrict(ctx context.Context, district *models.District) error {
	return r.db.WithContext(ctx).Create(district).Error
}

func (r *Repository) UpdateDistrict(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.District{}).
		Where("district_id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *Repository) DeleteDistrict(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.District{}, "district_id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *Repository) ListCities(ctx context.Context, districtID *uint) ([]models.City, error) {
	query := r.db.WithContext(ctx).Model(&models.City{})
	if districtID != nil {
		query = query.Where("district_id = ?", *districtID)
	}
	var cities []models.City
	err := query.Order("city_name ASC").Find(&cities).Error
	return cities, err
}

func (r *Repository) CreateCity(ctx context.Context, city *models.City) error {
	return r.db.WithContext(ctx).Create(city).Error
}

func (r *Repository) UpdateCity(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.City{}).
		Where("city_id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *Repository) DeleteCity(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.City{}, "city_id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *Repository) ListZones(ctx context.Context, cityID *uint) ([]models.Zone, error) {
	query := r.db.WithContext(ctx).Model(&models.Zone{})
	if cityID != nil {
		query = query.Where("city_id = ?", *cityID)
	}
	var zones []models.Zone
	err := query.Order("zone_name ASC").Find(&zones).Error
	return zones, err
}

func (r *Repository) CreateZone(ctx context.Context, zone *models.Zone) error {
	return r.db.WithContext(ctx).Create(zone).Error
}

func (r *Repository) UpdateZone(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Zone{}).
		Where("zone_id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *Repository) DeleteZone(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Zone{}, "zone_id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *Repository) ListAreas(ctx context.Context, zoneID *uint) ([]models.Area, error) {
	query := r.db.WithContext(ctx).Model(&models.Area{})
	if zoneID != nil {
		query = query.Where("zone_id = ?", *zoneID)
	}
	var areas []models.Area
	err := query.Order("area_name ASC").Find(&areas).Error
	return areas, err
}

func (r *Repository) CreateArea(ctx context.Context, area *models.Area) error {
	return r.db.WithContext(ctx).Create(area).Error
}

func (r *Repository) UpdateArea(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Area{}).
		Where("area_id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *Repository) DeleteArea(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Area{}, "area_id = ?", id)
	return result.RowsAffected, result.Error
}
