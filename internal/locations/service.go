package locations

import (
	"context"
	"errors"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db"
	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
	pkgerrors "github.com/rahulmehta/fieldcrm-backend/pkg/errors"
	"github.com/rahulmehta/fieldcrm-backend/pkg/logger"
)

// Service manages the geographic master. Every level follows the same
// contract: list filtered by parent, create, rename, delete. Deletes are
// blocked at the database by RESTRICT foreign keys and surface as 400s.
type Service interface {
	ListCountries(ctx context.Context) ([]models.Country, error)
	CreateCountry(ctx context.Context, req CountryRequest) (*models.Country, error)
	UpdateCountry(ctx context.Context, id uint, req CountryRequest) error
	DeleteCountry(ctx context.Context, id uint) error

	ListStates(ctx context.Context, countryID *uint) ([]models.State, error)
	CreateState(ctx context.Context, req StateRequest) (*models.State, error)
	UpdateState(ctx context.Context, id uint, req StateRequest) error
	DeleteState(ctx context.Context, id uint) error

	ListDistricts(ctx context.Context, stateID *uint) ([]models.District, error)
	CreateDistrict(ctx context.Context, req DistrictRequest) (*models.District, error)
	UpdateDistrict(ctx context.Context, id uint, req DistrictRequest) error
	DeleteDistrict(ctx context.Context, id uint) error

	ListCities(ctx context.Context, districtID *uint) ([]models.City, error)
	CreateCity(ctx context.Context, req CityRequest) (*models.City, error)
	UpdateCity(ctx context.Context, id uint, req CityRequest) error
	DeleteCity(ctx context.Context, id uint) error

	ListZones(ctx context.Context, cityID *uint) ([]models.Zone, error)
	CreateZone(ctx context.Context, req ZoneRequest) (*models.Zone, error)
	UpdateZone(ctx context.Context, id uint, req ZoneRequest) error
	DeleteZone(ctx context.Context, id uint) error

	ListAreas(ctx context.Context, zoneID *uint) ([]models.Area, error)
	CreateArea(ctx context.Context, req AreaRequest) (*models.Area, error)
	UpdateArea(ctx context.Context, id uint, req AreaRequest) error
	DeleteArea(ctx context.Context, id uint) error
}

type ServiceParams struct {
	Repo   *Repository
	Logger *logger.Logger
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, errors.New("locations: repo is required")
	}
	if params.Logger == nil {
		return nil, errors.New("locations: logger is required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

func writeErr(err error, level string, op string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.New(pkgerrors.CodeValidation, "A "+level+" with this name already exists")
	}
	if db.IsForeignKeyViolation(err) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Invalid parent reference for "+level)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, op)
}

func deleteErr(err error, affected int64, level string) error {
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.New(pkgerrors.CodeValidation, "Cannot delete a "+level+" that still has child records")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete "+level)
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage(level))
	}
	return nil
}

func updateErr(err error, affected int64, level string) error {
	if err != nil {
		return writeErr(err, level, "update "+level)
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage(level))
	}
	return nil
}

func notFoundMessage(level string) string {
	switch level {
	case "country":
		return "Country not found"
	case "state":
		return "State not found"
	case "district":
		return "District not found"
	case "city":
		return "City not found"
	case "zone":
		return "Zone not found"
	default:
		return "Area not found"
	}
}

func (s *service) ListCountries(ctx context.Context) ([]models.Country, error) {
	countries, err := s.repo.ListCountries(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list countries")
	}
	return countries, nil
}

func (s *service) CreateCountry(ctx context.Context, req CountryRequest) (*models.Country, error) {
	country := &models.Country{CountryName: req.CountryName}
	if err := s.repo.CreateCountry(ctx, country); err != nil {
		return nil, writeErr(err, "country", "create country")
	}
	return country, nil
}

func (s *service) UpdateCountry(ctx context.Context, id uint, req CountryRequest) error {
	affected, err := s.repo.UpdateCountry(ctx, id, req.CountryName)
	return updateErr(err, affected, "country")
}

func (s *service) DeleteCountry(ctx context.Context, id uint) error {
	affected, err := s.repo.DeleteCountry(ctx, id)
	return deleteErr(err, affected, "country")
}

func (s *service) ListStates(ctx context.Context, countryID *uint) ([]models.State, error) {
	states, err := s.repo.ListStates(ctx, countryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list states")
	}
	return states, nil
}

func (s *service) CreateState(ctx context.Context, req StateRequest) (*models.State, error) {
	state := &models.State{StateName: req.StateName, CountryID: req.CountryID}
	if err := s.repo.CreateState(ctx, state); err != nil {
		return nil, writeErr(err, "state", "create state")
	}
	return state, nil
}

func (s *service) UpdateState(ctx context.Context, id uint, req StateRequest) error {
	affected, err := s.repo.UpdateState(ctx, id, map[string]any{
		"state_name": req.StateName,
		"country_id": req.CountryID,
	})
	return updateErr(err, affected, "state")
}

func (s *service) DeleteState(ctx context.Context, id uint) error {
	affected, err := s.repo.DeleteState(ctx, id)
	return deleteErr(err, affected, "state")
}

func (s *service) ListDistricts(ctx context.Context, stateID *uint) ([]models.District, error) {
	districts, err := s.repo.ListDistricts(ctx, stateID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list districts")
	}
	return districts, nil
}

func (s *service) CreateDistrict(ctx context.Context, req DistrictRequest) (*models.District, error) {
	district := &models.District{DistrictName: req.DistrictName, StateID: req.StateID}
	if err := s.repo.CreateDistrict(ctx, district); err != nil {
		return nil, writeErr(err, "district", "create district")
	}
	return district, nil
}

func (s *service) UpdateDistrict(ctx context.Context, id uint, req DistrictRequest) error {
	affected, err := s.repo.UpdateDistrict(ctx, id, map[string]any{
		"district_name": req.DistrictName,
		"state_id":      req.StateID,
	})
	return updateErr(err, affected, "district")
}

func (s *service) DeleteDistrict(ctx context.Context, id uint) error {
	affected, err := s.repo.DeleteDistrict(ctx, id)
	return deleteErr(err, affected, "district")
}

func (s *service) ListCities(ctx context.Context, districtID *uint) ([]models.City, error) {
	cities, err := s.repo.ListCities(ctx, districtID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cities")
	}
	return cities, nil
}

func (s *service) CreateCity(ctx context.Context, req CityRequest) (*models.City, error) {
	city := &models.City{CityName: req.CityName, DistrictID: req.DistrictID}
	if err := s.repo.CreateCity(ctx, city); err != nil {
		return nil, writeErr(err, "city", "create city")
	}
	return city, nil
}

func (s *service) UpdateCity(ctx context.Context, id uint, req CityRequest) error {
	affected, err := s.repo.UpdateCity(ctx, id, map[string]any{
		"city_name":   req.CityName,
		"district_id": req.DistrictID,
	})
	return updateErr(err, affected, "city")
}

func (s *service) DeleteCity(ctx context.Context, id uint) error {
	affected, err := s.repo.DeleteCity(ctx, id)
	return deleteErr(err, affected, "city")
}

func (s *service) ListZones(ctx context.Context, cityID *uint) ([]models.Zone, error) {
	zones, err := s.repo.ListZones(ctx, cityID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list zones")
	}
	return zones, nil
}

func (s *service) CreateZone(ctx context.Context, req ZoneRequest) (*models.Zone, error) {
	zone := &models.Zone{ZoneName: req.ZoneName, CityID: req.CityID}
	if err := s.repo.CreateZone(ctx, zone); err != nil {
		return nil, writeErr(err, "zone", "create zone")
	}
	return zone, nil
}

func (s *service) UpdateZone(ctx context.Context, id uint, req ZoneRequest) error {
	affected, err := s.repo.UpdateZone(ctx, id, map[string]any{
		"zone_name": req.ZoneName,
		"city_id":   req.CityID,
	})
	return updateErr(err, affected, "zone")
}

func (s *service) DeleteZone(ctx context.Context, id uint) error {
	affected, err := s.repo.DeleteZone(ctx, id)
	return deleteErr(err, affected, "zone")
}

func (s *service) ListAreas(ctx context.Context, zoneID *uint) ([]models.Area, error) {
	areas, err := s.repo.ListAreas(ctx, zoneID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list areas")
	}
	return areas, nil
}

func (s *service) CreateArea(ctx context.Context, req AreaRequest) (*models.Area, error) {
	area := &models.Area{AreaName: req.AreaName, Pincode: req.Pincode, ZoneID: req.ZoneID}
	if err := s.repo.CreateArea(ctx, area); err != nil {
		return nil, writeErr(err, "area", "create area")
	}
	return area, nil
}

func (s *service) UpdateArea(ctx context.Context, id uint, req AreaRequest) error {
	fields := map[string]any{
		"area_name": req.AreaName,
		"zone_id":   req.ZoneID,
	}
	if req.Pincode != nil {
		fields["pincode"] = *req.Pincode
	}
	affected, err := s.repo.UpdateArea(ctx, id, fields)
	return updateErr(err, affected, "area")
}

func (s *service) DeleteArea(ctx context.Context, id uint) error {
	affected, err := s.repo.DeleteArea(ctx, id)
	return deleteErr(err, affected, "area")
}
