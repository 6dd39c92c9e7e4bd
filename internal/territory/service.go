package territory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
	"github.com/rahulmehta/fieldcrm-backend/pkg/enums"
	pkgerrors "github.com/rahulmehta/fieldcrm-backend/pkg/errors"
	"github.com/rahulmehta/fieldcrm-backend/pkg/logger"
	"github.com/rahulmehta/fieldcrm-backend/pkg/places"
	"github.com/rahulmehta/fieldcrm-backend/pkg/postal"
	"github.com/rahulmehta/fieldcrm-backend/pkg/types"
)

// Service is the territory workflow: resolve a pincode, discover businesses
// around it, assign its areas to a salesman, and track discovered shops
// through the sales funnel.
type Service interface {
	ListSalesmen(ctx context.Context) ([]models.User, error)
	GetLocationByPincode(ctx context.Context, pincode string) (*LocationResponse, error)
	AssignAreas(ctx context.Context, req AssignAreasRequest) (*AssignAreasResponse, error)
	ListAssignmentsBySalesman(ctx context.Context, salesmanID uuid.UUID) ([]models.TaskAssignment, error)
	UpdateAssignment(ctx context.Context, id uuid.UUID, req UpdateAssignmentRequest) (*models.TaskAssignment, error)
	DeleteAssignment(ctx context.Context, id uuid.UUID) error
	SearchBusinesses(ctx context.Context, req SearchBusinessesRequest) (*SearchBusinessesResponse, error)
	SaveShops(ctx context.Context, req SaveShopsRequest) (*SaveShopsResponse, error)
	UpdateShopStage(ctx context.Context, shopID uuid.UUID, req UpdateShopStageRequest) (*models.Shop, error)
	ListShops(ctx context.Context, filter ShopFilter) ([]models.Shop, error)
}

type repository interface {
	UpsertAssignment(ctx context.Context, assignment *models.TaskAssignment) error
	FindAssignment(ctx context.Context, salesmanID uuid.UUID, pincode string) (*models.TaskAssignment, error)
	FindAssignmentByID(ctx context.Context, id uuid.UUID) (*models.TaskAssignment, error)
	ListAssignmentsBySalesman(ctx context.Context, salesmanID uuid.UUID) ([]models.TaskAssignment, error)
	UpdateAssignment(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error)
	DeleteAssignment(ctx context.Context, id uuid.UUID) (int64, error)
	SaveShops(ctx context.Context, shops []models.Shop) ([]models.Shop, []PincodeCount, error)
	FindShopByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	UpdateShop(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error)
	ListShops(ctx context.Context, filter ShopFilter) ([]models.Shop, error)
}

type salesmanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListSalesmen(ctx context.Context) ([]models.User, error)
}

type postalClient interface {
	Lookup(ctx context.Context, pincode string) (*postal.LookupResult, error)
}

type placesClient interface {
	GeocodePincode(ctx context.Context, pincode string) (types.LatLng, error)
	SearchNearby(ctx context.Context, center types.LatLng, categories []string) ([]places.Business, error)
}

type ServiceParams struct {
	Repo     repository
	Salesmen salesmanRepository
	Postal   postalClient
	Places   placesClient
	Logger   *logger.Logger
}

type service struct {
	repo     repository
	salesmen salesmanRepository
	postal   postalClient
	places   placesClient
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, errors.New("territory: repo is required")
	}
	if params.Salesmen == nil {
		return nil, errors.New("territory: salesman repo is required")
	}
	if params.Postal == nil {
		return nil, errors.New("territory: postal client is required")
	}
	if params.Places == nil {
		return nil, errors.New("territory: places client is required")
	}
	if params.Logger == nil {
		return nil, errors.New("territory: logger is required")
	}
	return &service{
		repo:     params.Repo,
		salesmen: params.Salesmen,
		postal:   params.Postal,
		places:   params.Places,
		logg:     params.Logger,
		now:      time.Now,
	}, nil
}

func (s *service) ListSalesmen(ctx context.Context) ([]models.User, error) {
	salesmen, err := s.salesmen.ListSalesmen(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list salesmen")
	}
	if salesmen == nil {
		salesmen = []models.User{}
	}
	return salesmen, nil
}

func (s *service) GetLocationByPincode(ctx context.Context, pincode string) (*LocationResponse, error) {
	result, err := s.postal.Lookup(ctx, pincode)
	if err != nil {
		return nil, err
	}
	if !result.Found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "No location found for this pincode")
	}
	return &LocationResponse{
		Pincode:  result.Pincode,
		Country:  result.Country,
		State:    result.State,
		District: result.District,
		City:     result.City,
		Areas:    result.Areas,
	}, nil
}

func (s *service) AssignAreas(ctx context.Context, req AssignAreasRequest) (*AssignAreasResponse, error) {
	if len(req.Areas) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "At least one area must be selected")
	}

	salesman, err := s.salesmen.FindByID(ctx, req.SalesmanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Salesman not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find salesman")
	}
	if !salesman.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Salesman is not active")
	}

	assignment := &models.TaskAssignment{
		ID:              uuid.New(),
		SalesmanID:      salesman.ID,
		SalesmanName:    salesman.Name,
		Pincode:         req.Pincode,
		Country:         req.Country,
		State:           req.State,
		District:        req.District,
		City:            req.City,
		Areas:           pq.StringArray(req.Areas),
		BusinessTypes:   pq.StringArray(req.BusinessTypes),
		TotalBusinesses: req.TotalBusinesses,
		UpdatedAt:       s.now().UTC(),
	}
	if err := s.repo.UpsertAssignment(ctx, assignment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert assignment")
	}

	saved, err := s.repo.FindAssignment(ctx, salesman.ID, req.Pincode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload assignment")
	}
	return &AssignAreasResponse{Assignment: saved, AreaCount: len(saved.Areas)}, nil
}

func (s *service) ListAssignmentsBySalesman(ctx context.Context, salesmanID uuid.UUID) ([]models.TaskAssignment, error) {
	assignments, err := s.repo.ListAssignmentsBySalesman(ctx, salesmanID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list assignments")
	}
	if assignments == nil {
		assignments = []models.TaskAssignment{}
	}
	return assignments, nil
}

func (s *service) UpdateAssignment(ctx context.Context, id uuid.UUID, req UpdateAssignmentRequest) (*models.TaskAssignment, error) {
	fields := map[string]any{}
	if req.Areas != nil {
		fields["areas"] = pq.StringArray(req.Areas)
	}
	if req.BusinessTypes != nil {
		fields["business_types"] = pq.StringArray(req.BusinessTypes)
	}
	if req.TotalBusinesses != nil {
		fields["total_businesses"] = *req.TotalBusinesses
	}
	if len(fields) == 0 {
		return s.getAssignment(ctx, id)
	}
	fields["updated_at"] = s.now().UTC()

	affected, err := s.repo.UpdateAssignment(ctx, id, fields)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update assignment")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Assignment not found")
	}
	return s.getAssignment(ctx, id)
}

func (s *service) getAssignment(ctx context.Context, id uuid.UUID) (*models.TaskAssignment, error) {
	assignment, err := s.repo.FindAssignmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Assignment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find assignment")
	}
	return assignment, nil
}

func (s *service) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.DeleteAssignment(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete assignment")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Assignment not found")
	}
	return nil
}

func (s *service) SearchBusinesses(ctx context.Context, req SearchBusinessesRequest) (*SearchBusinessesResponse, error) {
	if !postal.IsValidPincode(req.Pincode) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid pincode format. Must be 6 digits.")
	}
	if len(req.BusinessTypes) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "At least one business type must be selected")
	}

	center, err := s.places.GeocodePincode(ctx, req.Pincode)
	if err != nil {
		return nil, err
	}
	businesses, err := s.places.SearchNearby(ctx, center, req.BusinessTypes)
	if err != nil {
		return nil, err
	}
	if businesses == nil {
		businesses = []places.Business{}
	}

	byCategory := make(map[string]int, len(req.BusinessTypes))
	for _, business := range businesses {
		byCategory[business.BusinessType]++
	}
	return &SearchBusinessesResponse{
		Pincode:    req.Pincode,
		Total:      len(businesses),
		Businesses: businesses,
		ByCategory: byCategory,
	}, nil
}

func (s *service) SaveShops(ctx context.Context, req SaveShopsRequest) (*SaveShopsResponse, error) {
	if len(req.Shops) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "At least one shop must be provided")
	}

	now := s.now().UTC()
	shops := make([]models.Shop, 0, len(req.Shops))
	for _, input := range req.Shops {
		shop := input.toModel(now)
		shop.Stage = enums.ShopStageNew
		if shop.AssignedTo == nil {
			shop.AssignedTo = req.SalesmanID
		}
		shops = append(shops, shop)
	}

	saved, counts, err := s.repo.SaveShops(ctx, shops)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save shops")
	}
	if counts == nil {
		counts = []PincodeCount{}
	}
	return &SaveShopsResponse{Shops: saved, Counts: counts}, nil
}

func (s *service) UpdateShopStage(ctx context.Context, shopID uuid.UUID, req UpdateShopStageRequest) (*models.Shop, error) {
	stage := enums.ShopStage(req.Stage)
	if !stage.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid stage. Must be one of: new, follow-up, converted, lost")
	}

	now := s.now().UTC()
	fields := map[string]any{
		"stage":             stage,
		"last_contact_date": now,
		"updated_at":        now,
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	affected, err := s.repo.UpdateShop(ctx, shopID, fields)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update shop stage")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Shop not found")
	}

	shop, err := s.repo.FindShopByID(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload shop")
	}
	return shop, nil
}

func (s *service) ListShops(ctx context.Context, filter ShopFilter) ([]models.Shop, error) {
	shops, err := s.repo.ListShops(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list shops")
	}
	if shops == nil {
		shops = []models.Shop{}
	}
	return shops, nil
}
