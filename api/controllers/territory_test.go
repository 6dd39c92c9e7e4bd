package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rahulmehta/fieldcrm-backend/internal/territory"
	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
	pkgerrors "github.com/rahulmehta/fieldcrm-backend/pkg/errors"
)

type stubTerritoryService struct {
	location     *territory.LocationResponse
	locationErr  error
	assignResp   *territory.AssignAreasResponse
	assignErr    error
	searchResp   *territory.SearchBusinessesResponse
	searchErr    error
	shop         *models.Shop
	shopErr      error
	shops        []models.Shop
	shopsErr     error
	deleteErr    error
	lastShopMeta territory.UpdateShopStageRequest
	lastFilter   territory.ShopFilter
	lastSaveReq  territory.SaveShopsRequest
	saveResp     *territory.SaveShopsResponse
	saveErr      error
}

func (s *stubTerritoryService) ListSalesmen(ctx context.Context) ([]models.User, error) {
	return nil, nil
}

func (s *stubTerritoryService) GetLocationByPincode(ctx context.Context, pincode string) (*territory.LocationResponse, error) {
	return s.location, s.locationErr
}

func (s *stubTerritoryService) AssignAreas(ctx context.Context, req territory.AssignAreasRequest) (*territory.AssignAreasResponse, error) {
	return s.assignResp, s.assignErr
}

func (s *stubTerritoryService) ListAssignmentsBySalesman(ctx context.Context, salesmanID uuid.UUID) ([]models.TaskAssignment, error) {
	return nil, nil
}

func (s *stubTerritoryService) UpdateAssignment(ctx context.Context, id uuid.UUID, req territory.UpdateAssignmentRequest) (*models.TaskAssignment, error) {
	return nil, nil
}

func (s *stubTerritoryService) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	return s.deleteErr
}

func (s *stubTerritoryService) SearchBusinesses(ctx context.Context, req territory.SearchBusinessesRequest) (*territory.SearchBusinessesResponse, error) {
	return s.searchResp, s.searchErr
}

func (s *stubTerritoryService) SaveShops(ctx context.Context, req territory.SaveShopsRequest) (*territory.SaveShopsResponse, error) {
	s.lastSaveReq = req
	return s.saveResp, s.saveErr
}

func (s *stubTerritoryService) UpdateShopStage(ctx context.Context, shopID uuid.UUID, req territory.UpdateShopStageRequest) (*models.Shop, error) {
	s.lastShopMeta = req
	return s.shop, s.shopErr
}

func (s *stubTerritoryService) ListShops(ctx context.Context, filter territory.ShopFilter) ([]models.Shop, error) {
	s.lastFilter = filter
	return s.shops, s.shopsErr
}

func withRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestGetLocationByPincodeSuccess(t *testing.T) {
	stub := &stubTerritoryService{
		location: &territory.LocationResponse{
			Pincode:  "560001",
			State:    "Karnataka",
			District: "Bengaluru",
			Areas:    []string{"MG Road", "Shivajinagar"},
		},
	}
	handler := GetLocationByPincode(stub, testLogger())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/task-assignments/location/pincode/560001", nil)
	req = withRouteParam(req, "pincode", "560001")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data territory.LocationResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.State != "Karnataka" || len(envelope.Data.Areas) != 2 {
		t.Fatalf("unexpected location %+v", envelope.Data)
	}
}

func TestGetLocationByPincodeNotFound(t *testing.T) {
	stub := &stubTerritoryService{
		locationErr: pkgerrors.New(pkgerrors.CodeNotFound, "No location found for this pincode"),
	}
	handler := GetLocationByPincode(stub, testLogger())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/task-assignments/location/pincode/000000", nil)
	req = withRouteParam(req, "pincode", "000000")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestAssignAreasCreated(t *testing.T) {
	salesmanID := uuid.New()
	stub := &stubTerritoryService{
		assignResp: &territory.AssignAreasResponse{
			Assignment: &models.TaskAssignment{ID: uuid.New(), SalesmanID: salesmanID, Pincode: "560001"},
			AreaCount:  2,
		},
	}
	handler := AssignAreas(stub, testLogger())
	body := `{"salesmanId":"` + salesmanID.String() + `","pincode":"560001","areas":["MG Road","Shivajinagar"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/task-assignments/assignments/areas", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}

	var envelope struct {
		Data territory.AssignAreasResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AreaCount != 2 || envelope.Data.Assignment == nil {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestAssignAreasInvalidBody(t *testing.T) {
	handler := AssignAreas(&stubTerritoryService{}, testLogger())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/task-assignments/assignments/areas", bytes.NewReader([]byte(`{"pincode":`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestSearchBusinessesSuccess(t *testing.T) {
	stub := &stubTerritoryService{
		searchResp: &territory.SearchBusinessesResponse{
			Pincode:    "560001",
			Total:      3,
			ByCategory: map[string]int{"grocery": 2, "cafe": 1},
		},
	}
	handler := SearchBusinesses(stub, testLogger())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/task-assignments/businesses/search", bytes.NewReader([]byte(`{"pincode":"560001","businessTypes":["grocery","cafe"]}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data territory.SearchBusinessesResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Total != 3 || envelope.Data.ByCategory["grocery"] != 2 {
		t.Fatalf("unexpected breakdown %+v", envelope.Data)
	}
}

func TestSaveShopsAcceptsBatchSalesman(t *testing.T) {
	salesmanID := uuid.New()
	stub := &stubTerritoryService{
		saveResp: &territory.SaveShopsResponse{Shops: []models.Shop{}, Counts: []territory.PincodeCount{}},
	}
	handler := SaveShops(stub, testLogger())
	body := `{"salesmanId":"` + salesmanID.String() + `","shops":[{"name":"Sharma Stores","businessType":"grocery","pincode":"682001"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/task-assignments/shops", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.lastSaveReq.SalesmanID == nil || *stub.lastSaveReq.SalesmanID != salesmanID {
		t.Fatalf("expected batch salesman decoded, got %+v", stub.lastSaveReq.SalesmanID)
	}
	if len(stub.lastSaveReq.Shops) != 1 || stub.lastSaveReq.Shops[0].Name != "Sharma Stores" {
		t.Fatalf("unexpected shops payload %+v", stub.lastSaveReq.Shops)
	}
}

func TestUpdateShopStageInvalidID(t *testing.T) {
	handler := UpdateShopStage(&stubTerritoryService{}, testLogger())
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/task-assignments/shops/not-a-uuid/stage", bytes.NewReader([]byte(`{"stage":"converted"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = withRouteParam(req, "shopId", "not-a-uuid")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid id, got %d", rec.Code)
	}
}

func TestUpdateShopStageSuccess(t *testing.T) {
	shopID := uuid.New()
	stub := &stubTerritoryService{
		shop: &models.Shop{ID: shopID, Name: "Fresh Mart", Stage: "converted"},
	}
	handler := UpdateShopStage(stub, testLogger())
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/task-assignments/shops/"+shopID.String()+"/stage", bytes.NewReader([]byte(`{"stage":"converted"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = withRouteParam(req, "shopId", shopID.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if stub.lastShopMeta.Stage != "converted" {
		t.Fatalf("expected stage passed through, got %+v", stub.lastShopMeta)
	}
}

func TestListShopsBySalesmanFilters(t *testing.T) {
	salesmanID := uuid.New()
	stub := &stubTerritoryService{shops: []models.Shop{{ID: uuid.New(), Name: "Fresh Mart"}}}
	handler := ListShopsBySalesman(stub, testLogger())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/task-assignments/shops/salesman/"+salesmanID.String()+"?stage=new&businessType=grocery", nil)
	req = withRouteParam(req, "salesmanId", salesmanID.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if stub.lastFilter.SalesmanID == nil || *stub.lastFilter.SalesmanID != salesmanID {
		t.Fatalf("expected salesman filter set, got %+v", stub.lastFilter)
	}
	if stub.lastFilter.Stage != "new" || stub.lastFilter.BusinessType != "grocery" {
		t.Fatalf("expected query filters passed through, got %+v", stub.lastFilter)
	}
}

func TestDeleteAssignmentNotFound(t *testing.T) {
	stub := &stubTerritoryService{
		deleteErr: pkgerrors.New(pkgerrors.CodeNotFound, "Assignment not found"),
	}
	handler := DeleteAssignment(stub, testLogger())
	id := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/task-assignments/assignments/"+id.String(), nil)
	req = withRouteParam(req, "assignmentId", id.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}
