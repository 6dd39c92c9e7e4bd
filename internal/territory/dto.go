package territory

import (
	"time"

	"github.com/google/uuid"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
	"github.com/rahulmehta/fieldcrm-backend/pkg/places"
)

type AssignAreasRequest struct {
	SalesmanID      uuid.UUID `json:"salesmanId" validate:"required"`
	Pincode         string    `json:"pincode" validate:"required,len=6,numeric"`
	Areas           []string  `json:"areas" validate:"required,min=1"`
	BusinessTypes   []string  `json:"businessTypes"`
	TotalBusinesses int       `json:"totalBusinesses"`
	Country         *string   `json:"country"`
	State           *string   `json:"state"`
	District        *string   `json:"district"`
	City            *string   `json:"city"`
}

type AssignAreasResponse struct {
	Assignment *models.TaskAssignment `json:"assignment"`
	AreaCount  int                    `json:"areaCount"`
}

type UpdateAssignmentRequest struct {
	Areas           []string `json:"areas" validate:"omitempty,min=1"`
	BusinessTypes   []string `json:"businessTypes"`
	TotalBusinesses *int     `json:"totalBusinesses"`
}

type SearchBusinessesRequest struct {
	Pincode       string   `json:"pincode" validate:"required,len=6,numeric"`
	BusinessTypes []string `json:"businessTypes" validate:"required,min=1"`
}

type SearchBusinessesResponse struct {
	Pincode    string            `json:"pincode"`
	Total      int               `json:"total"`
	Businesses []places.Business `json:"businesses"`
	ByCategory map[string]int    `json:"byCategory"`
}

type ShopInput struct {
	PlaceID      *string    `json:"placeId"`
	Name         string     `json:"name" validate:"required"`
	BusinessType string     `json:"businessType" validate:"required"`
	Address      *string    `json:"address"`
	Pincode      string     `json:"pincode" validate:"required,len=6,numeric"`
	Area         *string    `json:"area"`
	City         *string    `json:"city"`
	State        *string    `json:"state"`
	Country      *string    `json:"country"`
	Latitude     *float64   `json:"latitude"`
	Longitude    *float64   `json:"longitude"`
	PhoneNumber  *string    `json:"phoneNumber"`
	Rating       *float64   `json:"rating"`
	AssignedTo   *uuid.UUID `json:"assignedTo"`
}

type SaveShopsRequest struct {
	Shops []ShopInput `json:"shops" validate:"required,min=1,dive"`
	// SalesmanID is the default owner for the batch; per-shop assignedTo wins.
	SalesmanID *uuid.UUID `json:"salesmanId"`
}

// PincodeCount is the recomputed shop tally for one (pincode, salesman) pair.
type PincodeCount struct {
	Pincode         string     `json:"pincode"`
	AssignedTo      *uuid.UUID `json:"assignedTo"`
	TotalBusinesses int64      `json:"totalBusinesses"`
}

type SaveShopsResponse struct {
	Shops  []models.Shop  `json:"shops"`
	Counts []PincodeCount `json:"counts"`
}

type UpdateShopStageRequest struct {
	Stage string  `json:"stage" validate:"required"`
	Notes *string `json:"notes"`
}

type ShopFilter struct {
	SalesmanID   *uuid.UUID
	Pincode      string
	Stage        string
	BusinessType string
	AssignedTo   *uuid.UUID
}

type LocationResponse struct {
	Pincode  string   `json:"pincode"`
	Country  string   `json:"country"`
	State    string   `json:"state"`
	District string   `json:"district"`
	City     string   `json:"city"`
	Areas    []string `json:"areas"`
}

func (r ShopInput) toModel(now time.Time) models.Shop {
	return models.Shop{
		ID:           uuid.New(),
		PlaceID:      r.PlaceID,
		Name:         r.Name,
		BusinessType: r.BusinessType,
		Address:      r.Address,
		Pincode:      r.Pincode,
		Area:         r.Area,
		City:         r.City,
		State:        r.State,
		Country:      r.Country,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		PhoneNumber:  r.PhoneNumber,
		Rating:       r.Rating,
		AssignedTo:   r.AssignedTo,
		UpdatedAt:    now,
	}
}
