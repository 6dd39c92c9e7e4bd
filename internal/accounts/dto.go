package accounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
	"github.com/rahulmehta/fieldcrm-backend/pkg/pagination"
)

type CreateAccountRequest struct {
	PersonName    string     `json:"personName" validate:"required,min=2"`
	DateOfBirth   *time.Time `json:"dateOfBirth"`
	ContactNumber string     `json:"contactNumber" validate:"required,min=10"`
	BusinessType  *string    `json:"businessType"`
	CustomerStage *string    `json:"customerStage"`
	FunnelStage   *string    `json:"funnelStage"`
	AssignedToID  *uuid.UUID `json:"assignedToId"`
	AreaID        *uint      `json:"areaId"`
}

func (r CreateAccountRequest) ToModel() *models.Account {
	return &models.Account{
		ID:            uuid.New(),
		PersonName:    r.PersonName,
		DateOfBirth:   r.DateOfBirth,
		ContactNumber: r.ContactNumber,
		BusinessType:  r.BusinessType,
		CustomerStage: r.CustomerStage,
		FunnelStage:   r.FunnelStage,
		AssignedToID:  r.AssignedToID,
		AreaID:        r.AreaID,
	}
}

type UpdateAccountRequest struct {
	PersonName    *string    `json:"personName" validate:"omitempty,min=2"`
	DateOfBirth   *time.Time `json:"dateOfBirth"`
	ContactNumber *string    `json:"contactNumber" validate:"omitempty,min=10"`
	BusinessType  *string    `json:"businessType"`
	CustomerStage *string    `json:"customerStage"`
	FunnelStage   *string    `json:"funnelStage"`
	AssignedToID  *uuid.UUID `json:"assignedToId"`
	AreaID        *uint      `json:"areaId"`
}

type BulkAssignRequest struct {
	AccountIDs   []uuid.UUID `json:"accountIds" validate:"required,min=1"`
	AssignedToID uuid.UUID   `json:"assignedToId" validate:"required"`
}

type ListFilter struct {
	AreaID        *uint
	AssignedToID  *uuid.UUID
	CustomerStage string
	FunnelStage   string
	Search        string
	Pagination    pagination.Params
}

type ListResult struct {
	Accounts   []models.Account  `json:"accounts"`
	Pagination pagination.Result `json:"pagination"`
}

// Stats summarises the account book for the dashboard.
type Stats struct {
	Total           int64            `json:"total"`
	ByCustomerStage map[string]int64 `json:"byCustomerStage"`
	ByFunnelStage   map[string]int64 `json:"byFunnelStage"`
	Recent          []models.Account `json:"recent"`
}
