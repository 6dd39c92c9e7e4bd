package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rahulmehta/fieldcrm-backend/pkg/enums"
)

// Shop is a discovered business candidate. Rows with a provider place id are
// deduplicated through the partial unique index; rows without one cannot be
// deduplicated and always insert fresh.
type Shop struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PlaceID         *string         `gorm:"column:place_id;uniqueIndex:uq_shops_place_id"`
	Name            string          `gorm:"column:name;not null"`
	BusinessType    string          `gorm:"column:business_type;not null;index"`
	Address         *string         `gorm:"column:address"`
	Pincode         string          `gorm:"column:pincode;not null;index"`
	Area            *string         `gorm:"column:area"`
	City            *string         `gorm:"column:city"`
	State           *string         `gorm:"column:state"`
	Country         *string         `gorm:"column:country"`
	Latitude        *float64        `gorm:"column:latitude"`
	Longitude       *float64        `gorm:"column:longitude"`
	PhoneNumber     *string         `gorm:"column:phone_number"`
	Rating          *float64        `gorm:"column:rating"`
	Stage           enums.ShopStage `gorm:"column:stage;not null;default:'new';index"`
	AssignedTo      *uuid.UUID      `gorm:"column:assigned_to;type:uuid;index"`
	Notes           *string         `gorm:"column:notes"`
	LastContactDate *time.Time      `gorm:"column:last_contact_date"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
