package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a customer record. Contact numbers are deliberately NOT unique:
// multiple accounts may share one number (family businesses, shared shop
// phones), which is an explicit business rule.
type Account struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AccountCode   string     `gorm:"column:account_code;not null;uniqueIndex:uq_accounts_code"`
	PersonName    string     `gorm:"column:person_name;not null"`
	DateOfBirth   *time.Time `gorm:"column:date_of_birth"`
	ContactNumber string     `gorm:"column:contact_number;not null;index"`
	BusinessType  *string    `gorm:"column:business_type"`
	CustomerStage *string    `gorm:"column:customer_stage"`
	FunnelStage   *string    `gorm:"column:funnel_stage"`
	AssignedToID  *uuid.UUID `gorm:"column:assigned_to_id;type:uuid;index"`
	AreaID        *uint      `gorm:"column:area_id;index"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
