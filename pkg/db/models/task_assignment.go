package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TaskAssignment binds one salesman to one pincode. The composite unique
// index is what makes the assignment upsert race-free: writers use
// ON CONFLICT on it instead of a read-then-branch check.
type TaskAssignment struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SalesmanID      uuid.UUID      `gorm:"column:salesman_id;type:uuid;not null;uniqueIndex:uq_task_assignments_salesman_pincode,priority:1"`
	SalesmanName    string         `gorm:"column:salesman_name;not null"`
	Pincode         string         `gorm:"column:pincode;not null;uniqueIndex:uq_task_assignments_salesman_pincode,priority:2"`
	Country         *string        `gorm:"column:country"`
	State           *string        `gorm:"column:state"`
	District        *string        `gorm:"column:district"`
	City            *string        `gorm:"column:city"`
	Areas           pq.StringArray `gorm:"column:areas;type:text[];not null"`
	BusinessTypes   pq.StringArray `gorm:"column:business_types;type:text[]"`
	TotalBusinesses int            `gorm:"column:total_businesses;not null;default:0"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
