package models

import (
	"time"

	"github.com/google/uuid"
)

// Department is the org-structure master referenced by users and roles.
type Department struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex:uq_departments_name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
