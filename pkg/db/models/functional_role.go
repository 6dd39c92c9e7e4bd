package models

import (
	"time"

	"github.com/google/uuid"
)

// FunctionalRole is a named role inside a department (Telecaller, Salesman, ...).
// New signups default to the Telecaller role.
type FunctionalRole struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name         string     `gorm:"column:name;not null;uniqueIndex:uq_functional_roles_name"`
	Description  *string    `gorm:"column:description"`
	DepartmentID *uuid.UUID `gorm:"column:department_id;type:uuid"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
