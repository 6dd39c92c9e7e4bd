package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User represents an employee of the organization. Salesmen are users whose
// role id or roles array contains the salesman role.
type User struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	EmployeeCode       *string        `gorm:"column:employee_code;uniqueIndex:uq_users_employee_code"`
	Name               string         `gorm:"column:name;not null"`
	Email              string         `gorm:"column:email;not null;uniqueIndex:uq_users_email"`
	ContactNumber      string         `gorm:"column:contact_number;not null;uniqueIndex:uq_users_contact_number"`
	Designation        *string        `gorm:"column:designation"`
	DateOfBirth        *time.Time     `gorm:"column:date_of_birth"`
	Gender             *string        `gorm:"column:gender"`
	Nationality        *string        `gorm:"column:nationality"`
	Image              *string        `gorm:"column:image"`
	DepartmentID       *uuid.UUID     `gorm:"column:department_id;type:uuid"`
	FunctionalRoleID   *uuid.UUID     `gorm:"column:functional_role_id;type:uuid"`
	RoleID             *string        `gorm:"column:role_id"`
	Roles              pq.StringArray `gorm:"column:roles;type:text[]"`
	PreferredLanguages pq.StringArray `gorm:"column:preferred_languages;type:text[]"`
	JoiningDate        *time.Time     `gorm:"column:joining_date"`
	IsActive           bool           `gorm:"column:is_active;not null;default:true"`
	LastLogin          *time.Time     `gorm:"column:last_login"`
	CreatedAt          time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
