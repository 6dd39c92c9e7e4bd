package employees

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
	"github.com/rahulmehta/fieldcrm-backend/pkg/pagination"
)

// CreateEmployeeRequest is the payload for registering a new employee.
type CreateEmployeeRequest struct {
	EmployeeCode       *string    `json:"employeeCode,omitempty"`
	Name               string     `json:"name" validate:"required,min=2"`
	Email              string     `json:"email" validate:"required,email"`
	ContactNumber      string     `json:"contactNumber" validate:"required,min=10,max=15"`
	Designation        *string    `json:"designation,omitempty"`
	DateOfBirth        *time.Time `json:"dateOfBirth,omitempty"`
	Gender             *string    `json:"gender,omitempty"`
	Nationality        *string    `json:"nationality,omitempty"`
	Image              *string    `json:"image,omitempty"`
	DepartmentID       *uuid.UUID `json:"departmentId,omitempty"`
	FunctionalRoleID   *uuid.UUID `json:"functionalRoleId,omitempty"`
	RoleID             *string    `json:"roleId,omitempty"`
	Roles              []string   `json:"roles,omitempty"`
	PreferredLanguages []string   `json:"preferredLanguages,omitempty"`
	JoiningDate        *time.Time `json:"joiningDate,omitempty"`
}

// ToModel converts the request into a persistable User.
func (r CreateEmployeeRequest) ToModel() *models.User {
	return &models.User{
		ID:                 uuid.New(),
		EmployeeCode:       r.EmployeeCode,
		Name:               r.Name,
		Email:              r.Email,
		ContactNumber:      r.ContactNumber,
		Designation:        r.Designation,
		DateOfBirth:        r.DateOfBirth,
		Gender:             r.Gender,
		Nationality:        r.Nationality,
		Image:              r.Image,
		DepartmentID:       r.DepartmentID,
		FunctionalRoleID:   r.FunctionalRoleID,
		RoleID:             r.RoleID,
		Roles:              pq.StringArray(r.Roles),
		PreferredLanguages: pq.StringArray(r.PreferredLanguages),
		JoiningDate:        r.JoiningDate,
		IsActive:           true,
	}
}

// UpdateEmployeeRequest carries optional fields for a partial update.
type UpdateEmployeeRequest struct {
	Name               *string    `json:"name,omitempty" validate:"omitempty,min=2"`
	Email              *string    `json:"email,omitempty" validate:"omitempty,email"`
	ContactNumber      *string    `json:"contactNumber,omitempty" validate:"omitempty,min=10,max=15"`
	Designation        *string    `json:"designation,omitempty"`
	DateOfBirth        *time.Time `json:"dateOfBirth,omitempty"`
	Gender             *string    `json:"gender,omitempty"`
	Nationality        *string    `json:"nationality,omitempty"`
	Image              *string    `json:"image,omitempty"`
	DepartmentID       *uuid.UUID `json:"departmentId,omitempty"`
	FunctionalRoleID   *uuid.UUID `json:"functionalRoleId,omitempty"`
	RoleID             *string    `json:"roleId,omitempty"`
	Roles              []string   `json:"roles,omitempty"`
	PreferredLanguages []string   `json:"preferredLanguages,omitempty"`
	JoiningDate        *time.Time `json:"joiningDate,omitempty"`
	IsActive           *bool      `json:"isActive,omitempty"`
}

// ListFilter narrows the employee listing.
type ListFilter struct {
	DepartmentID *uuid.UUID
	IsActive     *bool
	Search       string
	Pagination   pagination.Params
}

// ListResult bundles a page of employees with pagination metadata.
type ListResult struct {
	Employees  []models.User     `json:"employees"`
	Pagination pagination.Result `json:"pagination"`
}
