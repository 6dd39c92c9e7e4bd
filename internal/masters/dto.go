package masters

import (
	"github.com/google/uuid"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
)

type CreateFunctionalRoleRequest struct {
	Name         string     `json:"name" validate:"required,min=2"`
	Description  *string    `json:"description"`
	DepartmentID *uuid.UUID `json:"departmentId"`
}

func (r CreateFunctionalRoleRequest) ToModel() *models.FunctionalRole {
	return &models.FunctionalRole{
		ID:           uuid.New(),
		Name:         r.Name,
		Description:  r.Description,
		DepartmentID: r.DepartmentID,
	}
}

type UpdateFunctionalRoleRequest struct {
	Name         *string    `json:"name" validate:"omitempty,min=2"`
	Description  *string    `json:"description"`
	DepartmentID *uuid.UUID `json:"departmentId"`
}
