package masters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db"
	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
	pkgerrors "github.com/rahulmehta/fieldcrm-backend/pkg/errors"
	"github.com/rahulmehta/fieldcrm-backend/pkg/logger"
)

// Service manages departments and functional roles.
type Service interface {
	ListDepartments(ctx context.Context) ([]models.Department, error)
	ListFunctionalRoles(ctx context.Context, departmentID *uuid.UUID) ([]models.FunctionalRole, error)
	GetFunctionalRole(ctx context.Context, id uuid.UUID) (*models.FunctionalRole, error)
	CreateFunctionalRole(ctx context.Context, req CreateFunctionalRoleRequest) (*models.FunctionalRole, error)
	UpdateFunctionalRole(ctx context.Context, id uuid.UUID, req UpdateFunctionalRoleRequest) (*models.FunctionalRole, error)
	DeleteFunctionalRole(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	ListDepartments(ctx context.Context) ([]models.Department, error)
	ListFunctionalRoles(ctx context.Context, departmentID *uuid.UUID) ([]models.FunctionalRole, error)
	FindFunctionalRoleByID(ctx context.Context, id uuid.UUID) (*models.FunctionalRole, error)
	CreateFunctionalRole(ctx context.Context, role *models.FunctionalRole) error
	UpdateFunctionalRole(ctx context.Context, id uuid.UUID, fields map[string]any) error
	DeleteFunctionalRole(ctx context.Context, id uuid.UUID) (int64, error)
	CountUsersWithFunctionalRole(ctx context.Context, id uuid.UUID) (int64, error)
}

type ServiceParams struct {
	Repo   repository
	Logger *logger.Logger
}

type service struct {
	repo repository
	logg *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, errors.New("masters: repo is required")
	}
	if params.Logger == nil {
		return nil, errors.New("masters: logger is required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *service) ListDepartments(ctx context.Context) ([]models.Department, error) {
	departments, err := s.repo.ListDepartments(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list departments")
	}
	return departments, nil
}

func (s *service) ListFunctionalRoles(ctx context.Context, departmentID *uuid.UUID) ([]models.FunctionalRole, error) {
	roles, err := s.repo.ListFunctionalRoles(ctx, departmentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list functional roles")
	}
	return roles, nil
}

func (s *service) GetFunctionalRole(ctx context.Context, id uuid.UUID) (*models.FunctionalRole, error) {
	role, err := s.repo.FindFunctionalRoleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Role not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find functional role")
	}
	return role, nil
}

func (s *service) CreateFunctionalRole(ctx context.Context, req CreateFunctionalRoleRequest) (*models.FunctionalRole, error) {
	role := req.ToModel()
	if err := s.repo.CreateFunctionalRole(ctx, role); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "A role with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create functional role")
	}
	return role, nil
}

func (s *service) UpdateFunctionalRole(ctx context.Context, id uuid.UUID, req UpdateFunctionalRoleRequest) (*models.FunctionalRole, error) {
	if _, err := s.GetFunctionalRole(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.DepartmentID != nil {
		fields["department_id"] = *req.DepartmentID
	}
	if len(fields) == 0 {
		return s.GetFunctionalRole(ctx, id)
	}
	fields["updated_at"] = time.Now().UTC()

	if err := s.repo.UpdateFunctionalRole(ctx, id, fields); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "A role with this name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update functional role")
	}
	return s.GetFunctionalRole(ctx, id)
}

func (s *service) DeleteFunctionalRole(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetFunctionalRole(ctx, id); err != nil {
		return err
	}

	inUse, err := s.repo.CountUsersWithFunctionalRole(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count role users")
	}
	if inUse > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "Cannot delete a role that is assigned to employees")
	}

	affected, err := s.repo.DeleteFunctionalRole(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete functional role")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Role not found")
	}
	return nil
}
