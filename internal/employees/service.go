package employees

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db"
	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
	pkgerrors "github.com/rahulmehta/fieldcrm-backend/pkg/errors"
	"github.com/rahulmehta/fieldcrm-backend/pkg/pagination"
)

// Service defines the behavior needed by the employees controller.
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (*models.User, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateEmployeeRequest) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListSalesmen(ctx context.Context) ([]models.User, error)
}

type repository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, filter ListFilter) ([]models.User, int64, error)
	Updates(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	ListSalesmen(ctx context.Context) ([]models.User, error)
}

type service struct {
	repo repository
}

// NewService constructs an employees service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("employees repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (*models.User, error) {
	user := req.ToModel()
	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "An employee with this email or contact number already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create employee")
	}
	return user, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Employee not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load employee")
	}
	return user, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list employees")
	}
	return &ListResult{
		Employees:  users,
		Pagination: paginationResult(filter, total),
	}, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateEmployeeRequest) (*models.User, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	fields := updateFields(req)
	if len(fields) == 0 {
		return s.Get(ctx, id)
	}

	if err := s.repo.Updates(ctx, id, fields); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "An employee with this email or contact number already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update employee")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete employee")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Employee not found")
	}
	return nil
}

func (s *service) ListSalesmen(ctx context.Context) ([]models.User, error) {
	salesmen, err := s.repo.ListSalesmen(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list salesmen")
	}
	return salesmen, nil
}

func paginationResult(filter ListFilter, total int64) pagination.Result {
	return pagination.NewResult(filter.Pagination.Normalize(), total)
}

func updateFields(req UpdateEmployeeRequest) map[string]any {
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.ContactNumber != nil {
		fields["contact_number"] = *req.ContactNumber
	}
	if req.Designation != nil {
		fields["designation"] = *req.Designation
	}
	if req.DateOfBirth != nil {
		fields["date_of_birth"] = *req.DateOfBirth
	}
	if req.Gender != nil {
		fields["gender"] = *req.Gender
	}
	if req.Nationality != nil {
		fields["nationality"] = *req.Nationality
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if req.DepartmentID != nil {
		fields["department_id"] = *req.DepartmentID
	}
	if req.FunctionalRoleID != nil {
		fields["functional_role_id"] = *req.FunctionalRoleID
	}
	if req.RoleID != nil {
		fields["role_id"] = *req.RoleID
	}
	if req.Roles != nil {
		fields["roles"] = pq.StringArray(req.Roles)
	}
	if req.PreferredLanguages != nil {
		fields["preferred_languages"] = pq.StringArray(req.PreferredLanguages)
	}
	if req.JoiningDate != nil {
		fields["joining_date"] = *req.JoiningDate
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
	}
	return fields
}
