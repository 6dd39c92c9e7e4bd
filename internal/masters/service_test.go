package masters

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
	pkgerrors "github.com/rahulmehta/fieldcrm-backend/pkg/errors"
	"github.com/rahulmehta/fieldcrm-backend/pkg/logger"
)

type stubRepo struct {
	roles     map[uuid.UUID]*models.FunctionalRole
	roleUsers map[uuid.UUID]int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		roles:     map[uuid.UUID]*models.FunctionalRole{},
		roleUsers: map[uuid.UUID]int64{},
	}
}

func (r *stubRepo) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return nil, nil
}

func (r *stubRepo) ListFunctionalRoles(ctx context.Context, departmentID *uuid.UUID) ([]models.FunctionalRole, error) {
	var roles []models.FunctionalRole
	for _, role := range r.roles {
		if departmentID != nil && (role.DepartmentID == nil || *role.DepartmentID != *departmentID) {
			continue
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

func (r *stubRepo) FindFunctionalRoleByID(ctx context.Context, id uuid.UUID) (*models.FunctionalRole, error) {
	if role, ok := r.roles[id]; ok {
		return role, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) CreateFunctionalRole(ctx context.Context, role *models.FunctionalRole) error {
	r.roles[role.ID] = role
	return nil
}

func (r *stubRepo) UpdateFunctionalRole(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	role := r.roles[id]
	if name, ok := fields["name"].(string); ok {
		role.Name = name
	}
	if desc, ok := fields["description"].(string); ok {
		role.Description = &desc
	}
	return nil
}

func (r *stubRepo) DeleteFunctionalRole(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.roles[id]; !ok {
		return 0, nil
	}
	delete(r.roles, id)
	return 1, nil
}

func (r *stubRepo) CountUsersWithFunctionalRole(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.roleUsers[id], nil
}

func testMastersService(t *testing.T, repo *stubRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:   repo,
		Logger: logger.New(logger.Options{Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateAndGetFunctionalRole(t *testing.T) {
	repo := newStubRepo()
	svc := testMastersService(t, repo)

	created, err := svc.CreateFunctionalRole(context.Background(), CreateFunctionalRoleRequest{Name: "Salesman"})
	if err != nil {
		t.Fatalf("create role: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected generated role id")
	}

	got, err := svc.GetFunctionalRole(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get role: %v", err)
	}
	if got.Name != "Salesman" {
		t.Fatalf("unexpected name %q", got.Name)
	}
}

func TestGetFunctionalRoleNotFound(t *testing.T) {
	svc := testMastersService(t, newStubRepo())

	_, err := svc.GetFunctionalRole(context.Background(), uuid.New())
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteFunctionalRoleInUse(t *testing.T) {
	repo := newStubRepo()
	svc := testMastersService(t, repo)

	created, err := svc.CreateFunctionalRole(context.Background(), CreateFunctionalRoleRequest{Name: "Telecaller"})
	if err != nil {
		t.Fatalf("create role: %v", err)
	}
	repo.roleUsers[created.ID] = 3

	err = svc.DeleteFunctionalRole(context.Background(), created.ID)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := repo.roles[created.ID]; !ok {
		t.Fatal("role should not be deleted while assigned")
	}
}

func TestDeleteFunctionalRole(t *testing.T) {
	repo := newStubRepo()
	svc := testMastersService(t, repo)

	created, err := svc.CreateFunctionalRole(context.Background(), CreateFunctionalRoleRequest{Name: "Manager"})
	if err != nil {
		t.Fatalf("create role: %v", err)
	}
	if err := svc.DeleteFunctionalRole(context.Background(), created.ID); err != nil {
		t.Fatalf("delete role: %v", err)
	}
	if len(repo.roles) != 0 {
		t.Fatal("expected role removed")
	}
}
