package expenses

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
	"github.com/rahulmehta/fieldcrm-backend/pkg/enums"
	pkgerrors "github.com/rahulmehta/fieldcrm-backend/pkg/errors"
	"github.com/rahulmehta/fieldcrm-backend/pkg/logger"
)

type stubExpenseRepo struct {
	expenses map[uuid.UUID]*models.Expense
}

func newStubExpenseRepo() *stubExpenseRepo {
	return &stubExpenseRepo{expenses: map[uuid.UUID]*models.Expense{}}
}

func (r *stubExpenseRepo) Create(ctx context.Context, expense *models.Expense) error {
	r.expenses[expense.ID] = expense
	return nil
}

func (r *stubExpenseRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	if expense, ok := r.expenses[id]; ok {
		copied := *expense
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubExpenseRepo) List(ctx context.Context, filter ListFilter) ([]models.Expense, int64, error) {
	matched, err := r.ListMatched(ctx, filter)
	return matched, int64(len(matched)), err
}

func (r *stubExpenseRepo) ListMatched(ctx context.Context, filter ListFilter) ([]models.Expense, error) {
	var matched []models.Expense
	for _, expense := range r.expenses {
		if filter.EmployeeID != nil && expense.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != "" && string(expense.Status) != filter.Status {
			continue
		}
		matched = append(matched, *expense)
	}
	return matched, nil
}

func (r *stubExpenseRepo) Updates(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	expense := r.expenses[id]
	if status, ok := fields["status"].(enums.ExpenseStatus); ok {
		expense.Status = status
	}
	if amount, ok := fields["amount"].(decimal.Decimal); ok {
		expense.Amount = amount
	}
	if reason, ok := fields["rejection_reason"].(string); ok {
		expense.RejectionReason = &reason
	}
	if paidAt, ok := fields["paid_at"].(time.Time); ok {
		expense.PaidAt = &paidAt
	}
	if approvedBy, ok := fields["approved_by"].(uuid.UUID); ok {
		expense.ApprovedBy = &approvedBy
	}
	return nil
}

func (r *stubExpenseRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.expenses[id]; !ok {
		return 0, nil
	}
	delete(r.expenses, id)
	return 1, nil
}

func testExpensesService(t *testing.T, repo *stubExpenseRepo) Service {
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

func amount(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func createExpense(t *testing.T, svc Service, employeeID uuid.UUID, value string) *models.Expense {
	t.Helper()
	expense, err := svc.Create(context.Background(), employeeID, CreateExpenseRequest{
		ExpenseType: "Travel",
		Amount:      amount(value),
		ExpenseDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}
	return expense
}

func TestCreateDefaultsToPending(t *testing.T) {
	svc := testExpensesService(t, newStubExpenseRepo())

	expense := createExpense(t, svc, uuid.New(), "450.50")
	if expense.Status != enums.ExpenseStatusPending {
		t.Fatalf("status = %s, want Pending", expense.Status)
	}
}

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	svc := testExpensesService(t, newStubExpenseRepo())

	_, err := svc.Create(context.Background(), uuid.New(), CreateExpenseRequest{
		ExpenseType: "Travel",
		Amount:      amount("0"),
		ExpenseDate: time.Now(),
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateOnlyOwnExpense(t *testing.T) {
	svc := testExpensesService(t, newStubExpenseRepo())

	owner := uuid.New()
	expense := createExpense(t, svc, owner, "100")

	other := uuid.New()
	newAmount := amount("200")
	_, err := svc.Update(context.Background(), expense.ID, other, UpdateExpenseRequest{Amount: &newAmount})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestUpdateOnlyWhilePending(t *testing.T) {
	repo := newStubExpenseRepo()
	svc := testExpensesService(t, repo)

	owner := uuid.New()
	expense := createExpense(t, svc, owner, "100")
	repo.expenses[expense.ID].Status = enums.ExpenseStatusApproved

	newAmount := amount("200")
	_, err := svc.Update(context.Background(), expense.ID, owner, UpdateExpenseRequest{Amount: &newAmount})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	svc := testExpensesService(t, newStubExpenseRepo())

	expense := createExpense(t, svc, uuid.New(), "100")
	_, err := svc.UpdateStatus(context.Background(), expense.ID, uuid.New(), UpdateStatusRequest{Status: "Rejected"})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPaidStampsPaidAt(t *testing.T) {
	repo := newStubExpenseRepo()
	svc := testExpensesService(t, repo)

	expense := createExpense(t, svc, uuid.New(), "100")
	updated, err := svc.UpdateStatus(context.Background(), expense.ID, uuid.New(), UpdateStatusRequest{Status: "Paid"})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != enums.ExpenseStatusPaid {
		t.Fatalf("status = %s, want Paid", updated.Status)
	}
	if updated.PaidAt == nil {
		t.Fatal("expected paidAt to be stamped")
	}
	if updated.ApprovedBy == nil {
		t.Fatal("expected approver to be recorded")
	}
}

func TestListSummary(t *testing.T) {
	repo := newStubExpenseRepo()
	svc := testExpensesService(t, repo)

	owner := uuid.New()
	createExpense(t, svc, owner, "100")
	approved := createExpense(t, svc, owner, "250")
	repo.expenses[approved.ID].Status = enums.ExpenseStatusApproved

	result, err := svc.List(context.Background(), ListFilter{EmployeeID: &owner})
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if !result.Summary.Total.Equal(amount("350")) {
		t.Fatalf("total = %s, want 350", result.Summary.Total)
	}
	if !result.Summary.PendingAmount.Equal(amount("100")) {
		t.Fatalf("pending = %s, want 100", result.Summary.PendingAmount)
	}
	if !result.Summary.ApprovedAmount.Equal(amount("250")) {
		t.Fatalf("approved = %s, want 250", result.Summary.ApprovedAmount)
	}
}
