package expenses

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
	"github.com/rahulmehta/fieldcrm-backend/pkg/enums"
	pkgerrors "github.com/rahulmehta/fieldcrm-backend/pkg/errors"
	"github.com/rahulmehta/fieldcrm-backend/pkg/logger"
	"github.com/rahulmehta/fieldcrm-backend/pkg/pagination"
)

type Service interface {
	Create(ctx context.Context, employeeID uuid.UUID, req CreateExpenseRequest) (*models.Expense, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Expense, error)
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	Update(ctx context.Context, id, employeeID uuid.UUID, req UpdateExpenseRequest) (*models.Expense, error)
	Delete(ctx context.Context, id, employeeID uuid.UUID) error
	UpdateStatus(ctx context.Context, id, approverID uuid.UUID, req UpdateStatusRequest) (*models.Expense, error)
	Statistics(ctx context.Context) (*Stats, error)
}

type repository interface {
	Create(ctx context.Context, expense *models.Expense) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Expense, error)
	List(ctx context.Context, filter ListFilter) ([]models.Expense, int64, error)
	ListMatched(ctx context.Context, filter ListFilter) ([]models.Expense, error)
	Updates(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type ServiceParams struct {
	Repo   repository
	Logger *logger.Logger
}

type service struct {
	repo repository
	logg *logger.Logger
	now  func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, errors.New("expenses: repo is required")
	}
	if params.Logger == nil {
		return nil, errors.New("expenses: logger is required")
	}
	return &service{repo: params.Repo, logg: params.Logger, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, employeeID uuid.UUID, req CreateExpenseRequest) (*models.Expense, error) {
	if !req.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Expense amount must be greater than zero")
	}

	expense := &models.Expense{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		ExpenseType:   req.ExpenseType,
		Amount:        req.Amount,
		ExpenseDate:   req.ExpenseDate,
		Description:   req.Description,
		BillNumber:    req.BillNumber,
		AttachmentURL: req.AttachmentURL,
		Status:        enums.ExpenseStatusPending,
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create expense")
	}
	return expense, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Expense not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find expense")
	}
	return expense, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	expenses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list expenses")
	}
	matched, err := s.repo.ListMatched(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "summarise expenses")
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return &ListResult{
		Expenses:   expenses,
		Summary:    summarise(matched),
		Pagination: pagination.NewResult(filter.Pagination, total),
	}, nil
}

func summarise(expenses []models.Expense) Summary {
	var summary Summary
	for _, expense := range expenses {
		summary.Total = summary.Total.Add(expense.Amount)
		switch expense.Status {
		case enums.ExpenseStatusPending:
			summary.PendingAmount = summary.PendingAmount.Add(expense.Amount)
		case enums.ExpenseStatusApproved:
			summary.ApprovedAmount = summary.ApprovedAmount.Add(expense.Amount)
		case enums.ExpenseStatusPaid:
			summary.PaidAmount = summary.PaidAmount.Add(expense.Amount)
		}
	}
	return summary
}

// ownPending loads the expense and enforces the only-own and only-Pending
// rules that guard employee edits.
func (s *service) ownPending(ctx context.Context, id, employeeID uuid.UUID) (*models.Expense, error) {
	expense, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense.EmployeeID != employeeID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "You can only modify your own expenses")
	}
	if expense.Status != enums.ExpenseStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Only pending expenses can be modified")
	}
	return expense, nil
}

func (s *service) Update(ctx context.Context, id, employeeID uuid.UUID, req UpdateExpenseRequest) (*models.Expense, error) {
	if _, err := s.ownPending(ctx, id, employeeID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.ExpenseType != nil {
		fields["expense_type"] = *req.ExpenseType
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Expense amount must be greater than zero")
		}
		fields["amount"] = *req.Amount
	}
	if req.ExpenseDate != nil {
		fields["expense_date"] = *req.ExpenseDate
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.BillNumber != nil {
		fields["bill_number"] = *req.BillNumber
	}
	if req.AttachmentURL != nil {
		fields["attachment_url"] = *req.AttachmentURL
	}
	if len(fields) == 0 {
		return s.Get(ctx, id)
	}
	fields["updated_at"] = s.now().UTC()

	if err := s.repo.Updates(ctx, id, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update expense")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id, employeeID uuid.UUID) error {
	if _, err := s.ownPending(ctx, id, employeeID); err != nil {
		return err
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete expense")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Expense not found")
	}
	return nil
}

func (s *service) UpdateStatus(ctx context.Context, id, approverID uuid.UUID, req UpdateStatusRequest) (*models.Expense, error) {
	status, err := enums.ParseExpenseStatus(req.Status)
	if err != nil || status == enums.ExpenseStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Status must be Approved, Rejected or Paid")
	}
	if status == enums.ExpenseStatusRejected && (req.RejectionReason == nil || *req.RejectionReason == "") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Rejection reason is required when rejecting an expense")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	fields := map[string]any{
		"status":      status,
		"approved_by": approverID,
		"approved_at": now,
		"updated_at":  now,
	}
	if req.RejectionReason != nil {
		fields["rejection_reason"] = *req.RejectionReason
	}
	if req.Remarks != nil {
		fields["remarks"] = *req.Remarks
	}
	if status == enums.ExpenseStatusPaid {
		fields["paid_at"] = now
	}

	if err := s.repo.Updates(ctx, id, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update expense status")
	}
	return s.Get(ctx, id)
}

func (s *service) Statistics(ctx context.Context) (*Stats, error) {
	expenses, err := s.repo.ListMatched(ctx, ListFilter{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load expenses")
	}

	statusIndex := map[enums.ExpenseStatus]int{}
	typeIndex := map[string]int{}
	stats := &Stats{ByStatus: []StatusBucket{}, ByType: []TypeBucket{}}
	for _, expense := range expenses {
		if _, ok := statusIndex[expense.Status]; !ok {
			statusIndex[expense.Status] = len(stats.ByStatus)
			stats.ByStatus = append(stats.ByStatus, StatusBucket{Status: expense.Status})
		}
		bucket := &stats.ByStatus[statusIndex[expense.Status]]
		bucket.Count++
		bucket.Amount = bucket.Amount.Add(expense.Amount)

		if _, ok := typeIndex[expense.ExpenseType]; !ok {
			typeIndex[expense.ExpenseType] = len(stats.ByType)
			stats.ByType = append(stats.ByType, TypeBucket{ExpenseType: expense.ExpenseType})
		}
		typeBucket := &stats.ByType[typeIndex[expense.ExpenseType]]
		typeBucket.Count++
		typeBucket.Amount = typeBucket.Amount.Add(expense.Amount)
	}
	return stats, nil
}
