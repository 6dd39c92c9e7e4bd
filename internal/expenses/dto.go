package expenses

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
	"github.com/rahulmehta/fieldcrm-backend/pkg/enums"
	"github.com/rahulmehta/fieldcrm-backend/pkg/pagination"
)

type CreateExpenseRequest struct {
	ExpenseType   string          `json:"expenseType" validate:"required,min=2"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	ExpenseDate   time.Time       `json:"expenseDate" validate:"required"`
	Description   *string         `json:"description"`
	BillNumber    *string         `json:"billNumber"`
	AttachmentURL *string         `json:"attachmentUrl"`
}

type UpdateExpenseRequest struct {
	ExpenseType   *string          `json:"expenseType" validate:"omitempty,min=2"`
	Amount        *decimal.Decimal `json:"amount"`
	ExpenseDate   *time.Time       `json:"expenseDate"`
	Description   *string          `json:"description"`
	BillNumber    *string          `json:"billNumber"`
	AttachmentURL *string          `json:"attachmentUrl"`
}

type UpdateStatusRequest struct {
	Status          string  `json:"status" validate:"required,oneof=Approved Rejected Paid"`
	RejectionReason *string `json:"rejectionReason"`
	Remarks         *string `json:"remarks"`
}

type ListFilter struct {
	EmployeeID  *uuid.UUID
	Status      string
	ExpenseType string
	From        *time.Time
	To          *time.Time
	Pagination  pagination.Params
}

// Summary totals the matched expenses by workflow state.
type Summary struct {
	Total          decimal.Decimal `json:"total"`
	PendingAmount  decimal.Decimal `json:"pendingAmount"`
	ApprovedAmount decimal.Decimal `json:"approvedAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
}

type ListResult struct {
	Expenses   []models.Expense  `json:"expenses"`
	Summary    Summary           `json:"summary"`
	Pagination pagination.Result `json:"pagination"`
}

type StatusBucket struct {
	Status enums.ExpenseStatus `json:"status"`
	Count  int64               `json:"count"`
	Amount decimal.Decimal     `json:"amount"`
}

type TypeBucket struct {
	ExpenseType string          `json:"expenseType"`
	Count       int64           `json:"count"`
	Amount      decimal.Decimal `json:"amount"`
}

type Stats struct {
	ByStatus []StatusBucket `json:"byStatus"`
	ByType   []TypeBucket   `json:"byType"`
}
