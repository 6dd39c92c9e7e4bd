package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rahulmehta/fieldcrm-backend/pkg/enums"
)

// Expense is a reimbursement claim raised by an employee and decided by an
// approver.
type Expense struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey"`
	EmployeeID      uuid.UUID           `gorm:"column:employee_id;type:uuid;not null;index"`
	ExpenseType     string              `gorm:"column:expense_type;not null"`
	Amount          decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	ExpenseDate     time.Time           `gorm:"column:expense_date;not null"`
	Description     *string             `gorm:"column:description"`
	BillNumber      *string             `gorm:"column:bill_number"`
	AttachmentURL   *string             `gorm:"column:attachment_url"`
	Status          enums.ExpenseStatus `gorm:"column:status;not null;default:'Pending';index"`
	ApprovedBy      *uuid.UUID          `gorm:"column:approved_by;type:uuid"`
	ApprovedAt      *time.Time          `gorm:"column:approved_at"`
	RejectionReason *string             `gorm:"column:rejection_reason"`
	Remarks         *string             `gorm:"column:remarks"`
	PaidAt          *time.Time          `gorm:"column:paid_at"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
