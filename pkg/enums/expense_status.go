package enums

import "fmt"

// ExpenseStatus tracks the expense approval workflow.
type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "Pending"
	ExpenseStatusApproved ExpenseStatus = "Approved"
	ExpenseStatusRejected ExpenseStatus = "Rejected"
	ExpenseStatusPaid     ExpenseStatus = "Paid"
)

var validExpenseStatuses = []ExpenseStatus{
	ExpenseStatusPending,
	ExpenseStatusApproved,
	ExpenseStatusRejected,
	ExpenseStatusPaid,
}

// String implements fmt.Stringer.
func (s ExpenseStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ExpenseStatus.
func (s ExpenseStatus) IsValid() bool {
	for _, candidate := range validExpenseStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseExpenseStatus converts raw input into an ExpenseStatus.
func ParseExpenseStatus(value string) (ExpenseStatus, error) {
	for _, candidate := range validExpenseStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid expense status %q", value)
}

// DecidedExpenseStatuses are the states an approver may move a pending expense into.
var DecidedExpenseStatuses = []ExpenseStatus{
	ExpenseStatusApproved,
	ExpenseStatusRejected,
	ExpenseStatusPaid,
}
