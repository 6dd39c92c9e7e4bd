package salaries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
	"github.com/rahulmehta/fieldcrm-backend/pkg/pagination"
)

type SaveSalaryRequest struct {
	EmployeeID       uuid.UUID       `json:"employeeId" validate:"required"`
	BasicSalary      decimal.Decimal `json:"basicSalary" validate:"required"`
	HRA              decimal.Decimal `json:"hra"`
	TravelAllowance  decimal.Decimal `json:"travelAllowance"`
	DailyAllowance   decimal.Decimal `json:"dailyAllowance"`
	MedicalAllowance decimal.Decimal `json:"medicalAllowance"`
	SpecialAllowance decimal.Decimal `json:"specialAllowance"`
	OtherAllowances  decimal.Decimal `json:"otherAllowances"`
	ProvidentFund    decimal.Decimal `json:"providentFund"`
	ProfessionalTax  decimal.Decimal `json:"professionalTax"`
	IncomeTax        decimal.Decimal `json:"incomeTax"`
	OtherDeductions  decimal.Decimal `json:"otherDeductions"`
	EffectiveFrom    *time.Time      `json:"effectiveFrom"`
	EffectiveTo      *time.Time      `json:"effectiveTo"`
	Currency         string          `json:"currency"`
	PaymentFrequency string          `json:"paymentFrequency"`
	BankName         *string         `json:"bankName"`
	AccountNumber    *string         `json:"accountNumber"`
	IFSCCode         *string         `json:"ifscCode"`
	PANNumber        *string         `json:"panNumber"`
	Remarks          *string         `json:"remarks"`
}

type ListFilter struct {
	IsActive         *bool
	PaymentFrequency string
	Pagination       pagination.Params
}

type ListResult struct {
	Salaries   []SalaryView      `json:"salaries"`
	Pagination pagination.Result `json:"pagination"`
}

// SalaryView is the persisted record plus the computed totals.
type SalaryView struct {
	models.SalaryInformation
	GrossSalary     decimal.Decimal `json:"grossSalary"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	NetSalary       decimal.Decimal `json:"netSalary"`
}

func viewOf(record models.SalaryInformation) SalaryView {
	return SalaryView{
		SalaryInformation: record,
		GrossSalary:       record.Gross(),
		TotalDeductions:   record.Deductions(),
		NetSalary:         record.Net(),
	}
}

type Stats struct {
	Count            int64           `json:"count"`
	TotalGross       decimal.Decimal `json:"totalGross"`
	TotalDeductions  decimal.Decimal `json:"totalDeductions"`
	TotalNet         decimal.Decimal `json:"totalNet"`
	AverageGross     decimal.Decimal `json:"averageGross"`
	AverageNet       decimal.Decimal `json:"averageNet"`
}
