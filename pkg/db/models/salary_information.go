package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalaryInformation holds one salary structure per employee; repeated saves
// update the existing row.
type SalaryInformation struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID       uuid.UUID       `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_salary_information_employee"`
	BasicSalary      decimal.Decimal `gorm:"column:basic_salary;type:numeric(12,2);not null"`
	HRA              decimal.Decimal `gorm:"column:hra;type:numeric(12,2);not null;default:0"`
	TravelAllowance  decimal.Decimal `gorm:"column:travel_allowance;type:numeric(12,2);not null;default:0"`
	DailyAllowance   decimal.Decimal `gorm:"column:daily_allowance;type:numeric(12,2);not null;default:0"`
	MedicalAllowance decimal.Decimal `gorm:"column:medical_allowance;type:numeric(12,2);not null;default:0"`
	SpecialAllowance decimal.Decimal `gorm:"column:special_allowance;type:numeric(12,2);not null;default:0"`
	OtherAllowances  decimal.Decimal `gorm:"column:other_allowances;type:numeric(12,2);not null;default:0"`
	ProvidentFund    decimal.Decimal `gorm:"column:provident_fund;type:numeric(12,2);not null;default:0"`
	ProfessionalTax  decimal.Decimal `gorm:"column:professional_tax;type:numeric(12,2);not null;default:0"`
	IncomeTax        decimal.Decimal `gorm:"column:income_tax;type:numeric(12,2);not null;default:0"`
	OtherDeductions  decimal.Decimal `gorm:"column:other_deductions;type:numeric(12,2);not null;default:0"`
	EffectiveFrom    time.Time       `gorm:"column:effective_from;not null"`
	EffectiveTo      *time.Time      `gorm:"column:effective_to"`
	Currency         string          `gorm:"column:currency;not null;default:'INR'"`
	PaymentFrequency string          `gorm:"column:payment_frequency;not null;default:'Monthly'"`
	BankName         *string         `gorm:"column:bank_name"`
	AccountNumber    *string         `gorm:"column:account_number"`
	IFSCCode         *string         `gorm:"column:ifsc_code"`
	PANNumber        *string         `gorm:"column:pan_number"`
	Remarks          *string         `gorm:"column:remarks"`
	IsActive         bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// Gross returns basic salary plus every allowance.
func (s SalaryInformation) Gross() decimal.Decimal {
	return s.BasicSalary.
		Add(s.HRA).
		Add(s.TravelAllowance).
		Add(s.DailyAllowance).
		Add(s.MedicalAllowance).
		Add(s.SpecialAllowance).
		Add(s.OtherAllowances)
}

// Deductions returns the sum of every deduction component.
func (s SalaryInformation) Deductions() decimal.Decimal {
	return s.ProvidentFund.
		Add(s.ProfessionalTax).
		Add(s.IncomeTax).
		Add(s.OtherDeductions)
}

// Net returns gross minus deductions.
func (s SalaryInformation) Net() decimal.Decimal {
	return s.Gross().Sub(s.Deductions())
}
