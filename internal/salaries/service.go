package salaries

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
	pkgerrors "github.com/rahulmehta/fieldcrm-backend/pkg/errors"
	"github.com/rahulmehta/fieldcrm-backend/pkg/logger"
	"github.com/rahulmehta/fieldcrm-backend/pkg/pagination"
)

type Service interface {
	Save(ctx context.Context, req SaveSalaryRequest) (*SalaryView, error)
	GetByEmployee(ctx context.Context, employeeID uuid.UUID) (*SalaryView, error)
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	Statistics(ctx context.Context) (*Stats, error)
	DeleteByEmployee(ctx context.Context, employeeID uuid.UUID) error
}

type repository interface {
	Upsert(ctx context.Context, record *models.SalaryInformation) error
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) (*models.SalaryInformation, error)
	List(ctx context.Context, filter ListFilter) ([]models.SalaryInformation, int64, error)
	ListAll(ctx context.Context) ([]models.SalaryInformation, error)
	DeleteByEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error)
}

type employeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type ServiceParams struct {
	Repo      repository
	Employees employeeRepository
	Logger    *logger.Logger
}

type service struct {
	repo      repository
	employees employeeRepository
	logg      *logger.Logger
	now       func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, errors.New("salaries: repo is required")
	}
	if params.Employees == nil {
		return nil, errors.New("salaries: employee repo is required")
	}
	if params.Logger == nil {
		return nil, errors.New("salaries: logger is required")
	}
	return &service{
		repo:      params.Repo,
		employees: params.Employees,
		logg:      params.Logger,
		now:       time.Now,
	}, nil
}

func (s *service) Save(ctx context.Context, req SaveSalaryRequest) (*SalaryView, error) {
	if req.BasicSalary.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Basic salary cannot be negative")
	}
	if _, err := s.employees.FindByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Employee not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find employee")
	}

	now := s.now().UTC()
	effectiveFrom := now
	if req.EffectiveFrom != nil {
		effectiveFrom = *req.EffectiveFrom
	}
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	frequency := req.PaymentFrequency
	if frequency == "" {
		frequency = "Monthly"
	}

	record := &models.SalaryInformation{
		ID:               uuid.New(),
		EmployeeID:       req.EmployeeID,
		BasicSalary:      req.BasicSalary,
		HRA:              req.HRA,
		TravelAllowance:  req.TravelAllowance,
		DailyAllowance:   req.DailyAllowance,
		MedicalAllowance: req.MedicalAllowance,
		SpecialAllowance: req.SpecialAllowance,
		OtherAllowances:  req.OtherAllowances,
		ProvidentFund:    req.ProvidentFund,
		ProfessionalTax:  req.ProfessionalTax,
		IncomeTax:        req.IncomeTax,
		OtherDeductions:  req.OtherDeductions,
		EffectiveFrom:    effectiveFrom,
		EffectiveTo:      req.EffectiveTo,
		Currency:         currency,
		PaymentFrequency: frequency,
		BankName:         req.BankName,
		AccountNumber:    req.AccountNumber,
		IFSCCode:         req.IFSCCode,
		PANNumber:        req.PANNumber,
		Remarks:          req.Remarks,
		IsActive:         true,
		UpdatedAt:        now,
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save salary")
	}

	saved, err := s.repo.FindByEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload salary")
	}
	view := viewOf(*saved)
	return &view, nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID uuid.UUID) (*SalaryView, error) {
	record, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Salary information not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find salary")
	}
	view := viewOf(*record)
	return &view, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list salaries")
	}
	views := make([]SalaryView, 0, len(records))
	for _, record := range records {
		views = append(views, viewOf(record))
	}
	return &ListResult{
		Salaries:   views,
		Pagination: pagination.NewResult(filter.Pagination, total),
	}, nil
}

func (s *service) Statistics(ctx context.Context) (*Stats, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load salaries")
	}

	stats := &Stats{Count: int64(len(records))}
	for _, record := range records {
		stats.TotalGross = stats.TotalGross.Add(record.Gross())
		stats.TotalDeductions = stats.TotalDeductions.Add(record.Deductions())
		stats.TotalNet = stats.TotalNet.Add(record.Net())
	}
	if stats.Count > 0 {
		divisor := decimal.NewFromInt(stats.Count)
		stats.AverageGross = stats.TotalGross.Div(divisor).Round(2)
		stats.AverageNet = stats.TotalNet.Div(divisor).Round(2)
	}
	return stats, nil
}

func (s *service) DeleteByEmployee(ctx context.Context, employeeID uuid.UUID) error {
	affected, err := s.repo.DeleteByEmployee(ctx, employeeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete salary")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Salary information not found")
	}
	return nil
}
