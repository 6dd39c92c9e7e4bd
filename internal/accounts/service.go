package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db"
	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
	pkgerrors "github.com/rahulmehta/fieldcrm-backend/pkg/errors"
	"github.com/rahulmehta/fieldcrm-backend/pkg/logger"
	"github.com/rahulmehta/fieldcrm-backend/pkg/pagination"
)

const recentAccountsLimit = 10

type Service interface {
	Create(ctx context.Context, req CreateAccountRequest) (*models.Account, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Account, error)
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateAccountRequest) (*models.Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Statistics(ctx context.Context) (*Stats, error)
	BulkAssign(ctx context.Context, req BulkAssignRequest) (int64, error)
}

type repository interface {
	Create(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	List(ctx context.Context, filter ListFilter) ([]models.Account, int64, error)
	Updates(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	BulkAssign(ctx context.Context, ids []uuid.UUID, assignedTo uuid.UUID) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountByColumn(ctx context.Context, column string) (map[string]int64, error)
	Recent(ctx context.Context, limit int) ([]models.Account, error)
}

type ServiceParams struct {
	Repo      repository
	Sequencer codeSequencer
	Logger    *logger.Logger
}

type service struct {
	repo      repository
	sequencer codeSequencer
	logg      *logger.Logger
	now       func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, errors.New("accounts: repo is required")
	}
	if params.Sequencer == nil {
		return nil, errors.New("accounts: sequencer is required")
	}
	if params.Logger == nil {
		return nil, errors.New("accounts: logger is required")
	}
	return &service{
		repo:      params.Repo,
		sequencer: params.Sequencer,
		logg:      params.Logger,
		now:       time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, req CreateAccountRequest) (*models.Account, error) {
	now := s.now().UTC()
	sequence, err := s.sequencer.NextSequence(ctx, now.Format("20060102"))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "allocate account code")
	}

	account := req.ToModel()
	account.AccountCode = formatAccountCode(now, sequence)
	if err := s.repo.Create(ctx, account); err != nil {
		if db.IsUniqueViolation(err, "uq_accounts_code") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Account code collision, please retry")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create account")
	}
	return account, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find account")
	}
	return account, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	accounts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list accounts")
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	return &ListResult{
		Accounts:   accounts,
		Pagination: pagination.NewResult(filter.Pagination, total),
	}, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateAccountRequest) (*models.Account, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.PersonName != nil {
		fields["person_name"] = *req.PersonName
	}
	if req.DateOfBirth != nil {
		fields["date_of_birth"] = *req.DateOfBirth
	}
	if req.ContactNumber != nil {
		fields["contact_number"] = *req.ContactNumber
	}
	if req.BusinessType != nil {
		fields["business_type"] = *req.BusinessType
	}
	if req.CustomerStage != nil {
		fields["customer_stage"] = *req.CustomerStage
	}
	if req.FunnelStage != nil {
		fields["funnel_stage"] = *req.FunnelStage
	}
	if req.AssignedToID != nil {
		fields["assigned_to_id"] = *req.AssignedToID
	}
	if req.AreaID != nil {
		fields["area_id"] = *req.AreaID
	}
	if len(fields) == 0 {
		return s.Get(ctx, id)
	}
	fields["updated_at"] = s.now().UTC()

	if err := s.repo.Updates(ctx, id, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update account")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete account")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Account not found")
	}
	return nil
}

func (s *service) Statistics(ctx context.Context) (*Stats, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count accounts")
	}
	byCustomer, err := s.repo.CountByColumn(ctx, "customer_stage")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "accounts by customer stage")
	}
	byFunnel, err := s.repo.CountByColumn(ctx, "funnel_stage")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "accounts by funnel stage")
	}
	recent, err := s.repo.Recent(ctx, recentAccountsLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recent accounts")
	}
	if recent == nil {
		recent = []models.Account{}
	}
	return &Stats{
		Total:           total,
		ByCustomerStage: byCustomer,
		ByFunnelStage:   byFunnel,
		Recent:          recent,
	}, nil
}

func (s *service) BulkAssign(ctx context.Context, req BulkAssignRequest) (int64, error) {
	affected, err := s.repo.BulkAssign(ctx, req.AccountIDs, req.AssignedToID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bulk assign accounts")
	}
	return affected, nil
}
