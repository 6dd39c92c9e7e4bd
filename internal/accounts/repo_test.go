package accounts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
	"github.com/rahulmehta/fieldcrm-backend/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, conn.Exec(`CREATE TABLE accounts (
		id TEXT PRIMARY KEY,
		account_code TEXT NOT NULL UNIQUE,
		person_name TEXT NOT NULL,
		date_of_birth DATETIME,
		contact_number TEXT NOT NULL,
		business_type TEXT,
		customer_stage TEXT,
		funnel_stage TEXT,
		assigned_to_id TEXT,
		area_id INTEGER,
		created_at DATETIME, updated_at DATETIME
	)`).Error)
	return conn
}

func newAccount(code, name, phone string) *models.Account {
	return &models.Account{
		ID:            uuid.New(),
		AccountCode:   code,
		PersonName:    name,
		ContactNumber: phone,
	}
}

func TestDuplicateContactNumbersAllowed(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newAccount("ACC26080001", "Ravi Kumar", "9876543210")))
	require.NoError(t, repo.Create(ctx, newAccount("ACC26080002", "Sita Kumar", "9876543210")))

	accounts, total, err := repo.List(ctx, ListFilter{Search: "9876543210"})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, accounts, 2)
}

func TestAccountCodeUnique(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newAccount("ACC26080001", "Ravi Kumar", "9876543210")))
	require.Error(t, repo.Create(ctx, newAccount("ACC26080001", "Sita Kumar", "9998887770")))
}

func TestListFiltersByStageAndAssignee(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	salesman := uuid.New()
	stage := "prospect"

	first := newAccount("ACC26080001", "Ravi Kumar", "9876543210")
	first.CustomerStage = &stage
	first.AssignedToID = &salesman
	require.NoError(t, repo.Create(ctx, first))

	second := newAccount("ACC26080002", "Sita Kumar", "9998887770")
	require.NoError(t, repo.Create(ctx, second))

	accounts, total, err := repo.List(ctx, ListFilter{
		CustomerStage: "prospect",
		AssignedToID:  &salesman,
		Pagination:    pagination.Params{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Ravi Kumar", accounts[0].PersonName)
}

func TestBulkAssign(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	first := newAccount("ACC26080001", "Ravi Kumar", "9876543210")
	second := newAccount("ACC26080002", "Sita Kumar", "9998887770")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	salesman := uuid.New()
	affected, err := repo.BulkAssign(ctx, []uuid.UUID{first.ID, second.ID}, salesman)
	require.NoError(t, err)
	require.EqualValues(t, 2, affected)

	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AssignedToID)
	require.Equal(t, salesman, *got.AssignedToID)
}

func TestCountByColumn(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	prospect := "prospect"
	customer := "customer"
	for i, stage := range []*string{&prospect, &prospect, &customer, nil} {
		account := newAccount("ACC2608000"+string(rune('1'+i)), "Person", "9876543210")
		account.CustomerStage = stage
		require.NoError(t, repo.Create(ctx, account))
	}

	counts, err := repo.CountByColumn(ctx, "customer_stage")
	require.NoError(t, err)
	require.EqualValues(t, 2, counts["prospect"])
	require.EqualValues(t, 1, counts["customer"])
	require.Len(t, counts, 2)
}
