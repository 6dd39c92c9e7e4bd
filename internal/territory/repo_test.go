package territory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rahulmehta/fieldcrm-backend/pkg/db/models"
	"github.com/rahulmehta/fieldcrm-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, conn.Exec(`CREATE TABLE task_assignments (
		id TEXT PRIMARY KEY,
		salesman_id TEXT NOT NULL,
		salesman_name TEXT NOT NULL,
		pincode TEXT NOT NULL,
		country TEXT, state TEXT, district TEXT, city TEXT,
		areas TEXT NOT NULL,
		business_types TEXT,
		total_businesses INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME, updated_at DATETIME,
		CONSTRAINT uq_task_assignments_salesman_pincode UNIQUE (salesman_id, pincode)
	)`).Error)
	require.NoError(t, conn.Exec(`CREATE TABLE shops (
		id TEXT PRIMARY KEY,
		place_id TEXT UNIQUE,
		name TEXT NOT NULL,
		business_type TEXT NOT NULL,
		address TEXT,
		pincode TEXT NOT NULL,
		area TEXT, city TEXT, state TEXT, country TEXT,
		latitude REAL, longitude REAL,
		phone_number TEXT,
		rating REAL,
		stage TEXT NOT NULL DEFAULT 'new',
		assigned_to TEXT,
		notes TEXT,
		last_contact_date DATETIME,
		created_at DATETIME, updated_at DATETIME
	)`).Error)
	return conn
}

func newAssignment(salesmanID uuid.UUID, pincode string, areas ...string) *models.TaskAssignment {
	return &models.TaskAssignment{
		ID:           uuid.New(),
		SalesmanID:   salesmanID,
		SalesmanName: "Ravi Kumar",
		Pincode:      pincode,
		Areas:        pq.StringArray(areas),
	}
}

func newShop(placeID *string, pincode string, assignedTo *uuid.UUID) models.Shop {
	return models.Shop{
		ID:           uuid.New(),
		PlaceID:      placeID,
		Name:         "Sharma Stores",
		BusinessType: "grocery",
		Pincode:      pincode,
		Stage:        enums.ShopStageNew,
		AssignedTo:   assignedTo,
	}
}

func TestUpsertAssignmentReplacesInPlace(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()
	salesman := uuid.New()

	require.NoError(t, repo.UpsertAssignment(ctx, newAssignment(salesman, "682001", "Fort Kochi")))

	second := newAssignment(salesman, "682001", "Mattancherry", "Willingdon Island")
	second.TotalBusinesses = 12
	require.NoError(t, repo.UpsertAssignment(ctx, second))

	assignments, err := repo.ListAssignmentsBySalesman(ctx, salesman)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	require.Equal(t, []string{"Mattancherry", "Willingdon Island"}, []string(assignments[0].Areas))
	require.Equal(t, 12, assignments[0].TotalBusinesses)
}

func TestUpsertAssignmentDistinctPincodes(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()
	salesman := uuid.New()

	require.NoError(t, repo.UpsertAssignment(ctx, newAssignment(salesman, "682001", "Fort Kochi")))
	require.NoError(t, repo.UpsertAssignment(ctx, newAssignment(salesman, "682002", "Ernakulam South")))

	assignments, err := repo.ListAssignmentsBySalesman(ctx, salesman)
	require.NoError(t, err)
	require.Len(t, assignments, 2)
}

func TestSaveShopsIdempotentByPlaceID(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	salesman := uuid.New()

	require.NoError(t, repo.UpsertAssignment(ctx, newAssignment(salesman, "682001", "Fort Kochi")))

	placeID := "ChIJplace1"
	first, _, err := repo.SaveShops(ctx, []models.Shop{newShop(&placeID, "682001", &salesman)})
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, counts, err := repo.SaveShops(ctx, []models.Shop{newShop(&placeID, "682001", &salesman)})
	require.NoError(t, err)
	require.Len(t, second, 1)
	require.Equal(t, first[0].ID, second[0].ID)

	var total int64
	require.NoError(t, conn.Model(&models.Shop{}).Count(&total).Error)
	require.EqualValues(t, 1, total)
	require.Len(t, counts, 1)
	require.EqualValues(t, 1, counts[0].TotalBusinesses)
}

func TestSaveShopsKeepsOwnerOnUnownedResave(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	salesman := uuid.New()

	placeID := "ChIJplace1"
	_, _, err := repo.SaveShops(ctx, []models.Shop{newShop(&placeID, "682001", &salesman)})
	require.NoError(t, err)

	resaved, _, err := repo.SaveShops(ctx, []models.Shop{newShop(&placeID, "682001", nil)})
	require.NoError(t, err)
	require.Len(t, resaved, 1)
	require.NotNil(t, resaved[0].AssignedTo)
	require.Equal(t, salesman, *resaved[0].AssignedTo)

	replacement := uuid.New()
	reassigned, _, err := repo.SaveShops(ctx, []models.Shop{newShop(&placeID, "682001", &replacement)})
	require.NoError(t, err)
	require.NotNil(t, reassigned[0].AssignedTo)
	require.Equal(t, replacement, *reassigned[0].AssignedTo)
}

func TestSaveShopsWithoutPlaceIDAlwaysInserts(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	salesman := uuid.New()

	for i := 0; i < 2; i++ {
		_, _, err := repo.SaveShops(ctx, []models.Shop{newShop(nil, "682001", &salesman)})
		require.NoError(t, err)
	}

	var total int64
	require.NoError(t, conn.Model(&models.Shop{}).Count(&total).Error)
	require.EqualValues(t, 2, total)
}

func TestSaveShopsRecountsAssignmentTotals(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()
	salesman := uuid.New()

	stale := newAssignment(salesman, "682001", "Fort Kochi")
	stale.TotalBusinesses = 99
	require.NoError(t, repo.UpsertAssignment(ctx, stale))

	placeA := "ChIJplaceA"
	placeB := "ChIJplaceB"
	_, counts, err := repo.SaveShops(ctx, []models.Shop{
		newShop(&placeA, "682001", &salesman),
		newShop(&placeB, "682001", &salesman),
	})
	require.NoError(t, err)
	require.Len(t, counts, 1)
	require.EqualValues(t, 2, counts[0].TotalBusinesses)

	assignment, err := repo.FindAssignment(ctx, salesman, "682001")
	require.NoError(t, err)
	require.Equal(t, 2, assignment.TotalBusinesses)
}

func TestUpdateShopStage(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()
	salesman := uuid.New()

	saved, _, err := repo.SaveShops(ctx, []models.Shop{newShop(nil, "682001", &salesman)})
	require.NoError(t, err)

	affected, err := repo.UpdateShop(ctx, saved[0].ID, map[string]any{"stage": enums.ShopStageConverted})
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	shops, err := repo.ListShops(ctx, ShopFilter{Stage: "converted"})
	require.NoError(t, err)
	require.Len(t, shops, 1)
}
