package production

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/dbtest"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
)

func TestClampDays(t *testing.T) {
	cases := map[int]int{-3: 1, 0: 1, 1: 1, 7: 7, 60: 60, 61: 60, 365: 60}
	for in, want := range cases {
		if got := ClampDays(in); got != want {
			t.Fatalf("ClampDays(%d) = %d, want %d", in, got, want)
		}
	}
}

func newTestService(t *testing.T, conn *gorm.DB, now time.Time, loc *time.Location) *service {
	t.Helper()
	svc, err := NewService(NewRepository(conn), loc)
	require.NoError(t, err)
	impl := svc.(*service)
	impl.now = func() time.Time { return now }
	return impl
}

func seedPlan(t *testing.T, conn *gorm.DB, date time.Time, item models.Item, qty float64) {
	t.Helper()
	plan := models.DeliveryPlan{
		Date:   date,
		Status: enums.DeliveryStatusConfirmed,
		Items:  []models.DeliveryItem{{ItemID: item.ID, Quantity: qty}},
	}
	require.NoError(t, conn.Create(&plan).Error)
}

func TestPlanForDaysWindow(t *testing.T) {
	conn := dbtest.Open(t)
	catalog := dbtest.SeedCatalog(t, conn)
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	// 23:30 UTC on Feb 28 is already Mar 1 in Rome.
	now := time.Date(2026, 2, 28, 23, 30, 0, 0, time.UTC)
	svc := newTestService(t, conn, now, rome)

	seedPlan(t, conn, day(1), catalog.Vanilla, 3)
	seedPlan(t, conn, day(3), catalog.Vanilla, 5)
	seedPlan(t, conn, day(3), catalog.Cones, 50)
	seedPlan(t, conn, day(8), catalog.Vanilla, 100)
	seedPlan(t, conn, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), catalog.Chocolate, 9)

	report, err := svc.PlanForDays(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, report.ProductionPlan, 1)
	assert.Equal(t, "Vanilla", report.ProductionPlan[0].FlavorName)
	assert.Equal(t, 8.0, report.ProductionPlan[0].TotalUnits)
	assert.Len(t, report.ProductionPlan[0].Deliveries, 2)
	assert.Equal(t, 3, report.Summary.UpcomingDeliveryCount)

	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, rome), report.DateRange.Start)
	assert.Equal(t, time.Date(2026, 3, 7, 23, 59, 59, int(999*time.Millisecond), rome), report.DateRange.End)

	one, err := svc.PlanForDays(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, one.Summary.UpcomingDeliveryCount)
}

func TestPlanForRangeValidation(t *testing.T) {
	svc := newTestService(t, dbtest.Open(t), time.Now(), time.UTC)
	ctx := context.Background()

	_, err := svc.PlanForRange(ctx, "2026-03-05", "2026-03-01")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.PlanForRange(ctx, "2026-03-05", "")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.PlanForRange(ctx, "March", "2026-03-05")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	report, err := svc.PlanForRange(ctx, "2026-03-05", "2026-03-05")
	require.NoError(t, err)
	assert.Empty(t, report.ProductionPlan)
}

func TestSnapshotsPreferFactoryMaster(t *testing.T) {
	conn := dbtest.Open(t)
	catalog := dbtest.SeedCatalog(t, conn)

	factory := models.Store{Name: "Factory", IsFactory: true, IsActive: true}
	centro := models.Store{Name: "Centro", IsActive: true}
	empty := models.Store{Name: "Empty", IsActive: true}
	require.NoError(t, conn.Create(&factory).Error)
	require.NoError(t, conn.Create(&centro).Error)
	require.NoError(t, conn.Create(&empty).Error)

	master := time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 25, 8, 0, 0, 0, time.UTC)
	centroDate := time.Date(2026, 2, 26, 8, 0, 0, 0, time.UTC)
	stocktakes := []models.Stocktake{
		{StoreID: factory.ID, Date: master, IsMaster: true, Items: []models.StocktakeItem{{ItemID: catalog.Vanilla.ID, Quantity: 30}}},
		{StoreID: factory.ID, Date: newer, Items: []models.StocktakeItem{{ItemID: catalog.Vanilla.ID, Quantity: 2}}},
		{StoreID: centro.ID, Date: master, Items: []models.StocktakeItem{{ItemID: catalog.Vanilla.ID, Quantity: 99}}},
		{StoreID: centro.ID, Date: centroDate, Items: []models.StocktakeItem{{ItemID: catalog.Vanilla.ID, Quantity: 4}}},
	}
	for i := range stocktakes {
		require.NoError(t, conn.Create(&stocktakes[i]).Error)
	}
	target := 50.0
	require.NoError(t, conn.Create(&models.StoreInventory{StoreID: centro.ID, ItemID: catalog.Vanilla.ID, TargetQuantity: &target}).Error)

	svc := newTestService(t, conn, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), time.UTC)
	report, err := svc.PlanForDays(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, report.Inventory, 1)
	van := report.Inventory[0]
	assert.Equal(t, 34.0, van.TotalQuantity)
	require.Len(t, van.Stocktakes, 2)
	for _, c := range van.Stocktakes {
		assert.NotEqual(t, "Empty", c.StoreName)
	}
	assert.True(t, van.LastUpdated.Equal(centroDate))
	require.NotNil(t, van.TargetThreshold)
	assert.Equal(t, 50.0, *van.TargetThreshold)
}
