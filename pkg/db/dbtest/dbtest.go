// Package dbtest opens isolated in-memory sqlite databases with the full
// schema for repository and service tests.
package dbtest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
)

var seq atomic.Int64

// Open returns a fresh migrated database private to the test.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}

// Catalog is the common fixture set.
type Catalog struct {
	Flavors   models.Category
	Supplies  models.Category
	Vanilla   models.Item
	Chocolate models.Item
	Cones     models.Item
	Tub       models.PackagingOption
	Tray      models.PackagingOption
}

// SeedCatalog inserts two categories, three items and two packaging options,
// one of which is variable-weight.
func SeedCatalog(t testing.TB, db *gorm.DB) Catalog {
	t.Helper()
	c := Catalog{
		Flavors:  models.Category{Name: models.GelatoFlavorsCategory},
		Supplies: models.Category{Name: "Supplies"},
	}
	mustCreate(t, db, &c.Flavors)
	mustCreate(t, db, &c.Supplies)

	c.Vanilla = models.Item{Name: "Vanilla", CategoryID: c.Flavors.ID, Unit: "tub", IsActive: true}
	c.Chocolate = models.Item{Name: "Chocolate", CategoryID: c.Flavors.ID, Unit: "tub", IsActive: true}
	c.Cones = models.Item{Name: "Cones", CategoryID: c.Supplies.ID, Unit: "box", IsActive: true}
	mustCreate(t, db, &c.Vanilla)
	mustCreate(t, db, &c.Chocolate)
	mustCreate(t, db, &c.Cones)

	c.Tub = models.PackagingOption{Name: "5L tub", Type: "tub", AllowedForStores: true, AllowedForCustomers: true, IsActive: true}
	c.Tray = models.PackagingOption{Name: "Gelato tray", Type: "tray", VariableWeight: true, AllowedForStores: true, IsActive: true}
	mustCreate(t, db, &c.Tub)
	mustCreate(t, db, &c.Tray)
	return c
}

func mustCreate(t testing.TB, db *gorm.DB, value any) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("seed %T: %v", value, err)
	}
}
