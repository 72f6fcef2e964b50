package models_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/dbtest"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/types"
)

func TestModelsAssignIDsAndRoundTrip(t *testing.T) {
	db := dbtest.Open(t)

	role := models.Role{Name: "planner", Permissions: types.StringArray{"deliveries:read", "deliveries:write"}}
	require.NoError(t, db.Create(&role).Error)
	assert.NotEqual(t, uuid.Nil, role.ID)

	var loaded models.Role
	require.NoError(t, db.First(&loaded, "id = ?", role.ID).Error)
	assert.Equal(t, role.Permissions, loaded.Permissions)

	audit := models.AuditLog{Action: "x", EntityType: "y", Details: types.JSONMap{"k": "v"}}
	require.NoError(t, db.Create(&audit).Error)
	var loadedAudit models.AuditLog
	require.NoError(t, db.First(&loadedAudit, "id = ?", audit.ID).Error)
	assert.Equal(t, "v", loadedAudit.Details["k"])
}

func TestDeliveryItemWeightHelpers(t *testing.T) {
	zero, weight := 0.0, 2.5
	item := models.DeliveryItem{PackagingOption: &models.PackagingOption{VariableWeight: true}}
	assert.True(t, item.RequiresWeight())
	assert.False(t, item.HasWeight())

	item.WeightKg = &zero
	assert.False(t, item.HasWeight())

	item.WeightKg = &weight
	assert.True(t, item.HasWeight())

	assert.False(t, models.DeliveryItem{}.RequiresWeight())
}

func TestDeliveryPlanCascadeDelete(t *testing.T) {
	db := dbtest.Open(t)
	seed := dbtest.SeedCatalog(t, db)

	plan := models.DeliveryPlan{
		Date:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Status: enums.DeliveryStatusDraft,
		Items:  []models.DeliveryItem{{ItemID: seed.Vanilla.ID, Quantity: 3}},
	}
	require.NoError(t, db.Create(&plan).Error)
	require.NoError(t, db.Select("Items").Delete(&plan).Error)

	var count int64
	require.NoError(t, db.Model(&models.DeliveryItem{}).Where("plan_id = ?", plan.ID).Count(&count).Error)
	assert.Zero(t, count)
}
