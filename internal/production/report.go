package production

import (
	"time"

	"github.com/google/uuid"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
)

// Report is the production worklist for a date window.
type Report struct {
	ProductionPlan []FlavorDemand  `json:"productionPlan"`
	Inventory      []InventoryLine `json:"inventory"`
	DateRange      DateRange       `json:"dateRange"`
	Summary        Summary         `json:"summary"`
}

// FlavorDemand is the scheduled demand for one gelato flavor.
type FlavorDemand struct {
	FlavorName string        `json:"flavorName"`
	TotalUnits float64       `json:"totalUnits"`
	Deliveries []DemandEntry `json:"deliveries"`
}

type DemandEntry struct {
	Date        string               `json:"date"`
	Destination string               `json:"destination"`
	Quantity    float64              `json:"quantity"`
	Status      enums.DeliveryStatus `json:"status"`
}

// InventoryLine is the on-hand total of one item across the latest stocktakes.
type InventoryLine struct {
	ItemID          uuid.UUID               `json:"itemId"`
	ItemName        string                  `json:"itemName"`
	Category        string                  `json:"category"`
	Unit            string                  `json:"unit"`
	TotalQuantity   float64                 `json:"totalQuantity"`
	LastUpdated     time.Time               `json:"lastUpdated"`
	Stocktakes      []StocktakeContribution `json:"stocktakes"`
	TargetThreshold *float64                `json:"targetThreshold,omitempty"`
}

type StocktakeContribution struct {
	StoreName string    `json:"storeName"`
	Quantity  float64   `json:"quantity"`
	Date      time.Time `json:"date"`
}

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Summary struct {
	TotalFlavors          int     `json:"totalFlavors"`
	TotalUnits            float64 `json:"totalUnits"`
	UpcomingDeliveryCount int     `json:"upcomingDeliveryCount"`
}

// ItemsBelowTarget counts inventory lines whose total is under their threshold.
func (r *Report) ItemsBelowTarget() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, line := range r.Inventory {
		if line.TargetThreshold != nil && line.TotalQuantity < *line.TargetThreshold {
			n++
		}
	}
	return n
}
