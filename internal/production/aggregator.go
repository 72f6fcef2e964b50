package production

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/dates"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
)

const (
	unknownDestination = "Unknown"
	uncategorized      = "Uncategorized"
)

// Snapshot is the stocktake chosen to represent a store's current stock.
type Snapshot struct {
	Store     models.Store
	Stocktake models.Stocktake
}

// Input is everything Aggregate reads. Plans must be ordered by date.
type Input struct {
	Plans     []models.DeliveryPlan
	Snapshots []Snapshot
	Targets   []models.StoreInventory
	Start     time.Time
	End       time.Time
}

type flavorAcc struct {
	total      decimal.Decimal
	deliveries []DemandEntry
}

type inventoryAcc struct {
	line     InventoryLine
	total    decimal.Decimal
	byStore  map[uuid.UUID]int
	storeQty []decimal.Decimal
}

// Aggregate builds the production report. It performs no I/O.
func Aggregate(in Input) *Report {
	demand, grand := aggregateDemand(in.Plans)
	inventory := aggregateInventory(in.Snapshots)
	attachThresholds(inventory, in.Targets)

	return &Report{
		ProductionPlan: demand,
		Inventory:      inventory,
		DateRange:      DateRange{Start: in.Start, End: in.End},
		Summary: Summary{
			TotalFlavors:          len(demand),
			TotalUnits:            grand.InexactFloat64(),
			UpcomingDeliveryCount: len(in.Plans),
		},
	}
}

func aggregateDemand(plans []models.DeliveryPlan) ([]FlavorDemand, decimal.Decimal) {
	byFlavor := map[string]*flavorAcc{}
	for _, plan := range plans {
		destination := destinationOf(plan)
		for _, item := range plan.Items {
			if !isGelatoFlavor(item.Item) {
				continue
			}
			name := item.Item.Name
			acc, ok := byFlavor[name]
			if !ok {
				acc = &flavorAcc{total: decimal.Zero, deliveries: []DemandEntry{}}
				byFlavor[name] = acc
			}
			acc.total = acc.total.Add(decimal.NewFromFloat(item.Quantity))
			acc.deliveries = append(acc.deliveries, DemandEntry{
				Date:        dates.Format(plan.Date),
				Destination: destination,
				Quantity:    item.Quantity,
				Status:      plan.Status,
			})
		}
	}

	grand := decimal.Zero
	out := make([]FlavorDemand, 0, len(byFlavor))
	for name, acc := range byFlavor {
		grand = grand.Add(acc.total)
		out = append(out, FlavorDemand{
			FlavorName: name,
			TotalUnits: acc.total.InexactFloat64(),
			Deliveries: acc.deliveries,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FlavorName < out[j].FlavorName })
	return out, grand
}

func isGelatoFlavor(item *models.Item) bool {
	return item != nil && item.Category != nil && item.Category.Name == models.GelatoFlavorsCategory
}

func destinationOf(plan models.DeliveryPlan) string {
	if plan.Store != nil && plan.Store.Name != "" {
		return plan.Store.Name
	}
	if len(plan.Customers) > 0 {
		names := make([]string, 0, len(plan.Customers))
		for _, c := range plan.Customers {
			names = append(names, c.Name)
		}
		return strings.Join(names, ", ")
	}
	return unknownDestination
}

func aggregateInventory(snapshots []Snapshot) []InventoryLine {
	byItem := map[uuid.UUID]*inventoryAcc{}
	order := []uuid.UUID{}

	for _, snap := range snapshots {
		taken := snap.Stocktake.Date
		for _, row := range snap.Stocktake.Items {
			acc, ok := byItem[row.ItemID]
			if !ok {
				acc = &inventoryAcc{
					line:    newInventoryLine(row),
					total:   decimal.Zero,
					byStore: map[uuid.UUID]int{},
				}
				byItem[row.ItemID] = acc
				order = append(order, row.ItemID)
			}
			qty := decimal.NewFromFloat(row.Quantity)
			acc.total = acc.total.Add(qty)
			if taken.After(acc.line.LastUpdated) {
				acc.line.LastUpdated = taken
			}

			idx, seen := acc.byStore[snap.Store.ID]
			if !seen {
				idx = len(acc.line.Stocktakes)
				acc.byStore[snap.Store.ID] = idx
				acc.line.Stocktakes = append(acc.line.Stocktakes, StocktakeContribution{StoreName: snap.Store.Name, Date: taken})
				acc.storeQty = append(acc.storeQty, decimal.Zero)
			}
			acc.storeQty[idx] = acc.storeQty[idx].Add(qty)
			acc.line.Stocktakes[idx].Quantity = acc.storeQty[idx].InexactFloat64()
		}
	}

	out := make([]InventoryLine, 0, len(order))
	for _, id := range order {
		acc := byItem[id]
		acc.line.TotalQuantity = acc.total.InexactFloat64()
		out = append(out, acc.line)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].ItemName < out[j].ItemName
	})
	return out
}

func newInventoryLine(row models.StocktakeItem) InventoryLine {
	line := InventoryLine{ItemID: row.ItemID, Category: uncategorized, Stocktakes: []StocktakeContribution{}}
	if row.Item != nil {
		line.ItemName = row.Item.Name
		line.Unit = row.Item.Unit
		if row.Item.Category != nil {
			line.Category = row.Item.Category.Name
		}
	}
	return line
}

func attachThresholds(lines []InventoryLine, targets []models.StoreInventory) {
	maxByName := map[string]float64{}
	for _, t := range targets {
		if t.TargetQuantity == nil || t.Item == nil {
			continue
		}
		if current, ok := maxByName[t.Item.Name]; !ok || *t.TargetQuantity > current {
			maxByName[t.Item.Name] = *t.TargetQuantity
		}
	}
	for i := range lines {
		if v, ok := maxByName[lines[i].ItemName]; ok {
			threshold := v
			lines[i].TargetThreshold = &threshold
		}
	}
}
