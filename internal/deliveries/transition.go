package deliveries

import (
	"math"
	"strings"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/db/models"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
)

// WeightBlockers lists the variable-weight lines of a plan that have no usable weight.
func WeightBlockers(items []models.DeliveryItem) []WeightBlocker {
	var blockers []WeightBlocker
	for _, item := range items {
		if !item.RequiresWeight() || item.HasWeight() {
			continue
		}
		name := "Unknown item"
		if item.Item != nil {
			name = item.Item.Name
		}
		blockers = append(blockers, WeightBlocker{
			DeliveryItemID: item.ID,
			ItemName:       name,
			PackagingName:  item.PackagingOption.Name,
		})
	}
	return blockers
}

// CheckTransition reports why plan may not move to target, or nil.
func CheckTransition(plan *models.DeliveryPlan, target enums.DeliveryStatus) error {
	if target != enums.DeliveryStatusSent {
		return nil
	}
	blockers := WeightBlockers(plan.Items)
	if len(blockers) == 0 {
		return nil
	}
	labels := make([]string, 0, len(blockers))
	for _, b := range blockers {
		labels = append(labels, b.Label())
	}
	return pkgerrors.Newf(pkgerrors.CodeValidation,
		"Cannot mark delivery as SENT. Weight (kg) is missing for: %s", strings.Join(labels, ", ")).
		WithDetails(map[string]any{"blockers": blockers})
}

func parseStatus(raw string) (enums.DeliveryStatus, error) {
	status, err := enums.ParseDeliveryStatus(strings.TrimSpace(raw))
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Invalid status. Must be one of: DRAFT, CONFIRMED, SENT")
	}
	return status, nil
}

func validateWeight(weightKg *float64) error {
	if weightKg == nil {
		return nil
	}
	w := *weightKg
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "weightKg must be a positive number or null")
	}
	return nil
}
