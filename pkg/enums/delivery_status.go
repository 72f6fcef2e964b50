package enums

import "fmt"

// DeliveryStatus tracks a delivery plan through planning and dispatch.
type DeliveryStatus string

const (
	DeliveryStatusDraft     DeliveryStatus = "DRAFT"
	DeliveryStatusConfirmed DeliveryStatus = "CONFIRMED"
	DeliveryStatusSent      DeliveryStatus = "SENT"
)

var validDeliveryStatuses = []DeliveryStatus{
	DeliveryStatusDraft,
	DeliveryStatusConfirmed,
	DeliveryStatusSent,
}

// String implements fmt.Stringer.
func (v DeliveryStatus) String() string {
	return string(v)
}

// IsValid reports whether the value is a known DeliveryStatus.
func (v DeliveryStatus) IsValid() bool {
	for _, candidate := range validDeliveryStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseDeliveryStatus converts raw input into a DeliveryStatus.
func ParseDeliveryStatus(value string) (DeliveryStatus, error) {
	for _, candidate := range validDeliveryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery status %q", value)
}
