package enums

import "fmt"

// ProductionTaskStatus is the lifecycle state of a factory production task.
type ProductionTaskStatus string

const (
	ProductionTaskStatusScheduled  ProductionTaskStatus = "SCHEDULED"
	ProductionTaskStatusInProgress ProductionTaskStatus = "IN_PROGRESS"
	ProductionTaskStatusDone       ProductionTaskStatus = "DONE"
	ProductionTaskStatusCancelled  ProductionTaskStatus = "CANCELLED"
)

var validProductionTaskStatuses = []ProductionTaskStatus{
	ProductionTaskStatusScheduled,
	ProductionTaskStatusInProgress,
	ProductionTaskStatusDone,
	ProductionTaskStatusCancelled,
}

// String implements fmt.Stringer.
func (v ProductionTaskStatus) String() string {
	return string(v)
}

// IsValid reports whether the value is a known ProductionTaskStatus.
func (v ProductionTaskStatus) IsValid() bool {
	for _, candidate := range validProductionTaskStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseProductionTaskStatus converts raw input into a ProductionTaskStatus.
func ParseProductionTaskStatus(value string) (ProductionTaskStatus, error) {
	for _, candidate := range validProductionTaskStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid production task status %q", value)
}

// IsTerminal reports whether the task can no longer be started.
func (v ProductionTaskStatus) IsTerminal() bool {
	return v == ProductionTaskStatusDone || v == ProductionTaskStatusCancelled
}
