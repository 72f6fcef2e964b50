package enums

import (
	"fmt"
	"strings"
)

// TaskOutputKind describes what a production task yields.
type TaskOutputKind string

const (
	TaskOutputKindUnit TaskOutputKind = "UNIT"
	TaskOutputKindTray TaskOutputKind = "TRAY"
)

var validTaskOutputKinds = []TaskOutputKind{
	TaskOutputKindUnit,
	TaskOutputKindTray,
}

// String implements fmt.Stringer.
func (v TaskOutputKind) String() string {
	return string(v)
}

// IsValid reports whether the value is a known TaskOutputKind.
func (v TaskOutputKind) IsValid() bool {
	for _, candidate := range validTaskOutputKinds {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseTaskOutputKind converts raw input into a TaskOutputKind.
func ParseTaskOutputKind(value string) (TaskOutputKind, error) {
	for _, candidate := range validTaskOutputKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid task output kind %q", value)
}

// OutputKindForUnit derives the output kind from a free-text unit label;
// any unit mentioning "tray" yields trays.
func OutputKindForUnit(unit string) TaskOutputKind {
	if strings.Contains(strings.ToLower(unit), "tray") {
		return TaskOutputKindTray
	}
	return TaskOutputKindUnit
}
