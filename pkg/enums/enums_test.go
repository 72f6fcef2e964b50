package enums

import "testing"

func TestParseDeliveryStatus(t *testing.T) {
	for _, raw := range []string{"DRAFT", "CONFIRMED", "SENT"} {
		got, err := ParseDeliveryStatus(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got.String() != raw {
			t.Fatalf("expected %q got %q", raw, got)
		}
	}
	if _, err := ParseDeliveryStatus("sent"); err == nil {
		t.Fatal("expected lowercase status to be rejected")
	}
	if DeliveryStatus("ARCHIVED").IsValid() {
		t.Fatal("unexpected valid status")
	}
}

func TestProductionTaskStatusTerminal(t *testing.T) {
	cases := map[ProductionTaskStatus]bool{
		ProductionTaskStatusScheduled:  false,
		ProductionTaskStatusInProgress: false,
		ProductionTaskStatusDone:       true,
		ProductionTaskStatusCancelled:  true,
	}
	for status, want := range cases {
		if got := status.IsTerminal(); got != want {
			t.Fatalf("%s: expected terminal=%v got %v", status, want, got)
		}
	}
}

func TestOutputKindForUnit(t *testing.T) {
	cases := map[string]TaskOutputKind{
		"tray":          TaskOutputKindTray,
		"5L Trays":      TaskOutputKindTray,
		"tub":           TaskOutputKindUnit,
		"":              TaskOutputKindUnit,
		"half-TRAY pan": TaskOutputKindTray,
	}
	for unit, want := range cases {
		if got := OutputKindForUnit(unit); got != want {
			t.Fatalf("unit %q: expected %s got %s", unit, want, got)
		}
	}
}

func TestAllPermissionsIsCopy(t *testing.T) {
	perms := AllPermissions()
	if len(perms) != len(validPermissions) {
		t.Fatalf("expected %d permissions got %d", len(validPermissions), len(perms))
	}
	perms[0] = "mutated"
	if validPermissions[0] == "mutated" {
		t.Fatal("AllPermissions must not expose the backing slice")
	}
}
