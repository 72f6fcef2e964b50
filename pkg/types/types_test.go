package types

import (
	"testing"
)

func TestStringArrayRoundTripsLiteral(t *testing.T) {
	arr := StringArray{"deliveries:read", "production:write"}
	v, err := arr.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != `{"deliveries:read","production:write"}` {
		t.Fatalf("unexpected literal %v", v)
	}

	var scanned StringArray
	if err := scanned.Scan([]byte("{deliveries:read,production:write}")); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !scanned.Contains("production:write") || scanned.Contains("audit:read") {
		t.Fatalf("unexpected scanned array %v", scanned)
	}
}

func TestStringArrayNilValue(t *testing.T) {
	var arr StringArray
	v, err := arr.Value()
	if err != nil || v != "{}" {
		t.Fatalf("expected empty literal, got %v (%v)", v, err)
	}
}

func TestJSONMapScan(t *testing.T) {
	var m JSONMap
	if err := m.Scan(`{"from":"DRAFT","to":"SENT"}`); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if m["to"] != "SENT" {
		t.Fatalf("unexpected map %v", m)
	}
	if err := m.Scan(42); err == nil {
		t.Fatal("expected unsupported type error")
	}
	if err := m.Scan(nil); err != nil || m != nil {
		t.Fatalf("expected nil map after nil scan, got %v (%v)", m, err)
	}
}
