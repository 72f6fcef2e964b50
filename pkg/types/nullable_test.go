package types

import (
	"encoding/json"
	"testing"
)

func TestNullableUUIDUnmarshal(t *testing.T) {
	type payload struct {
		ID NullableUUID `json:"id"`
	}

	var got payload
	if err := json.Unmarshal([]byte(`{"id": "00000000-0000-0000-0000-000000000001"}`), &got); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if !got.ID.Valid || got.ID.Value == nil {
		t.Fatalf("expected valid uuid, got %v", got.ID)
	}
	if got.ID.Value.String() != "00000000-0000-0000-0000-000000000001" {
		t.Fatalf("unexpected uuid %s", got.ID.Value)
	}

	got = payload{}
	if err := json.Unmarshal([]byte(`{"id": null}`), &got); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !got.ID.IsNull() {
		t.Fatalf("expected explicit null, got %+v", got.ID)
	}

	got = payload{}
	if err := json.Unmarshal([]byte(`{}`), &got); err != nil {
		t.Fatalf("unmarshal missing: %v", err)
	}
	if got.ID.Valid {
		t.Fatalf("expected invalid flag for missing field, got %+v", got.ID)
	}
}

func TestNullableFloatRejectsStrings(t *testing.T) {
	var got struct {
		Weight NullableFloat `json:"weightKg"`
	}
	if err := json.Unmarshal([]byte(`{"weightKg": "heavy"}`), &got); err == nil {
		t.Fatal("expected type error for string weight")
	}
	if err := json.Unmarshal([]byte(`{"weightKg": 2.5}`), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Weight.Value == nil || *got.Weight.Value != 2.5 {
		t.Fatalf("expected 2.5, got %+v", got.Weight)
	}
}

func TestNullableCloneIsIndependent(t *testing.T) {
	v := "note"
	orig := NullableString{Valid: true, Value: &v}
	cloned := orig.Clone()
	*cloned.Value = "changed"
	if *orig.Value != "note" {
		t.Fatalf("clone shares storage with original")
	}
}
