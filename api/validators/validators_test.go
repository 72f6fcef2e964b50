package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/JGP1992/theitaliancorner-sub001/pkg/errors"
)

type sampleBody struct {
	Name     string  `json:"name" validate:"required"`
	Status   string  `json:"status" validate:"omitempty,oneof=DRAFT CONFIRMED"`
	Quantity float64 `json:"quantity" validate:"gt=0"`
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"SENT","quantity":0}`))
	var body sampleBody
	err := DecodeJSONBody(req, &body)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
	details, ok := pkgerrors.As(err).Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details")
	}
	if details["name"] != "is required" {
		t.Fatalf("unexpected name message %q", details["name"])
	}
	if details["status"] != "must be one of: DRAFT CONFIRMED" {
		t.Fatalf("unexpected status message %q", details["status"])
	}
	if details["quantity"] != "must be greater than 0" {
		t.Fatalf("unexpected quantity message %q", details["quantity"])
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","quantity":1,"extra":true}`))
	var body sampleBody
	if err := DecodeJSONBody(req, &body); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=500", nil)
	if _, err := ParseQueryInt(req, "limit", 25, 1, 100); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected out of range error got %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	if v, err := ParseQueryInt(req, "limit", 25, 1, 100); err != nil || v != 25 {
		t.Fatalf("expected default 25 got %d %v", v, err)
	}
}

func TestParseQueryIntLenient(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?days=abc", nil)
	if got := ParseQueryIntLenient(req, "days", 7); got != 7 {
		t.Fatalf("expected fallback 7 got %d", got)
	}
	req = httptest.NewRequest(http.MethodGet, "/?days=90", nil)
	if got := ParseQueryIntLenient(req, "days", 7); got != 90 {
		t.Fatalf("expected 90 got %d", got)
	}
}

func TestParseUUIDParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rc := chi.NewRouteContext()
	rc.URLParams.Add("planId", "not-a-uuid")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
	if _, err := ParseUUIDParam(req, "planId"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestParseQueryUUID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?storeId=bad", nil)
	if _, err := ParseQueryUUID(req, "storeId"); err == nil {
		t.Fatal("expected error for malformed uuid")
	}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	id, err := ParseQueryUUID(req, "storeId")
	if err != nil || id != nil {
		t.Fatalf("expected nil id without error, got %v %v", id, err)
	}
}

func TestSanitizeString(t *testing.T) {
	cases := []struct {
		in     string
		max    int
		expect string
	}{
		{"  pistachio  ", 0, "pistachio"},
		{"straccia\x00tella", 0, "stracciatella"},
		{"fior di latte", 4, "fior"},
		{"caffè latte", 5, "caffè"},
		{"ab cd", 3, "ab"},
	}
	for _, tc := range cases {
		if got := SanitizeString(tc.in, tc.max); got != tc.expect {
			t.Fatalf("SanitizeString(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.expect)
		}
	}
}

type nestedBody struct {
	Name  string       `json:"name" validate:"notblank,max=20"`
	Items []nestedItem `json:"items" validate:"required,min=1,dive"`
}

type nestedItem struct {
	Quantity float64 `json:"quantity" validate:"gt=0"`
}

func TestDecodeJSONBodyNestedAndBlankFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"   ","items":[{"quantity":2},{"quantity":0}]}`))
	var body nestedBody
	err := DecodeJSONBody(req, &body)
	details, ok := pkgerrors.As(err).Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %v", err)
	}
	if details["name"] != "is required" {
		t.Fatalf("blank name should be required, got %q", details["name"])
	}
	if details["items[1].quantity"] != "must be greater than 0" {
		t.Fatalf("unexpected nested details %v", details)
	}
}

func TestDecodeJSONBodyEmptyAndTrailing(t *testing.T) {
	var body sampleBody
	err := DecodeJSONBody(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")), &body)
	if typed := pkgerrors.As(err); typed == nil || typed.Message() != "request body is required" {
		t.Fatalf("expected empty body error, got %v", err)
	}

	err = DecodeJSONBody(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","quantity":1}{"name":"b"}`)), &body)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected trailing data to be rejected, got %v", err)
	}
}

func TestDecodeJSONBodyTypeMismatch(t *testing.T) {
	var body sampleBody
	err := DecodeJSONBody(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","quantity":"lots"}`)), &body)
	details, ok := pkgerrors.As(err).Details().(map[string]string)
	if !ok || details["quantity"] != "must be a float64" {
		t.Fatalf("unexpected details %v", pkgerrors.As(err).Details())
	}
}
