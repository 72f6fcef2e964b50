package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/requestctx"
)

type recordedObservation struct {
	route  string
	method string
	status int
}

type stubObserver struct {
	seen []recordedObservation
}

func (s *stubObserver) Observe(route, method string, status int, _ time.Duration) {
	s.seen = append(s.seen, recordedObservation{route: route, method: method, status: status})
}

func TestLoggingObservesRoutePattern(t *testing.T) {
	obs := &stubObserver{}
	handler := Logging(nil, obs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/deliveries/abc", nil)
	rc := chi.NewRouteContext()
	rc.RoutePatterns = []string{"/api/v1/deliveries/{planId}"}
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))

	handler.ServeHTTP(httptest.NewRecorder(), req)

	if len(obs.seen) != 1 {
		t.Fatalf("expected one observation got %d", len(obs.seen))
	}
	got := obs.seen[0]
	if got.route != "/api/v1/deliveries/{planId}" || got.method != http.MethodGet || got.status != http.StatusNotFound {
		t.Fatalf("unexpected observation %+v", got)
	}
}

func TestLoggingDefaultsStatusAndUnmatchedRoute(t *testing.T) {
	obs := &stubObserver{}
	handler := Logging(nil, obs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if len(obs.seen) != 1 {
		t.Fatalf("expected one observation got %d", len(obs.seen))
	}
	if obs.seen[0].status != http.StatusOK {
		t.Fatalf("expected 200 got %d", obs.seen[0].status)
	}
	if obs.seen[0].route != "unmatched" {
		t.Fatalf("expected unmatched route label got %s", obs.seen[0].route)
	}
}

func TestRequestIDKeepsSafeIDsOnly(t *testing.T) {
	cases := map[string]bool{
		"abc-123":                true,
		"trace_01.a:b":           true,
		"":                       false,
		"has space":              false,
		"line\nbreak":            false,
		strings.Repeat("x", 129): false,
	}
	for in, keep := range cases {
		var seen string
		handler := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = requestctx.RequestID(r.Context())
		}))
		req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
		req.Header.Set(RequestIDHeader, in)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if keep && seen != in {
			t.Fatalf("%q: expected id to be kept, got %q", in, seen)
		}
		if !keep && (seen == in || seen == "") {
			t.Fatalf("%q: expected a fresh id, got %q", in, seen)
		}
		if rec.Header().Get(RequestIDHeader) != seen {
			t.Fatalf("response header should echo the request id")
		}
	}
}
