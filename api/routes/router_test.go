package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JGP1992/theitaliancorner-sub001/api/controllers"
	"github.com/JGP1992/theitaliancorner-sub001/internal/production"
	pkgAuth "github.com/JGP1992/theitaliancorner-sub001/pkg/auth"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/config"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessions struct{}

func (stubSessions) HasSession(context.Context, string) (bool, error) {
	return true, nil
}

type stubProduction struct {
	production.Service
	calls int
}

func (s *stubProduction) PlanForDays(context.Context, int) (*production.Report, error) {
	s.calls++
	return &production.Report{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "gelato-test", ExpirationMinutes: 10, RefreshTokenTTLMinutes: 60},
		HTTP: config.HTTPConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

func newTestRouter(prod production.Service) http.Handler {
	return NewRouter(testConfig(), logger.Nop(), Infra{
		Sessions: stubSessions{},
		Checks:   map[string]controllers.Pinger{"db": stubPinger{}},
	}, Services{Production: prod})
}

func bearer(t *testing.T, perms ...enums.Permission) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(testConfig().JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:      uuid.New(),
		Role:        "staff",
		Permissions: perms,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + token
}

func TestHealthRoutes(t *testing.T) {
	router := newTestRouter(&stubProduction{})
	for _, path := range []string{"/health/live", "/health/ready"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, rec.Code)
		}
		if rec.Header().Get("X-Request-Id") == "" {
			t.Fatalf("%s: expected request id header", path)
		}
	}
}

func TestProductionPlanRequiresAuth(t *testing.T) {
	router := newTestRouter(&stubProduction{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/production/plan", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestProductionPlanRequiresPermission(t *testing.T) {
	prod := &stubProduction{}
	router := newTestRouter(prod)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/production/plan", nil)
	req.Header.Set("Authorization", bearer(t, enums.PermissionDeliveriesRead))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
	if prod.calls != 0 {
		t.Fatal("service must not run without permission")
	}
}

func TestProductionPlanWithPermission(t *testing.T) {
	prod := &stubProduction{}
	router := newTestRouter(prod)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/production/plan?days=3", nil)
	req.Header.Set("Authorization", bearer(t, enums.PermissionProductionRead))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if prod.calls != 1 {
		t.Fatalf("expected one service call got %d", prod.calls)
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(&stubProduction{})
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/deliveries", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost) {
		t.Fatalf("expected POST in allowed methods")
	}
}
