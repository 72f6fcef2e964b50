package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JGP1992/theitaliancorner-sub001/api/controllers"
	"github.com/JGP1992/theitaliancorner-sub001/api/middleware"
	"github.com/JGP1992/theitaliancorner-sub001/internal/audit"
	"github.com/JGP1992/theitaliancorner-sub001/internal/auth"
	"github.com/JGP1992/theitaliancorner-sub001/internal/catalog"
	"github.com/JGP1992/theitaliancorner-sub001/internal/customers"
	"github.com/JGP1992/theitaliancorner-sub001/internal/deliveries"
	"github.com/JGP1992/theitaliancorner-sub001/internal/production"
	"github.com/JGP1992/theitaliancorner-sub001/internal/productiontasks"
	"github.com/JGP1992/theitaliancorner-sub001/internal/stocktakes"
	"github.com/JGP1992/theitaliancorner-sub001/internal/stores"
	"github.com/JGP1992/theitaliancorner-sub001/internal/users"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/auth/session"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/config"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/enums"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/logger"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/metrics"
	pkgredis "github.com/JGP1992/theitaliancorner-sub001/pkg/redis"
)

// Services bundles the domain services exposed over HTTP.
type Services struct {
	Auth            auth.Service
	Users           users.Service
	Stores          stores.Service
	Catalog         catalog.Service
	Customers       customers.Service
	Stocktakes      stocktakes.Service
	Deliveries      deliveries.Service
	Production      production.Service
	ProductionTasks productiontasks.Service
	Audit           audit.Service
}

// Infra carries the shared infrastructure the router needs.
type Infra struct {
	Sessions       session.AccessSessionChecker
	Redis          *pkgredis.Client
	Checks         map[string]controllers.Pinger
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
}

func NewRouter(cfg *config.Config, logg *logger.Logger, infra Infra, svc Services) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, infra.HTTPMetrics),
		middleware.CORS(cfg.HTTP.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, infra.Checks, logg))
	})
	if infra.MetricsHandler != nil {
		r.Handle("/metrics", infra.MetricsHandler)
	}

	cookies := controllers.CookieSettings{
		Secure:     cfg.HTTP.CookieSecure,
		RefreshTTL: cfg.JWT.RefreshTokenTTL(),
	}
	authenticated := middleware.Auth(cfg.JWT, infra.Sessions, logg)
	perm := func(p enums.Permission) func(http.Handler) http.Handler {
		return middleware.RequirePermission(p, logg)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			login := controllers.AuthLogin(svc.Auth, cookies, logg)
			if infra.Redis != nil {
				r.With(middleware.LoginRateLimit(cfg.AuthRateLimit, infra.Redis, logg)).Post("/login", login)
			} else {
				r.Post("/login", login)
			}
			r.Post("/refresh", controllers.AuthRefresh(svc.Auth, cookies, logg))
			r.With(authenticated).Post("/logout", controllers.AuthLogout(svc.Auth, cookies, logg))
			r.With(authenticated).Get("/me", controllers.AuthMe(svc.Auth, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			if infra.Redis != nil {
				r.Use(middleware.Idempotency(infra.Redis, logg))
			}

			r.Route("/deliveries", func(r chi.Router) {
				r.With(perm(enums.PermissionDeliveriesRead)).Get("/", controllers.DeliveryList(svc.Deliveries, logg))
				r.With(perm(enums.PermissionDeliveriesWrite)).Post("/", controllers.DeliveryCreate(svc.Deliveries, logg))
				r.With(perm(enums.PermissionDeliveriesWrite)).Patch("/items/{itemId}/weight", controllers.DeliveryItemWeight(svc.Deliveries, logg))
				r.Route("/{planId}", func(r chi.Router) {
					r.With(perm(enums.PermissionDeliveriesRead)).Get("/", controllers.DeliveryGet(svc.Deliveries, logg))
					r.With(perm(enums.PermissionDeliveriesWrite)).Delete("/", controllers.DeliveryDelete(svc.Deliveries, logg))
					r.With(perm(enums.PermissionDeliveriesWrite)).Put("/items", controllers.DeliveryReplaceItems(svc.Deliveries, logg))
					r.With(perm(enums.PermissionDeliveriesWrite)).Patch("/status", controllers.DeliveryTransition(svc.Deliveries, logg))
				})
			})

			r.Route("/production", func(r chi.Router) {
				r.With(perm(enums.PermissionProductionRead)).Get("/plan", controllers.ProductionPlan(svc.Production, logg))
				r.Route("/tasks", func(r chi.Router) {
					r.With(perm(enums.PermissionProductionRead)).Get("/", controllers.ProductionTaskList(svc.ProductionTasks, logg))
					r.With(perm(enums.PermissionProductionWrite)).Post("/", controllers.ProductionTaskCreate(svc.ProductionTasks, logg))
					r.With(perm(enums.PermissionProductionRead)).Get("/{taskId}", controllers.ProductionTaskGet(svc.ProductionTasks, logg))
					r.With(perm(enums.PermissionProductionWrite)).Patch("/{taskId}", controllers.ProductionTaskUpdate(svc.ProductionTasks, logg))
				})
			})

			r.Route("/stores", func(r chi.Router) {
				r.With(perm(enums.PermissionInventoryRead)).Get("/", controllers.StoreList(svc.Stores, logg))
				r.With(perm(enums.PermissionStoresWrite)).Post("/", controllers.StoreCreate(svc.Stores, logg))
				r.Route("/{storeId}", func(r chi.Router) {
					r.With(perm(enums.PermissionInventoryRead)).Get("/", controllers.StoreGet(svc.Stores, logg))
					r.With(perm(enums.PermissionStoresWrite)).Patch("/", controllers.StoreUpdate(svc.Stores, logg))
					r.With(perm(enums.PermissionInventoryRead)).Get("/targets", controllers.StoreTargetList(svc.Stores, logg))
					r.With(perm(enums.PermissionInventoryWrite)).Put("/targets", controllers.StoreTargetUpsert(svc.Stores, logg))
					r.With(perm(enums.PermissionInventoryRead)).Get("/stocktakes", controllers.StocktakeList(svc.Stocktakes, logg))
					r.With(perm(enums.PermissionInventoryRead)).Get("/stocktakes/latest", controllers.StocktakeLatest(svc.Stocktakes, logg))
				})
			})

			r.With(perm(enums.PermissionInventoryWrite)).Post("/stocktakes", controllers.StocktakeSubmit(svc.Stocktakes, logg))

			r.Route("/customers", func(r chi.Router) {
				r.With(perm(enums.PermissionDeliveriesRead)).Get("/", controllers.CustomerList(svc.Customers, logg))
				r.With(perm(enums.PermissionCustomersWrite)).Post("/", controllers.CustomerCreate(svc.Customers, logg))
				r.With(perm(enums.PermissionCustomersWrite)).Patch("/{customerId}", controllers.CustomerUpdate(svc.Customers, logg))
			})

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/categories", controllers.CategoryList(svc.Catalog, logg))
				r.With(perm(enums.PermissionCatalogWrite)).Post("/categories", controllers.CategoryCreate(svc.Catalog, logg))
				r.Get("/items", controllers.ItemList(svc.Catalog, logg))
				r.With(perm(enums.PermissionCatalogWrite)).Post("/items", controllers.ItemCreate(svc.Catalog, logg))
				r.Get("/packaging", controllers.PackagingList(svc.Catalog, logg))
				r.With(perm(enums.PermissionCatalogWrite)).Post("/packaging", controllers.PackagingCreate(svc.Catalog, logg))
				r.With(perm(enums.PermissionCatalogWrite)).Patch("/packaging/{packagingId}", controllers.PackagingUpdate(svc.Catalog, logg))
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(perm(enums.PermissionUsersAdmin))
				r.Get("/", controllers.UserList(svc.Users, logg))
				r.Post("/", controllers.UserCreate(svc.Users, logg))
			})
			r.Route("/roles", func(r chi.Router) {
				r.Use(perm(enums.PermissionUsersAdmin))
				r.Get("/", controllers.RoleList(svc.Users, logg))
				r.Put("/", controllers.RoleUpsert(svc.Users, logg))
			})

			r.With(perm(enums.PermissionAuditRead)).Get("/audit", controllers.AuditList(svc.Audit, logg))
		})
	})

	return r
}
