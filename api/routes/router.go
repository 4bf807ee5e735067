package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pitlanehq/garage-backend/api/controllers"
	"github.com/pitlanehq/garage-backend/api/middleware"
	"github.com/pitlanehq/garage-backend/internal/auth"
	"github.com/pitlanehq/garage-backend/internal/catalog"
	"github.com/pitlanehq/garage-backend/internal/fleet"
	"github.com/pitlanehq/garage-backend/internal/inventory"
	"github.com/pitlanehq/garage-backend/internal/issues"
	"github.com/pitlanehq/garage-backend/internal/users"
	"github.com/pitlanehq/garage-backend/internal/workorders"
	"github.com/pitlanehq/garage-backend/pkg/auth/session"
	"github.com/pitlanehq/garage-backend/pkg/config"
	"github.com/pitlanehq/garage-backend/pkg/db"
	"github.com/pitlanehq/garage-backend/pkg/enums"
	"github.com/pitlanehq/garage-backend/pkg/logger"
	"github.com/pitlanehq/garage-backend/pkg/redis"
)

// Services bundles the wired domain services the router mounts.
type Services struct {
	Auth      auth.Service
	Users     users.Service
	Fleet     fleet.Service
	WorkOrder workorders.Service
	Issues    issues.Service
	Catalog   catalog.Service
	Inventory inventory.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	sessionChecker session.AccessSessionChecker,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbClient, redisClient, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())

		r.Route("/v1/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
				Post("/login", controllers.Login(svcs.Auth, logg))
			r.Post("/refresh", controllers.Refresh(svcs.Auth, logg))
			r.Post("/logout", controllers.Logout(svcs.Auth, logg))
		})

		r.Route("/v1", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))

			manager := middleware.RequireAnyRole(logg, enums.RoleManager)
			mechanicOrManager := middleware.RequireAnyRole(logg, enums.RoleMechanic, enums.RoleManager)
			clerkOrManager := middleware.RequireAnyRole(logg, enums.RolePartsClerk, enums.RoleManager)
			anyCrewRole := middleware.RequireAnyRole(logg, enums.RoleDriver, enums.RoleMechanic, enums.RoleManager)

			r.Get("/ping", controllers.PrivatePing())

			r.Route("/users", func(r chi.Router) {
				r.Get("/", controllers.ListUsers(svcs.Users, logg))
				r.Get("/{id}", controllers.GetUser(svcs.Users, logg))
				r.With(manager).Post("/", controllers.CreateUser(svcs.Users, logg))
				r.With(manager).Put("/{id}/role", controllers.SetUserRoles(svcs.Users, logg))
				r.With(manager).Put("/{id}/deactivate", controllers.DeactivateUser(svcs.Users, logg))
			})

			r.Route("/team-cars", func(r chi.Router) {
				r.Get("/", controllers.ListTeamCars(svcs.Fleet, logg))
				r.Get("/{id}", controllers.GetTeamCar(svcs.Fleet, logg))
				r.Get("/{id}/dashboard", controllers.TeamCarDashboard(svcs.Fleet, logg))
				r.With(manager).Post("/", controllers.CreateTeamCar(svcs.Fleet, logg))
				r.With(manager).Put("/{id}", controllers.UpdateTeamCar(svcs.Fleet, logg))
				r.With(manager).Delete("/{id}", controllers.DeleteTeamCar(svcs.Fleet, logg))
			})

			r.Route("/car-sessions", func(r chi.Router) {
				r.Get("/", controllers.ListCarSessions(svcs.Fleet, logg))
				r.Get("/{id}", controllers.GetCarSession(svcs.Fleet, logg))
				r.Post("/", controllers.CreateCarSession(svcs.Fleet, logg))
				r.Put("/{id}", controllers.UpdateCarSession(svcs.Fleet, logg))
				r.Delete("/{id}", controllers.DeleteCarSession(svcs.Fleet, logg))
			})

			r.Route("/work-orders", func(r chi.Router) {
				r.Get("/", controllers.ListWorkOrders(svcs.WorkOrder, logg))
				r.Get("/{id}", controllers.GetWorkOrder(svcs.WorkOrder, logg))
				r.Get("/{id}/details", controllers.WorkOrderDetails(svcs.WorkOrder, logg))
				r.With(anyCrewRole).Post("/", controllers.CreateWorkOrder(svcs.WorkOrder, logg))
				r.With(mechanicOrManager).Put("/{id}", controllers.UpdateWorkOrder(svcs.WorkOrder, logg))
				r.With(manager).Delete("/{id}", controllers.DeleteWorkOrder(svcs.WorkOrder, logg))
			})

			r.Route("/work-order-tasks", func(r chi.Router) {
				r.Get("/", controllers.ListWorkOrderTasks(svcs.WorkOrder, logg))
				r.Get("/{id}", controllers.GetWorkOrderTask(svcs.WorkOrder, logg))
				r.With(mechanicOrManager).Post("/", controllers.CreateWorkOrderTask(svcs.WorkOrder, logg))
				r.With(mechanicOrManager).Put("/{id}", controllers.UpdateWorkOrderTask(svcs.WorkOrder, logg))
				r.With(mechanicOrManager).Delete("/{id}", controllers.DeleteWorkOrderTask(svcs.WorkOrder, logg))
			})

			r.Route("/labor-logs", func(r chi.Router) {
				r.Get("/", controllers.ListLaborLogs(svcs.WorkOrder, logg))
				r.Get("/{id}", controllers.GetLaborLog(svcs.WorkOrder, logg))
				r.With(mechanicOrManager).Post("/", controllers.CreateLaborLog(svcs.WorkOrder, logg))
				r.With(mechanicOrManager).Put("/{id}", controllers.UpdateLaborLog(svcs.WorkOrder, logg))
				r.With(mechanicOrManager).Delete("/{id}", controllers.DeleteLaborLog(svcs.WorkOrder, logg))
			})

			r.Route("/issue-reports", func(r chi.Router) {
				r.Get("/", controllers.ListIssueReports(svcs.Issues, logg))
				r.Get("/{id}", controllers.GetIssueReport(svcs.Issues, logg))
				r.Post("/", controllers.CreateIssueReport(svcs.Issues, logg))
				r.Put("/{id}", controllers.UpdateIssueReport(svcs.Issues, logg))
				r.Delete("/{id}", controllers.DeleteIssueReport(svcs.Issues, logg))
			})

			r.Route("/suppliers", func(r chi.Router) {
				r.Get("/", controllers.ListSuppliers(svcs.Catalog, logg))
				r.Get("/{id}", controllers.GetSupplier(svcs.Catalog, logg))
				r.With(clerkOrManager).Post("/", controllers.CreateSupplier(svcs.Catalog, logg))
				r.With(clerkOrManager).Put("/{id}", controllers.UpdateSupplier(svcs.Catalog, logg))
				r.With(clerkOrManager).Delete("/{id}", controllers.DeleteSupplier(svcs.Catalog, logg))
			})

			r.Route("/parts", func(r chi.Router) {
				r.Get("/", controllers.ListParts(svcs.Catalog, logg))
				r.Get("/{id}", controllers.GetPart(svcs.Catalog, logg))
				r.With(clerkOrManager).Post("/", controllers.CreatePart(svcs.Catalog, logg))
				r.With(clerkOrManager).Put("/{id}", controllers.UpdatePart(svcs.Catalog, logg))
				r.With(clerkOrManager).Delete("/{id}", controllers.DeletePart(svcs.Catalog, logg))
			})

			r.Route("/inventory-locations", func(r chi.Router) {
				r.Get("/", controllers.ListInventoryLocations(svcs.Catalog, logg))
				r.Get("/{id}", controllers.GetInventoryLocation(svcs.Catalog, logg))
				r.With(clerkOrManager).Post("/", controllers.CreateInventoryLocation(svcs.Catalog, logg))
				r.With(clerkOrManager).Put("/{id}", controllers.UpdateInventoryLocation(svcs.Catalog, logg))
				r.With(clerkOrManager).Delete("/{id}", controllers.DeleteInventoryLocation(svcs.Catalog, logg))
			})

			r.Route("/inventory-stock", func(r chi.Router) {
				r.Get("/", controllers.ListInventoryStock(svcs.Inventory, logg))
				r.With(clerkOrManager).Post("/adjust", controllers.AdjustInventoryStock(svcs.Inventory, logg))
			})

			r.Get("/inventory-movements", controllers.ListInventoryMovements(svcs.Inventory, logg))

			r.Route("/part-installations", func(r chi.Router) {
				r.Get("/", controllers.ListPartInstallations(svcs.Inventory, logg))
				r.Get("/{id}", controllers.GetPartInstallation(svcs.Inventory, logg))
				r.With(mechanicOrManager).Post("/", controllers.CreatePartInstallation(svcs.Inventory, logg))
			})
		})
	})

	return r
}
