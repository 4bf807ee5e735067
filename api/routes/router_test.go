package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pitlanehq/garage-backend/internal/auth"
	"github.com/pitlanehq/garage-backend/internal/catalog"
	"github.com/pitlanehq/garage-backend/internal/fleet"
	"github.com/pitlanehq/garage-backend/internal/inventory"
	"github.com/pitlanehq/garage-backend/internal/issues"
	"github.com/pitlanehq/garage-backend/internal/users"
	"github.com/pitlanehq/garage-backend/internal/workorders"
	pkgAuth "github.com/pitlanehq/garage-backend/pkg/auth"
	"github.com/pitlanehq/garage-backend/pkg/config"
	"github.com/pitlanehq/garage-backend/pkg/enums"
	"github.com/pitlanehq/garage-backend/pkg/logger"
)

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Logout(ctx context.Context, req auth.LogoutRequest) error {
	return nil
}

type stubUsersService struct{}

func (stubUsersService) List(ctx context.Context) ([]users.UserView, error) {
	return []users.UserView{}, nil
}

func (stubUsersService) Get(ctx context.Context, id int64) (*users.UserView, error) {
	panic("unimplemented")
}

func (stubUsersService) Create(ctx context.Context, input users.CreateUserInput) (*users.UserView, error) {
	panic("unimplemented")
}

func (stubUsersService) SetRoles(ctx context.Context, id int64, roleNames []string) (*users.UserView, error) {
	panic("unimplemented")
}

func (stubUsersService) Deactivate(ctx context.Context, id int64) error {
	panic("unimplemented")
}

type stubFleetService struct{}

func (stubFleetService) ListCars(ctx context.Context) ([]fleet.TeamCarView, error) {
	return []fleet.TeamCarView{}, nil
}

func (stubFleetService) GetCar(ctx context.Context, id int64) (*fleet.TeamCarView, error) {
	panic("unimplemented")
}

func (stubFleetService) CreateCar(ctx context.Context, input fleet.CreateTeamCarInput) (*fleet.TeamCarView, error) {
	return &fleet.TeamCarView{ID: 1, CarNumber: input.CarNumber}, nil
}

func (stubFleetService) UpdateCar(ctx context.Context, id int64, input fleet.UpdateTeamCarInput) (*fleet.TeamCarView, error) {
	panic("unimplemented")
}

func (stubFleetService) DeleteCar(ctx context.Context, id int64) error {
	panic("unimplemented")
}

func (stubFleetService) CarDashboard(ctx context.Context, id int64) (*fleet.CarDashboardView, error) {
	panic("unimplemented")
}

func (stubFleetService) ListSessions(ctx context.Context, teamCarID int64) ([]fleet.CarSessionView, error) {
	panic("unimplemented")
}

func (stubFleetService) GetSession(ctx context.Context, id int64) (*fleet.CarSessionView, error) {
	panic("unimplemented")
}

func (stubFleetService) CreateSession(ctx context.Context, input fleet.CreateCarSessionInput) (*fleet.CarSessionView, error) {
	panic("unimplemented")
}

func (stubFleetService) UpdateSession(ctx context.Context, id int64, input fleet.UpdateCarSessionInput) (*fleet.CarSessionView, error) {
	panic("unimplemented")
}

func (stubFleetService) DeleteSession(ctx context.Context, id int64) error {
	panic("unimplemented")
}

type stubWorkOrdersService struct{}

func (stubWorkOrdersService) List(ctx context.Context, filter workorders.WorkOrderFilter) ([]workorders.WorkOrderView, error) {
	return []workorders.WorkOrderView{}, nil
}

func (stubWorkOrdersService) Get(ctx context.Context, id int64) (*workorders.WorkOrderView, error) {
	panic("unimplemented")
}

func (stubWorkOrdersService) Create(ctx context.Context, actorID int64, input workorders.CreateWorkOrderInput) (*workorders.WorkOrderView, error) {
	panic("unimplemented")
}

func (stubWorkOrdersService) Update(ctx context.Context, id int64, input workorders.UpdateWorkOrderInput) (*workorders.WorkOrderView, error) {
	panic("unimplemented")
}

func (stubWorkOrdersService) Delete(ctx context.Context, id int64) error {
	panic("unimplemented")
}

func (stubWorkOrdersService) Details(ctx context.Context, id int64) (*workorders.WorkOrderDetailsView, error) {
	panic("unimplemented")
}

func (stubWorkOrdersService) ListTasks(ctx context.Context, workOrderID int64) ([]workorders.TaskView, error) {
	panic("unimplemented")
}

func (stubWorkOrdersService) GetTask(ctx context.Context, id int64) (*workorders.TaskView, error) {
	panic("unimplemented")
}

func (stubWorkOrdersService) CreateTask(ctx context.Context, input workorders.CreateTaskInput) (*workorders.TaskView, error) {
	panic("unimplemented")
}

func (stubWorkOrdersService) UpdateTask(ctx context.Context, id int64, input workorders.UpdateTaskInput) (*workorders.TaskView, error) {
	panic("unimplemented")
}

func (stubWorkOrdersService) DeleteTask(ctx context.Context, id int64) error {
	panic("unimplemented")
}

func (stubWorkOrdersService) ListLaborLogs(ctx context.Context, taskID int64) ([]workorders.LaborLogView, error) {
	panic("unimplemented")
}

func (stubWorkOrdersService) GetLaborLog(ctx context.Context, id int64) (*workorders.LaborLogView, error) {
	panic("unimplemented")
}

func (stubWorkOrdersService) CreateLaborLog(ctx context.Context, actorID int64, input workorders.CreateLaborLogInput) (*workorders.LaborLogView, error) {
	panic("unimplemented")
}

func (stubWorkOrdersService) UpdateLaborLog(ctx context.Context, actorID int64, isManager bool, id int64, input workorders.UpdateLaborLogInput) (*workorders.LaborLogView, error) {
	panic("unimplemented")
}

func (stubWorkOrdersService) DeleteLaborLog(ctx context.Context, actorID int64, isManager bool, id int64) error {
	panic("unimplemented")
}

type stubIssuesService struct{}

func (stubIssuesService) List(ctx context.Context, filter issues.IssueFilter) ([]issues.IssueView, error) {
	panic("unimplemented")
}

func (stubIssuesService) Get(ctx context.Context, id int64) (*issues.IssueView, error) {
	panic("unimplemented")
}

func (stubIssuesService) Create(ctx context.Context, actorID int64, input issues.CreateIssueInput) (*issues.IssueView, error) {
	panic("unimplemented")
}

func (stubIssuesService) Update(ctx context.Context, id int64, input issues.UpdateIssueInput) (*issues.IssueView, error) {
	panic("unimplemented")
}

func (stubIssuesService) Delete(ctx context.Context, id int64) error {
	panic("unimplemented")
}

type stubCatalogService struct{}

func (stubCatalogService) ListSuppliers(ctx context.Context, activeOnly bool) ([]catalog.SupplierView, error) {
	panic("unimplemented")
}

func (stubCatalogService) GetSupplier(ctx context.Context, id int64) (*catalog.SupplierView, error) {
	panic("unimplemented")
}

func (stubCatalogService) CreateSupplier(ctx context.Context, input catalog.CreateSupplierInput) (*catalog.SupplierView, error) {
	panic("unimplemented")
}

func (stubCatalogService) UpdateSupplier(ctx context.Context, id int64, input catalog.UpdateSupplierInput) (*catalog.SupplierView, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeactivateSupplier(ctx context.Context, id int64) error {
	panic("unimplemented")
}

func (stubCatalogService) ListParts(ctx context.Context, filter catalog.PartFilter) ([]catalog.PartView, error) {
	panic("unimplemented")
}

func (stubCatalogService) GetPart(ctx context.Context, id int64) (*catalog.PartView, error) {
	panic("unimplemented")
}

func (stubCatalogService) CreatePart(ctx context.Context, input catalog.CreatePartInput) (*catalog.PartView, error) {
	panic("unimplemented")
}

func (stubCatalogService) UpdatePart(ctx context.Context, id int64, input catalog.UpdatePartInput) (*catalog.PartView, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeactivatePart(ctx context.Context, id int64) error {
	panic("unimplemented")
}

func (stubCatalogService) ListLocations(ctx context.Context, activeOnly bool) ([]catalog.LocationView, error) {
	panic("unimplemented")
}

func (stubCatalogService) GetLocation(ctx context.Context, id int64) (*catalog.LocationView, error) {
	panic("unimplemented")
}

func (stubCatalogService) CreateLocation(ctx context.Context, input catalog.CreateLocationInput) (*catalog.LocationView, error) {
	panic("unimplemented")
}

func (stubCatalogService) UpdateLocation(ctx context.Context, id int64, input catalog.UpdateLocationInput) (*catalog.LocationView, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeactivateLocation(ctx context.Context, id int64) error {
	panic("unimplemented")
}

type stubInventoryService struct{}

func (stubInventoryService) Adjust(ctx context.Context, actorID int64, input inventory.AdjustStockInput) (*inventory.StockView, error) {
	return &inventory.StockView{PartID: input.PartID, Quantity: input.QuantityChange}, nil
}

func (stubInventoryService) Consume(ctx context.Context, actorID int64, input inventory.ConsumePartInput) (*inventory.InstallationView, error) {
	panic("unimplemented")
}

func (stubInventoryService) ListStock(ctx context.Context, filter inventory.StockFilter) ([]inventory.StockView, error) {
	return []inventory.StockView{}, nil
}

func (stubInventoryService) ListMovements(ctx context.Context, filter inventory.MovementFilter) (*inventory.MovementPage, error) {
	panic("unimplemented")
}

func (stubInventoryService) ListInstallations(ctx context.Context, workOrderID int64) ([]inventory.InstallationView, error) {
	panic("unimplemented")
}

func (stubInventoryService) GetInstallation(ctx context.Context, id int64) (*inventory.InstallationView, error) {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "garage-test",
			ExpirationMinutes: 15,
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "router-test"})
	return NewRouter(testConfig(), logg, nil, nil, stubSessionChecker{}, nil, Services{
		Auth:      stubAuthService{},
		Users:     stubUsersService{},
		Fleet:     stubFleetService{},
		WorkOrder: stubWorkOrdersService{},
		Issues:    stubIssuesService{},
		Catalog:   stubCatalogService{},
		Inventory: stubInventoryService{},
	})
}

func mintToken(t *testing.T, roles ...enums.Role) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(testConfig().JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: 42,
		Name:   "Test Actor",
		Roles:  roles,
		JTI:    "router-test-session",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestRouterPublicEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("public ping status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health live status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	body := strings.NewReader(`{"email":"crew@test.com","password":"password123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestRouterRoleGuards(t *testing.T) {
	router := newTestRouter(t)

	carPayload := `{"carNumber":"42"}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/team-cars/", strings.NewReader(carPayload))
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.RoleDriver))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for driver creating car, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/team-cars/", strings.NewReader(carPayload))
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.RoleManager))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for manager creating car, got %d: %s", rec.Code, rec.Body.String())
	}

	adjustPayload := `{"partId":1,"inventoryLocationId":1,"quantityChange":5}`

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/inventory-stock/adjust", strings.NewReader(adjustPayload))
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.RoleDriver))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for driver adjusting stock, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/inventory-stock/adjust", strings.NewReader(adjustPayload))
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.RolePartsClerk))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for clerk adjusting stock, got %d: %s", rec.Code, rec.Body.String())
	}
}
