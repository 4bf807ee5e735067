package fleet

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pitlanehq/garage-backend/pkg/config"
	"github.com/pitlanehq/garage-backend/pkg/db"
	"github.com/pitlanehq/garage-backend/pkg/db/models"
	pkgerrors "github.com/pitlanehq/garage-backend/pkg/errors"
)

func TestCreateAndUpdateCar(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	car, err := svc.CreateCar(ctx, CreateTeamCarInput{
		CarNumber: "27",
		Make:      "Radical",
		Model:     "SR3",
		Year:      2022,
	})
	if err != nil {
		t.Fatalf("create car: %v", err)
	}
	if car.Status != "Active" {
		t.Fatalf("expected default status Active, got %q", car.Status)
	}

	nickname := "Blue Arrow"
	odometer := 1200
	updated, err := svc.UpdateCar(ctx, car.ID, UpdateTeamCarInput{
		Nickname:   &nickname,
		OdometerKm: &odometer,
	})
	if err != nil {
		t.Fatalf("update car: %v", err)
	}
	if updated.Nickname != nickname || updated.OdometerKm != odometer {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if updated.CarNumber != "27" {
		t.Fatalf("expected untouched fields preserved, got %+v", updated)
	}
}

func TestCreateCarDuplicateNumber(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateCar(ctx, CreateTeamCarInput{CarNumber: "44"}); err != nil {
		t.Fatalf("create car: %v", err)
	}
	_, err := svc.CreateCar(ctx, CreateTeamCarInput{CarNumber: "44"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestDeleteCar(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	car, err := svc.CreateCar(ctx, CreateTeamCarInput{CarNumber: "9"})
	if err != nil {
		t.Fatalf("create car: %v", err)
	}
	if err := svc.DeleteCar(ctx, car.ID); err != nil {
		t.Fatalf("delete car: %v", err)
	}

	_, err = svc.GetCar(ctx, car.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	err = svc.DeleteCar(ctx, car.ID)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestCreateSessionValidatesReferences(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateSession(ctx, CreateCarSessionInput{
		TeamCarID: 999,
		Date:      time.Now(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeReferenceNotFound {
		t.Fatalf("expected reference error for unknown car, got %v", err)
	}

	car, err := svc.CreateCar(ctx, CreateTeamCarInput{CarNumber: "5"})
	if err != nil {
		t.Fatalf("create car: %v", err)
	}
	unknownDriver := int64(777)
	_, err = svc.CreateSession(ctx, CreateCarSessionInput{
		TeamCarID:    car.ID,
		Date:         time.Now(),
		DriverUserID: &unknownDriver,
	})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeReferenceNotFound {
		t.Fatalf("expected reference error for unknown driver, got %v", err)
	}
}

func TestCreateSessionDefaultsType(t *testing.T) {
	t.Parallel()

	svc, client := newTestService(t)
	ctx := context.Background()

	car, err := svc.CreateCar(ctx, CreateTeamCarInput{CarNumber: "3"})
	if err != nil {
		t.Fatalf("create car: %v", err)
	}
	driver := seedUser(t, client, "driver@team.com")

	session, err := svc.CreateSession(ctx, CreateCarSessionInput{
		TeamCarID:    car.ID,
		Date:         time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC),
		TrackName:    "Silverstone",
		DriverUserID: &driver.ID,
		Laps:         32,
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if session.SessionType != "Practice" {
		t.Fatalf("expected default session type, got %q", session.SessionType)
	}
	if session.CarNumber != "3" || session.DriverName != driver.Name {
		t.Fatalf("expected joined display fields, got %+v", session)
	}
}

func TestCarDashboardAggregates(t *testing.T) {
	t.Parallel()

	svc, client := newTestService(t)
	ctx := context.Background()

	car, err := svc.CreateCar(ctx, CreateTeamCarInput{CarNumber: "11"})
	if err != nil {
		t.Fatalf("create car: %v", err)
	}
	reporter := seedUser(t, client, "reporter@team.com")

	older := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, date := range []time.Time{older, newer} {
		if _, err := svc.CreateSession(ctx, CreateCarSessionInput{
			TeamCarID: car.ID,
			Date:      date,
			TrackName: "Spa",
		}); err != nil {
			t.Fatalf("create session: %v", err)
		}
	}

	closed := time.Now()
	issues := []models.IssueReport{
		{TeamCarID: car.ID, ReportedByUserID: reporter.ID, Title: "Gearbox whine", Severity: "High"},
		{TeamCarID: car.ID, ReportedByUserID: reporter.ID, Title: "Fixed already", ClosedAt: &closed},
	}
	for i := range issues {
		if err := client.DB().Create(&issues[i]).Error; err != nil {
			t.Fatalf("seed issue: %v", err)
		}
	}
	orders := []models.WorkOrder{
		{TeamCarID: car.ID, CreatedByUserID: reporter.ID, Title: "Gearbox teardown"},
		{TeamCarID: car.ID, CreatedByUserID: reporter.ID, Title: "Done", ClosedAt: &closed},
	}
	for i := range orders {
		if err := client.DB().Create(&orders[i]).Error; err != nil {
			t.Fatalf("seed work order: %v", err)
		}
	}

	dashboard, err := svc.CarDashboard(ctx, car.ID)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dashboard.LatestSession == nil || !dashboard.LatestSession.Date.Equal(newer) {
		t.Fatalf("expected latest session from %v, got %+v", newer, dashboard.LatestSession)
	}
	if len(dashboard.OpenIssues) != 1 || dashboard.OpenIssues[0].Title != "Gearbox whine" {
		t.Fatalf("unexpected open issues: %+v", dashboard.OpenIssues)
	}
	if len(dashboard.OpenWorkOrders) != 1 || dashboard.OpenWorkOrders[0].Title != "Gearbox teardown" {
		t.Fatalf("unexpected open work orders: %+v", dashboard.OpenWorkOrders)
	}
}

func seedUser(t *testing.T, client *db.Client, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Alex Driver", Email: email, PasswordHash: "hash"}
	if err := client.DB().Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	ctx := context.Background()

	client, err := db.New(ctx, config.DBConfig{
		Driver:       "sqlite",
		DSN:          "file:fleet_" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}, nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.DB().AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.TeamCar{},
		&models.CarSession{},
		&models.WorkOrder{},
		&models.IssueReport{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc, err := NewService(NewRepository(client.DB()))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, client
}
