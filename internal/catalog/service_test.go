package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pitlanehq/garage-backend/pkg/config"
	"github.com/pitlanehq/garage-backend/pkg/db"
	"github.com/pitlanehq/garage-backend/pkg/db/models"
	pkgerrors "github.com/pitlanehq/garage-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

func TestSupplierLifecycle(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateSupplier(ctx, CreateSupplierInput{
		Name:         "Millington Motorsport",
		ContactEmail: "sales@millington.test",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.IsActive {
		t.Fatal("expected new supplier active")
	}

	_, err = svc.CreateSupplier(ctx, CreateSupplierInput{Name: "Millington Motorsport"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict on duplicate name, got %v", err)
	}

	phone := "+44 1onetwo"
	updated, err := svc.UpdateSupplier(ctx, created.ID, UpdateSupplierInput{Phone: &phone})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Phone != phone || updated.ContactEmail != "sales@millington.test" {
		t.Fatalf("expected partial update, got %+v", updated)
	}

	if err := svc.DeactivateSupplier(ctx, created.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	got, err := svc.GetSupplier(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after deactivate: %v", err)
	}
	if got.IsActive {
		t.Fatal("expected supplier deactivated, not deleted")
	}

	active, err := svc.ListSuppliers(ctx, true)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active suppliers, got %d", len(active))
	}
}

func TestCreatePartDefaultsReorderPoint(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	part, err := svc.CreatePart(ctx, CreatePartInput{
		Name:     "Wheel Nut",
		SKU:      "WN-100",
		UnitCost: decimal.RequireFromString("3.25"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if part.ReorderPoint != 4 {
		t.Fatalf("expected configured default reorder point 4, got %d", part.ReorderPoint)
	}

	explicit := 10
	part, err = svc.CreatePart(ctx, CreatePartInput{
		Name:         "Brake Line",
		SKU:          "BL-200",
		UnitCost:     decimal.RequireFromString("18.00"),
		ReorderPoint: &explicit,
	})
	if err != nil {
		t.Fatalf("create explicit: %v", err)
	}
	if part.ReorderPoint != 10 {
		t.Fatalf("expected explicit reorder point, got %d", part.ReorderPoint)
	}
}

func TestCreatePartValidatesSupplier(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	unknown := int64(999)
	_, err := svc.CreatePart(ctx, CreatePartInput{
		Name:       "Hub",
		SKU:        "HUB-1",
		SupplierID: &unknown,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeReferenceNotFound {
		t.Fatalf("expected reference error, got %v", err)
	}

	supplier, err := svc.CreateSupplier(ctx, CreateSupplierInput{Name: "Hub Co"})
	if err != nil {
		t.Fatalf("create supplier: %v", err)
	}
	part, err := svc.CreatePart(ctx, CreatePartInput{
		Name:       "Hub",
		SKU:        "HUB-1",
		SupplierID: &supplier.ID,
	})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if part.SupplierName != "Hub Co" {
		t.Fatalf("expected joined supplier name, got %+v", part)
	}
}

func TestCreatePartDuplicateSKU(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreatePart(ctx, CreatePartInput{Name: "A", SKU: "DUP-1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.CreatePart(ctx, CreatePartInput{Name: "B", SKU: "DUP-1"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestListPartsFilters(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	brakes, err := svc.CreatePart(ctx, CreatePartInput{Name: "Brake Pad Set", SKU: "BP-1", Category: "Brakes"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreatePart(ctx, CreatePartInput{Name: "Oil Filter", SKU: "OF-1", Category: "Engine"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.DeactivatePart(ctx, brakes.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	views, err := svc.ListParts(ctx, PartFilter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(views) != 1 || views[0].SKU != "OF-1" {
		t.Fatalf("unexpected active parts: %+v", views)
	}

	views, err = svc.ListParts(ctx, PartFilter{Category: "Brakes"})
	if err != nil {
		t.Fatalf("list category: %v", err)
	}
	if len(views) != 1 || views[0].SKU != "BP-1" {
		t.Fatalf("unexpected category parts: %+v", views)
	}

	views, err = svc.ListParts(ctx, PartFilter{Query: "brake"})
	if err != nil {
		t.Fatalf("list query: %v", err)
	}
	if len(views) != 1 || views[0].SKU != "BP-1" {
		t.Fatalf("unexpected query parts: %+v", views)
	}
}

func TestListPartsNeedsReorder(t *testing.T) {
	t.Parallel()

	svc, fix := newTestService(t)
	ctx := context.Background()

	reorder := 5
	low, err := svc.CreatePart(ctx, CreatePartInput{Name: "Low Part", SKU: "LOW-1", ReorderPoint: &reorder})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	stocked, err := svc.CreatePart(ctx, CreatePartInput{Name: "Stocked Part", SKU: "OK-1", ReorderPoint: &reorder})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	location, err := svc.CreateLocation(ctx, CreateLocationInput{Code: "MAIN", Name: "Main Garage"})
	if err != nil {
		t.Fatalf("create location: %v", err)
	}
	seed := []models.InventoryStock{
		{PartID: low.ID, InventoryLocationID: location.ID, Quantity: 2},
		{PartID: stocked.ID, InventoryLocationID: location.ID, Quantity: 9},
	}
	for i := range seed {
		if err := fix.client.DB().Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed stock: %v", err)
		}
	}

	views, err := svc.ListParts(ctx, PartFilter{NeedsReorder: true, LocationID: location.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 || views[0].SKU != "LOW-1" {
		t.Fatalf("expected only the low part, got %+v", views)
	}

	// With no counter row, a part counts as zero on hand.
	if _, err := svc.CreatePart(ctx, CreatePartInput{Name: "Missing Part", SKU: "MISS-1", ReorderPoint: &reorder}); err != nil {
		t.Fatalf("create: %v", err)
	}
	views, err = svc.ListParts(ctx, PartFilter{NeedsReorder: true})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	found := map[string]bool{}
	for _, view := range views {
		found[view.SKU] = true
	}
	if !found["LOW-1"] || !found["MISS-1"] || found["OK-1"] {
		t.Fatalf("unexpected reorder set: %+v", views)
	}
}

func TestLocationLifecycle(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateLocation(ctx, CreateLocationInput{Code: "TRK", Name: "Trackside Trailer"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.CreateLocation(ctx, CreateLocationInput{Code: "TRK", Name: "Other"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict on duplicate code, got %v", err)
	}

	if err := svc.DeactivateLocation(ctx, created.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	got, err := svc.GetLocation(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.IsActive {
		t.Fatal("expected location deactivated, not deleted")
	}

	err = svc.DeactivateLocation(ctx, 999)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

type fixture struct {
	client *db.Client
}

func newTestService(t *testing.T) (Service, *fixture) {
	t.Helper()
	ctx := context.Background()

	client, err := db.New(ctx, config.DBConfig{
		Driver:       "sqlite",
		DSN:          "file:catalog_" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}, nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.DB().AutoMigrate(
		&models.Supplier{},
		&models.Part{},
		&models.InventoryLocation{},
		&models.InventoryStock{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc, err := NewService(NewRepository(client.DB()), 4)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, &fixture{client: client}
}
