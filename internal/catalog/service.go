package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pitlanehq/garage-backend/pkg/db"
	"github.com/pitlanehq/garage-backend/pkg/db/models"
	pkgerrors "github.com/pitlanehq/garage-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes supplier, part, and inventory location operations.
// Deletes deactivate rather than remove so ledger history keeps its
// references.
type Service interface {
	ListSuppliers(ctx context.Context, activeOnly bool) ([]SupplierView, error)
	GetSupplier(ctx context.Context, id int64) (*SupplierView, error)
	CreateSupplier(ctx context.Context, input CreateSupplierInput) (*SupplierView, error)
	UpdateSupplier(ctx context.Context, id int64, input UpdateSupplierInput) (*SupplierView, error)
	DeactivateSupplier(ctx context.Context, id int64) error

	ListParts(ctx context.Context, filter PartFilter) ([]PartView, error)
	GetPart(ctx context.Context, id int64) (*PartView, error)
	CreatePart(ctx context.Context, input CreatePartInput) (*PartView, error)
	UpdatePart(ctx context.Context, id int64, input UpdatePartInput) (*PartView, error)
	DeactivatePart(ctx context.Context, id int64) error

	ListLocations(ctx context.Context, activeOnly bool) ([]LocationView, error)
	GetLocation(ctx context.Context, id int64) (*LocationView, error)
	CreateLocation(ctx context.Context, input CreateLocationInput) (*LocationView, error)
	UpdateLocation(ctx context.Context, id int64, input UpdateLocationInput) (*LocationView, error)
	DeactivateLocation(ctx context.Context, id int64) error
}

type service struct {
	repo            *Repository
	defaultMinStock int
}

// NewService constructs a catalog service instance. defaultMinStock seeds the
// reorder point of parts created without one.
func NewService(repo *Repository, defaultMinStock int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if defaultMinStock < 0 {
		defaultMinStock = 0
	}
	return &service{repo: repo, defaultMinStock: defaultMinStock}, nil
}

func (s *service) ListSuppliers(ctx context.Context, activeOnly bool) ([]SupplierView, error) {
	rows, err := s.repo.ListSuppliers(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list suppliers")
	}
	views := make([]SupplierView, 0, len(rows))
	for i := range rows {
		views = append(views, *supplierView(&rows[i]))
	}
	return views, nil
}

func (s *service) GetSupplier(ctx context.Context, id int64) (*SupplierView, error) {
	supplier, err := s.loadSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	return supplierView(supplier), nil
}

func (s *service) CreateSupplier(ctx context.Context, input CreateSupplierInput) (*SupplierView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	supplier := &models.Supplier{
		Name:         name,
		ContactEmail: strings.TrimSpace(input.ContactEmail),
		Phone:        strings.TrimSpace(input.Phone),
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		Country:      input.Country,
		IsActive:     true,
	}
	if err := s.repo.CreateSupplier(ctx, supplier); err != nil {
		if db.IsUniqueViolation(err, "suppliers_name_key") {
			return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "supplier %q already exists", name)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create supplier")
	}
	return supplierView(supplier), nil
}

func (s *service) UpdateSupplier(ctx context.Context, id int64, input UpdateSupplierInput) (*SupplierView, error) {
	supplier, err := s.loadSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		supplier.Name = name
	}
	if input.ContactEmail != nil {
		supplier.ContactEmail = strings.TrimSpace(*input.ContactEmail)
	}
	if input.Phone != nil {
		supplier.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.AddressLine1 != nil {
		supplier.AddressLine1 = *input.AddressLine1
	}
	if input.AddressLine2 != nil {
		supplier.AddressLine2 = *input.AddressLine2
	}
	if input.City != nil {
		supplier.City = *input.City
	}
	if input.Country != nil {
		supplier.Country = *input.Country
	}
	if input.IsActive != nil {
		supplier.IsActive = *input.IsActive
	}

	if err := s.repo.SaveSupplier(ctx, supplier); err != nil {
		if db.IsUniqueViolation(err, "suppliers_name_key") {
			return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "supplier %q already exists", supplier.Name)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update supplier")
	}
	return supplierView(supplier), nil
}

func (s *service) DeactivateSupplier(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "supplier id must be positive")
	}
	found, err := s.repo.DeactivateSupplier(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate supplier")
	}
	if !found {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "supplier %d not found", id)
	}
	return nil
}

func (s *service) ListParts(ctx context.Context, filter PartFilter) ([]PartView, error) {
	rows, err := s.repo.ListParts(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list parts")
	}
	views := make([]PartView, 0, len(rows))
	for i := range rows {
		views = append(views, *partView(&rows[i]))
	}
	return views, nil
}

func (s *service) GetPart(ctx context.Context, id int64) (*PartView, error) {
	part, err := s.loadPart(ctx, id)
	if err != nil {
		return nil, err
	}
	return partView(part), nil
}

func (s *service) CreatePart(ctx context.Context, input CreatePartInput) (*PartView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if input.UnitCost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit cost cannot be negative")
	}

	reorderPoint := s.defaultMinStock
	if input.ReorderPoint != nil {
		if *input.ReorderPoint < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "reorder point cannot be negative")
		}
		reorderPoint = *input.ReorderPoint
	}
	if input.SupplierID != nil {
		if err := s.checkSupplier(ctx, *input.SupplierID); err != nil {
			return nil, err
		}
	}

	part := &models.Part{
		Name:         name,
		SKU:          sku,
		Category:     strings.TrimSpace(input.Category),
		UnitCost:     input.UnitCost,
		ReorderPoint: reorderPoint,
		SupplierID:   input.SupplierID,
		IsActive:     true,
	}
	if err := s.repo.CreatePart(ctx, part); err != nil {
		if db.IsUniqueViolation(err, "parts_sku_key") {
			return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "part with sku %q already exists", sku)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create part")
	}
	return s.GetPart(ctx, part.ID)
}

func (s *service) UpdatePart(ctx context.Context, id int64, input UpdatePartInput) (*PartView, error) {
	part, err := s.loadPart(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		part.Name = name
	}
	if input.Category != nil {
		part.Category = strings.TrimSpace(*input.Category)
	}
	if input.UnitCost != nil {
		if input.UnitCost.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit cost cannot be negative")
		}
		part.UnitCost = *input.UnitCost
	}
	if input.ReorderPoint != nil {
		if *input.ReorderPoint < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "reorder point cannot be negative")
		}
		part.ReorderPoint = *input.ReorderPoint
	}
	if input.SupplierID != nil {
		if err := s.checkSupplier(ctx, *input.SupplierID); err != nil {
			return nil, err
		}
		part.SupplierID = input.SupplierID
	}
	if input.IsActive != nil {
		part.IsActive = *input.IsActive
	}

	part.Supplier = nil
	if err := s.repo.SavePart(ctx, part); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update part")
	}
	return s.GetPart(ctx, id)
}

func (s *service) DeactivatePart(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "part id must be positive")
	}
	found, err := s.repo.DeactivatePart(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate part")
	}
	if !found {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "part %d not found", id)
	}
	return nil
}

func (s *service) ListLocations(ctx context.Context, activeOnly bool) ([]LocationView, error) {
	rows, err := s.repo.ListLocations(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list locations")
	}
	views := make([]LocationView, 0, len(rows))
	for i := range rows {
		views = append(views, *locationView(&rows[i]))
	}
	return views, nil
}

func (s *service) GetLocation(ctx context.Context, id int64) (*LocationView, error) {
	location, err := s.loadLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	return locationView(location), nil
}

func (s *service) CreateLocation(ctx context.Context, input CreateLocationInput) (*LocationView, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "code is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	location := &models.InventoryLocation{
		Code:        code,
		Name:        name,
		Description: input.Description,
		IsActive:    true,
	}
	if err := s.repo.CreateLocation(ctx, location); err != nil {
		if db.IsUniqueViolation(err, "inventory_locations_code_key") {
			return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "location with code %q already exists", code)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create location")
	}
	return locationView(location), nil
}

func (s *service) UpdateLocation(ctx context.Context, id int64, input UpdateLocationInput) (*LocationView, error) {
	location, err := s.loadLocation(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		location.Name = name
	}
	if input.Description != nil {
		location.Description = *input.Description
	}
	if input.IsActive != nil {
		location.IsActive = *input.IsActive
	}

	if err := s.repo.SaveLocation(ctx, location); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update location")
	}
	return locationView(location), nil
}

func (s *service) DeactivateLocation(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "location id must be positive")
	}
	found, err := s.repo.DeactivateLocation(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate location")
	}
	if !found {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "location %d not found", id)
	}
	return nil
}

func (s *service) loadSupplier(ctx context.Context, id int64) (*models.Supplier, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id must be positive")
	}
	supplier, err := s.repo.FindSupplierByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "supplier %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load supplier")
	}
	return supplier, nil
}

func (s *service) loadPart(ctx context.Context, id int64) (*models.Part, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "part id must be positive")
	}
	part, err := s.repo.FindPartByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "part %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load part")
	}
	return part, nil
}

func (s *service) loadLocation(ctx context.Context, id int64) (*models.InventoryLocation, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location id must be positive")
	}
	location, err := s.repo.FindLocationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "location %d not found", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load location")
	}
	return location, nil
}

func (s *service) checkSupplier(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "supplier id must be positive")
	}
	exists, err := s.repo.SupplierExists(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load supplier")
	}
	if !exists {
		return pkgerrors.Newf(pkgerrors.CodeReferenceNotFound, "supplier %d not found", id)
	}
	return nil
}
