package catalog

import (
	"time"

	"github.com/pitlanehq/garage-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// SupplierView is the transport shape for a parts vendor.
type SupplierView struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contactEmail"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"addressLine1"`
	AddressLine2 string    `json:"addressLine2"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateSupplierInput holds the validated payload to register a supplier.
type CreateSupplierInput struct {
	Name         string
	ContactEmail string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	Country      string
}

// UpdateSupplierInput holds optional mutation values for a supplier.
type UpdateSupplierInput struct {
	Name         *string
	ContactEmail *string
	Phone        *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	Country      *string
	IsActive     *bool
}

// PartView is the transport shape for a catalog part.
type PartView struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Category     string          `json:"category"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	ReorderPoint int             `json:"reorderPoint"`
	SupplierID   *int64          `json:"supplierId,omitempty"`
	SupplierName string          `json:"supplierName,omitempty"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// CreatePartInput holds the validated payload to add a part. A nil
// ReorderPoint falls back to the configured default minimum stock level.
type CreatePartInput struct {
	Name         string
	SKU          string
	Category     string
	UnitCost     decimal.Decimal
	ReorderPoint *int
	SupplierID   *int64
}

// UpdatePartInput holds optional mutation values for a part.
type UpdatePartInput struct {
	Name         *string
	Category     *string
	UnitCost     *decimal.Decimal
	ReorderPoint *int
	SupplierID   *int64
	IsActive     *bool
}

// PartFilter narrows part listings. LocationID scopes the reorder check to
// stock held at one location.
type PartFilter struct {
	ActiveOnly   bool
	Category     string
	SupplierID   int64
	Query        string
	LocationID   int64
	NeedsReorder bool
}

// LocationView is the transport shape for an inventory location.
type LocationView struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateLocationInput holds the validated payload to add a location.
type CreateLocationInput struct {
	Code        string
	Name        string
	Description string
}

// UpdateLocationInput holds optional mutation values for a location.
type UpdateLocationInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

func supplierView(supplier *models.Supplier) *SupplierView {
	return &SupplierView{
		ID:           supplier.ID,
		Name:         supplier.Name,
		ContactEmail: supplier.ContactEmail,
		Phone:        supplier.Phone,
		AddressLine1: supplier.AddressLine1,
		AddressLine2: supplier.AddressLine2,
		City:         supplier.City,
		Country:      supplier.Country,
		IsActive:     supplier.IsActive,
		CreatedAt:    supplier.CreatedAt,
	}
}

func partView(part *models.Part) *PartView {
	view := &PartView{
		ID:           part.ID,
		Name:         part.Name,
		SKU:          part.SKU,
		Category:     part.Category,
		UnitCost:     part.UnitCost,
		ReorderPoint: part.ReorderPoint,
		SupplierID:   part.SupplierID,
		IsActive:     part.IsActive,
		CreatedAt:    part.CreatedAt,
	}
	if part.Supplier != nil {
		view.SupplierName = part.Supplier.Name
	}
	return view
}

func locationView(location *models.InventoryLocation) *LocationView {
	return &LocationView{
		ID:          location.ID,
		Code:        location.Code,
		Name:        location.Name,
		Description: location.Description,
		IsActive:    location.IsActive,
		CreatedAt:   location.CreatedAt,
	}
}
