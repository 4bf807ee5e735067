package inventory

import (
	"time"

	"github.com/pitlanehq/garage-backend/pkg/db/models"
)

// AdjustStockInput carries a signed stock change for a part at a location.
type AdjustStockInput struct {
	PartID              int64
	InventoryLocationID int64
	QuantityChange      int
	Reason              string
	WorkOrderID         *int64
	Notes               string
}

// ConsumePartInput records parts taken from stock against a work order.
type ConsumePartInput struct {
	WorkOrderID         int64
	PartID              int64
	InventoryLocationID int64
	Quantity            int
	Notes               string
}

// StockFilter narrows stock listings. Zero values mean "no filter".
type StockFilter struct {
	PartID              int64
	InventoryLocationID int64
}

// MovementFilter narrows ledger listings. Zero values mean "no filter".
type MovementFilter struct {
	PartID              int64
	InventoryLocationID int64
	WorkOrderID         int64
	Reason              string
	Limit               int
	Cursor              string
}

// StockView is the part/location-joined projection of a stock row.
type StockView struct {
	ID                  int64     `json:"id"`
	PartID              int64     `json:"partId"`
	PartSKU             string    `json:"partSku"`
	PartName            string    `json:"partName"`
	InventoryLocationID int64     `json:"inventoryLocationId"`
	LocationCode        string    `json:"locationCode"`
	LocationName        string    `json:"locationName"`
	Quantity            int       `json:"quantity"`
	ReorderPoint        int       `json:"reorderPoint"`
	NeedsReorder        bool      `json:"needsReorder"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// MovementView is one ledger entry with display fields resolved.
type MovementView struct {
	ID                  int64     `json:"id"`
	PartID              int64     `json:"partId"`
	PartSKU             string    `json:"partSku"`
	PartName            string    `json:"partName"`
	InventoryLocationID int64     `json:"inventoryLocationId"`
	LocationCode        string    `json:"locationCode"`
	QuantityChange      int       `json:"quantityChange"`
	Reason              string    `json:"reason"`
	WorkOrderID         *int64    `json:"workOrderId,omitempty"`
	PerformedByUserID   *int64    `json:"performedByUserId,omitempty"`
	PerformedByName     string    `json:"performedByName,omitempty"`
	PerformedAt         time.Time `json:"performedAt"`
	Notes               string    `json:"notes"`
}

// MovementPage is a cursor page of ledger entries, newest first.
type MovementPage struct {
	Movements  []MovementView `json:"movements"`
	NextCursor string         `json:"nextCursor,omitempty"`
}

// InstallationView is the part/location-joined projection of an installation.
type InstallationView struct {
	ID                  int64     `json:"id"`
	WorkOrderID         int64     `json:"workOrderId"`
	PartID              int64     `json:"partId"`
	PartSKU             string    `json:"partSku"`
	PartName            string    `json:"partName"`
	InventoryLocationID int64     `json:"inventoryLocationId"`
	LocationCode        string    `json:"locationCode"`
	Quantity            int       `json:"quantity"`
	InstalledByUserID   *int64    `json:"installedByUserId,omitempty"`
	InstalledByName     string    `json:"installedByName,omitempty"`
	InstalledAt         time.Time `json:"installedAt"`
	Notes               string    `json:"notes"`
}

func stockView(stock *models.InventoryStock) *StockView {
	view := &StockView{
		ID:                  stock.ID,
		PartID:              stock.PartID,
		InventoryLocationID: stock.InventoryLocationID,
		Quantity:            stock.Quantity,
		UpdatedAt:           stock.UpdatedAt,
	}
	if stock.Part != nil {
		view.PartSKU = stock.Part.SKU
		view.PartName = stock.Part.Name
		view.ReorderPoint = stock.Part.ReorderPoint
		view.NeedsReorder = stock.Quantity < stock.Part.ReorderPoint
	}
	if stock.InventoryLocation != nil {
		view.LocationCode = stock.InventoryLocation.Code
		view.LocationName = stock.InventoryLocation.Name
	}
	return view
}

func movementView(movement *models.InventoryMovement) MovementView {
	view := MovementView{
		ID:                  movement.ID,
		PartID:              movement.PartID,
		InventoryLocationID: movement.InventoryLocationID,
		QuantityChange:      movement.QuantityChange,
		Reason:              movement.Reason,
		WorkOrderID:         movement.WorkOrderID,
		PerformedByUserID:   movement.PerformedByUserID,
		PerformedAt:         movement.PerformedAt,
		Notes:               movement.Notes,
	}
	if movement.Part != nil {
		view.PartSKU = movement.Part.SKU
		view.PartName = movement.Part.Name
	}
	if movement.InventoryLocation != nil {
		view.LocationCode = movement.InventoryLocation.Code
	}
	if movement.PerformedByUser != nil {
		view.PerformedByName = movement.PerformedByUser.Name
	}
	return view
}

func installationView(installation *models.PartInstallation) *InstallationView {
	view := &InstallationView{
		ID:                  installation.ID,
		WorkOrderID:         installation.WorkOrderID,
		PartID:              installation.PartID,
		InventoryLocationID: installation.InventoryLocationID,
		Quantity:            installation.Quantity,
		InstalledByUserID:   installation.InstalledByUserID,
		InstalledAt:         installation.InstalledAt,
		Notes:               installation.Notes,
	}
	if installation.Part != nil {
		view.PartSKU = installation.Part.SKU
		view.PartName = installation.Part.Name
	}
	if installation.InventoryLocation != nil {
		view.LocationCode = installation.InventoryLocation.Code
	}
	if installation.InstalledByUser != nil {
		view.InstalledByName = installation.InstalledByUser.Name
	}
	return view
}
