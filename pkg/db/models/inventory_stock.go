package models

import "time"

// InventoryStock is the current on-hand quantity of a part at a location.
// Quantity never goes below zero; every change is mirrored by exactly one
// InventoryMovement row in the same transaction.
type InventoryStock struct {
	ID                  int64     `gorm:"column:id;primaryKey;autoIncrement"`
	PartID              int64     `gorm:"column:part_id;not null;uniqueIndex:idx_stock_part_location"`
	InventoryLocationID int64     `gorm:"column:inventory_location_id;not null;uniqueIndex:idx_stock_part_location"`
	Quantity            int       `gorm:"column:quantity;not null;default:0"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Part              *Part              `gorm:"foreignKey:PartID"`
	InventoryLocation *InventoryLocation `gorm:"foreignKey:InventoryLocationID"`
}

func (InventoryStock) TableName() string {
	return "inventory_stock"
}
