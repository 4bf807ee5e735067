package models

import "time"

// InventoryMovement is an append-only ledger entry for a stock change.
// Positive QuantityChange is stock in, negative is stock out.
type InventoryMovement struct {
	ID                  int64     `gorm:"column:id;primaryKey;autoIncrement"`
	PartID              int64     `gorm:"column:part_id;not null;index"`
	InventoryLocationID int64     `gorm:"column:inventory_location_id;not null;index"`
	QuantityChange      int       `gorm:"column:quantity_change;not null"`
	Reason              string    `gorm:"column:reason;not null;default:''"`
	WorkOrderID         *int64    `gorm:"column:work_order_id;index"`
	PerformedByUserID   *int64    `gorm:"column:performed_by_user_id"`
	PerformedAt         time.Time `gorm:"column:performed_at;autoCreateTime"`
	Notes               string    `gorm:"column:notes;not null;default:''"`

	Part              *Part              `gorm:"foreignKey:PartID"`
	InventoryLocation *InventoryLocation `gorm:"foreignKey:InventoryLocationID"`
	WorkOrder         *WorkOrder         `gorm:"foreignKey:WorkOrderID"`
	PerformedByUser   *User              `gorm:"foreignKey:PerformedByUserID"`
}
