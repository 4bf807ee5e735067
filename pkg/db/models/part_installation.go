package models

import "time"

// PartInstallation records parts fitted to a car under a work order. The
// matching stock decrement and ledger entry commit in the same transaction.
type PartInstallation struct {
	ID                  int64     `gorm:"column:id;primaryKey;autoIncrement"`
	WorkOrderID         int64     `gorm:"column:work_order_id;not null;index"`
	PartID              int64     `gorm:"column:part_id;not null;index"`
	InventoryLocationID int64     `gorm:"column:inventory_location_id;not null"`
	Quantity            int       `gorm:"column:quantity;not null"`
	InstalledByUserID   *int64    `gorm:"column:installed_by_user_id"`
	InstalledAt         time.Time `gorm:"column:installed_at;autoCreateTime"`
	Notes               string    `gorm:"column:notes;not null;default:''"`

	WorkOrder         *WorkOrder         `gorm:"foreignKey:WorkOrderID"`
	Part              *Part              `gorm:"foreignKey:PartID"`
	InventoryLocation *InventoryLocation `gorm:"foreignKey:InventoryLocationID"`
	InstalledByUser   *User              `gorm:"foreignKey:InstalledByUserID"`
}
