package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part is a catalog entry for a consumable or replaceable component.
type Part struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string          `gorm:"column:name;not null"`
	SKU          string          `gorm:"column:sku;type:text;not null;uniqueIndex"`
	Category     string          `gorm:"column:category;not null;default:''"`
	UnitCost     decimal.Decimal `gorm:"column:unit_cost;type:numeric(12,2);not null;default:0"`
	ReorderPoint int             `gorm:"column:reorder_point;not null;default:0"`
	SupplierID   *int64          `gorm:"column:supplier_id"`
	IsActive     bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`

	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
}
