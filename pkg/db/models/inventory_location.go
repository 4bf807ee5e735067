package models

import "time"

// InventoryLocation is a physical storage place (shelf, trailer, paddock bin).
type InventoryLocation struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Code        string    `gorm:"column:code;type:text;not null;uniqueIndex"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description;not null;default:''"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
