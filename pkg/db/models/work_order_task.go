package models

import "time"

// WorkOrderTask is a line item within a work order.
type WorkOrderTask struct {
	ID               int64      `gorm:"column:id;primaryKey;autoIncrement"`
	WorkOrderID      int64      `gorm:"column:work_order_id;not null;index"`
	Title            string     `gorm:"column:title;not null"`
	Description      string     `gorm:"column:description;not null;default:''"`
	Status           string     `gorm:"column:status;not null;default:'Todo'"`
	SortOrder        int        `gorm:"column:sort_order;not null;default:0"`
	EstimatedMinutes *int       `gorm:"column:estimated_minutes"`
	CompletedAt      *time.Time `gorm:"column:completed_at"`

	WorkOrder *WorkOrder `gorm:"foreignKey:WorkOrderID"`
}
