package models

import "time"

// IssueReport captures a problem observed on a car, optionally tied to a
// session and later linked to a work order.
type IssueReport struct {
	ID                int64      `gorm:"column:id;primaryKey;autoIncrement"`
	TeamCarID         int64      `gorm:"column:team_car_id;not null;index"`
	CarSessionID      *int64     `gorm:"column:car_session_id"`
	ReportedByUserID  int64      `gorm:"column:reported_by_user_id;not null"`
	LinkedWorkOrderID *int64     `gorm:"column:linked_work_order_id"`
	Title             string     `gorm:"column:title;not null"`
	Description       string     `gorm:"column:description;not null;default:''"`
	Severity          string     `gorm:"column:severity;not null;default:'Medium'"`
	Status            string     `gorm:"column:status;not null;default:'Open'"`
	ReportedAt        time.Time  `gorm:"column:reported_at;autoCreateTime"`
	ClosedAt          *time.Time `gorm:"column:closed_at"`

	TeamCar         *TeamCar    `gorm:"foreignKey:TeamCarID"`
	CarSession      *CarSession `gorm:"foreignKey:CarSessionID"`
	ReportedByUser  *User       `gorm:"foreignKey:ReportedByUserID"`
	LinkedWorkOrder *WorkOrder  `gorm:"foreignKey:LinkedWorkOrderID"`
}
