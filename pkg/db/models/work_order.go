package models

import "time"

// WorkOrder is a unit of maintenance work scheduled against a car.
type WorkOrder struct {
	ID               int64      `gorm:"column:id;primaryKey;autoIncrement"`
	TeamCarID        int64      `gorm:"column:team_car_id;not null;index"`
	CreatedByUserID  int64      `gorm:"column:created_by_user_id;not null"`
	AssignedToUserID *int64     `gorm:"column:assigned_to_user_id"`
	CarSessionID     *int64     `gorm:"column:car_session_id"`
	Title            string     `gorm:"column:title;not null"`
	Description      string     `gorm:"column:description;not null;default:''"`
	Priority         string     `gorm:"column:priority;not null;default:'Medium'"`
	Status           string     `gorm:"column:status;not null;default:'Open'"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	DueDate          *time.Time `gorm:"column:due_date"`
	ClosedAt         *time.Time `gorm:"column:closed_at"`

	TeamCar        *TeamCar    `gorm:"foreignKey:TeamCarID"`
	CreatedByUser  *User       `gorm:"foreignKey:CreatedByUserID"`
	AssignedToUser *User       `gorm:"foreignKey:AssignedToUserID"`
	CarSession     *CarSession `gorm:"foreignKey:CarSessionID"`
}
