package models

import "time"

// TeamCar is a race car in the team fleet.
type TeamCar struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CarNumber  string    `gorm:"column:car_number;type:text;not null;uniqueIndex"`
	Nickname   string    `gorm:"column:nickname;not null;default:''"`
	Make       string    `gorm:"column:make;not null;default:''"`
	Model      string    `gorm:"column:model;not null;default:''"`
	Year       int       `gorm:"column:year;not null;default:0"`
	CarClass   string    `gorm:"column:car_class;not null;default:''"`
	Status     string    `gorm:"column:status;not null;default:'Active'"`
	OdometerKm int       `gorm:"column:odometer_km;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
