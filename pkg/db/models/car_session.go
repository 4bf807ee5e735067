package models

import "time"

// CarSession records a track outing (practice, test, or race) for a car.
type CarSession struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	TeamCarID    int64     `gorm:"column:team_car_id;not null;index"`
	SessionType  string    `gorm:"column:session_type;not null;default:'Practice'"`
	Date         time.Time `gorm:"column:date;not null"`
	TrackName    string    `gorm:"column:track_name;not null;default:''"`
	DriverUserID *int64    `gorm:"column:driver_user_id"`
	Laps         int       `gorm:"column:laps;not null;default:0"`
	Notes        string    `gorm:"column:notes;not null;default:''"`

	TeamCar    *TeamCar `gorm:"foreignKey:TeamCarID"`
	DriverUser *User    `gorm:"foreignKey:DriverUserID"`
}
