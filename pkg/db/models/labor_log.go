package models

import "time"

// LaborLog records mechanic time spent on a work order task.
type LaborLog struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	WorkOrderTaskID int64     `gorm:"column:work_order_task_id;not null;index"`
	MechanicUserID  int64     `gorm:"column:mechanic_user_id;not null;index"`
	Minutes         int       `gorm:"column:minutes;not null"`
	LogDate         time.Time `gorm:"column:log_date;not null"`
	Comment         string    `gorm:"column:comment;not null;default:''"`

	WorkOrderTask *WorkOrderTask `gorm:"foreignKey:WorkOrderTaskID"`
	MechanicUser  *User          `gorm:"foreignKey:MechanicUserID"`
}
