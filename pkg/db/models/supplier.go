package models

import "time"

// Supplier is a parts vendor. Deactivated rather than deleted so historical
// parts keep their reference.
type Supplier struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string    `gorm:"column:name;type:text;not null;uniqueIndex"`
	ContactEmail string    `gorm:"column:contact_email;not null;default:''"`
	Phone        string    `gorm:"column:phone;not null;default:''"`
	AddressLine1 string    `gorm:"column:address_line1;not null;default:''"`
	AddressLine2 string    `gorm:"column:address_line2;not null;default:''"`
	City         string    `gorm:"column:city;not null;default:''"`
	Country      string    `gorm:"column:country;not null;default:''"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
