package models

// Role is a named permission group. The set is seeded by migration and never
// mutated at runtime.
type Role struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;type:text;not null;uniqueIndex"`
}

// UserRole joins users to roles.
type UserRole struct {
	UserID int64 `gorm:"column:user_id;primaryKey"`
	RoleID int64 `gorm:"column:role_id;primaryKey"`
}
