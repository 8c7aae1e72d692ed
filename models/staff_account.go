package models

import "gorm.io/gorm"

const (
	StaffRoleAdmin        = "admin"
	StaffRoleReceptionist = "receptionist"
)

// StaffAccount is a back-office login. Password holds a bcrypt hash.
type StaffAccount struct {
	gorm.Model

	FullName string `json:"fullName" gorm:"type:varchar(100)"`
	Username string `json:"username" gorm:"type:varchar(100);uniqueIndex"`
	Password string `json:"-" gorm:"type:varchar(100)"`
	Role     string `json:"role" gorm:"type:varchar(30);default:receptionist"`
}
