package models

import "gorm.io/gorm"

type Branch struct {
	gorm.Model

	Name string `json:"name" gorm:"type:varchar(100)"`
	Code string `json:"code" gorm:"type:varchar(20);uniqueIndex"`
}
