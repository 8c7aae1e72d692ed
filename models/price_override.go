package models

import "gorm.io/gorm"

// PriceOverride substitutes a room's default nightly rate. Only rows
// marked active participate in pricing; inactive rows are kept for
// history.
type PriceOverride struct {
	gorm.Model

	RoomID      uint  `json:"roomId" gorm:"column:room_id;index"`
	BranchID    uint  `json:"branchId" gorm:"column:branch_id;index"`
	NightlyRate int64 `json:"nightlyRate" gorm:"column:nightly_rate"`
	Active      bool  `json:"active" gorm:"default:true"`
}
