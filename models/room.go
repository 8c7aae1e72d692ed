package models

import (
	"strings"

	"gorm.io/gorm"
)

// RoomStatus is the cached projection of a room's current state. It is
// kept roughly in sync with the booking timeline but is never the
// source of truth for availability decisions.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusBooked      RoomStatus = "booked"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusCleaning    RoomStatus = "cleaning"
	RoomStatusMaintenance RoomStatus = "maintenance"
	RoomStatusUnavailable RoomStatus = "unavailable"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusBooked, RoomStatusOccupied,
		RoomStatusCleaning, RoomStatusMaintenance, RoomStatusUnavailable:
		return true
	}
	return false
}

// NormalizeRoomStatus maps loosely cased input ("Available", "CLEANING")
// onto the closed enum. Returns the empty status when nothing matches.
func NormalizeRoomStatus(raw string) RoomStatus {
	s := RoomStatus(strings.ToLower(strings.TrimSpace(raw)))
	if s.Valid() {
		return s
	}
	return ""
}

type Room struct {
	gorm.Model

	BranchID uint   `json:"branchId" gorm:"column:branch_id;uniqueIndex:idx_branch_room_number"`
	Number   string `json:"number" gorm:"column:room_number;uniqueIndex:idx_branch_room_number;type:varchar(50)"`

	Type         string     `json:"type" gorm:"type:varchar(50)"`
	Floor        string     `json:"floor" gorm:"type:varchar(10)"`
	NightlyRate  int64      `json:"nightlyRate" gorm:"column:nightly_rate"`
	Status       RoomStatus `json:"status" gorm:"type:varchar(20);default:available"`
	MaxOccupancy int        `json:"maxOccupancy" gorm:"column:max_occupancy"`
	Description  string     `json:"description" gorm:"type:text"`

	Branch Branch `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
}
