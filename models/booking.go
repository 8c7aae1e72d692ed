package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	PaymentMethodCash         = "cash"
	PaymentMethodCard         = "card"
	PaymentMethodMobileMoney  = "mobile_money"
	PaymentMethodBankTransfer = "bank_transfer"
)

// ValidPaymentMethod accepts the known methods plus empty (unpaid /
// settle at desk). Settlement itself is an external collaborator.
func ValidPaymentMethod(m string) bool {
	switch m {
	case "", PaymentMethodCash, PaymentMethodCard, PaymentMethodMobileMoney, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// Booking is one stay of one room over the half-open date interval
// [CheckIn, CheckOut). Guest identity is denormalized at booking time.
// Rows are never physically deleted: cancelled bookings stay for audit
// and simply drop out of conflict checks.
type Booking struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	RoomID        uint   `json:"roomId" gorm:"column:room_id;index"`
	ReferenceCode string `json:"referenceCode" gorm:"column:reference_code;type:varchar(32);uniqueIndex"`

	GuestName  string `json:"guestName" gorm:"column:guest_name;type:varchar(100)"`
	GuestEmail string `json:"guestEmail" gorm:"column:guest_email;type:varchar(100);index"`
	GuestPhone string `json:"guestPhone" gorm:"column:guest_phone;type:varchar(30)"`

	// Check-in inclusive, check-out exclusive. Stored at midnight UTC.
	CheckIn  time.Time `json:"checkIn" gorm:"column:check_in;index"`
	CheckOut time.Time `json:"checkOut" gorm:"column:check_out;index"`
	Nights   int       `json:"nights"`

	Adults   int `json:"adults" gorm:"default:1"`
	Children int `json:"children" gorm:"default:0"`

	// Amounts are integer minor units.
	NightlyRate   int64  `json:"nightlyRate" gorm:"column:nightly_rate"`
	TotalAmount   int64  `json:"totalAmount" gorm:"column:total_amount"`
	PaymentMethod string `json:"paymentMethod" gorm:"column:payment_method;type:varchar(30)"`

	SpecialRequests datatypes.JSON `json:"specialRequests,omitempty" gorm:"column:special_requests"`

	Status BookingStatus `json:"status" gorm:"type:varchar(20);index"`

	CancelReason string     `json:"cancelReason,omitempty" gorm:"column:cancel_reason;type:varchar(255)"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty" gorm:"column:cancelled_at"`
	CheckedInAt  *time.Time `json:"checkedInAt,omitempty" gorm:"column:checked_in_at"`
	CheckedOutAt *time.Time `json:"checkedOutAt,omitempty" gorm:"column:checked_out_at"`

	Room Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

// Covers reports whether the stay interval contains the given day.
func (b *Booking) Covers(day time.Time) bool {
	return !day.Before(b.CheckIn) && day.Before(b.CheckOut)
}
