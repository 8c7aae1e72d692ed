package repository

import (
	"context"
	"time"

	"github.com/reposekdz/eastgate-sub004/models"
)

// Store is the injected persistence boundary of the reservation
// engine. The engine only ever talks to rooms and bookings through
// these typed methods, so it runs identically against MySQL and the
// in-memory implementation used in tests.
type Store interface {
	RoomStore
	BookingStore
	OverrideStore
	BranchStore
	StaffStore

	// InRoomTx runs fn with a store view that holds the write lock for
	// roomID for the duration of the call. The conflict check and the
	// booking write of one command both happen inside fn, closing the
	// check-then-act race. Locks are scoped per room: transactions on
	// different rooms do not block each other. Returns ErrNotFound when
	// the room does not exist.
	InRoomTx(ctx context.Context, roomID uint, fn func(tx Store) error) error
}

type RoomStore interface {
	GetRoom(ctx context.Context, id uint) (*models.Room, error)
	ListRooms(ctx context.Context, branchID uint) ([]models.Room, error)
	CreateRoom(ctx context.Context, room *models.Room) error
	UpdateRoom(ctx context.Context, room *models.Room) error
	// UpdateRoomStatus refreshes the cached status projection only.
	UpdateRoomStatus(ctx context.Context, id uint, status models.RoomStatus) error
}

type BookingStore interface {
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	CreateBooking(ctx context.Context, booking *models.Booking) error
	UpdateBooking(ctx context.Context, booking *models.Booking) error

	// CountActiveOverlapping is the interval conflict check: bookings on
	// roomID in an active status whose [check_in, check_out) interval
	// overlaps [checkIn, checkOut) half-open. excludeID (when non-zero)
	// removes one booking from consideration so a modification does not
	// conflict with itself.
	CountActiveOverlapping(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeID uint) (int64, error)

	// CountCheckedIn reports how many bookings other than excludeID are
	// currently checked in on roomID.
	CountCheckedIn(ctx context.Context, roomID uint, excludeID uint) (int64, error)
}

type OverrideStore interface {
	// ActiveOverride returns the active price override for the room and
	// branch, or ErrNotFound when none applies.
	ActiveOverride(ctx context.Context, roomID, branchID uint) (*models.PriceOverride, error)
	SaveOverride(ctx context.Context, override *models.PriceOverride) error
}

type BranchStore interface {
	GetBranch(ctx context.Context, id uint) (*models.Branch, error)
	ListBranches(ctx context.Context) ([]models.Branch, error)
	CreateBranch(ctx context.Context, branch *models.Branch) error
}

type StaffStore interface {
	GetStaffByUsername(ctx context.Context, username string) (*models.StaffAccount, error)
	CreateStaff(ctx context.Context, staff *models.StaffAccount) error
}
