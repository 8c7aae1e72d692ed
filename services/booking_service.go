package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/reposekdz/eastgate-sub004/models"
	"github.com/reposekdz/eastgate-sub004/repository"
	"github.com/reposekdz/eastgate-sub004/utils"
)

// BookingService is the command handler for the booking lifecycle:
// create, modify, confirm, check-in, check-out, cancel. Every write
// runs inside a per-room locked transaction so the conflict check and
// the state change commit atomically.
type BookingService struct {
	store        repository.Store
	availability *AvailabilityService
	events       EventPublisher
}

func NewBookingService(store repository.Store, availability *AvailabilityService, events EventPublisher) *BookingService {
	return &BookingService{store: store, availability: availability, events: events}
}

type CreateBookingInput struct {
	RoomID          uint
	GuestName       string
	GuestEmail      string
	GuestPhone      string
	CheckIn         string
	CheckOut        string
	Adults          int
	Children        int
	PaymentMethod   string
	SpecialRequests json.RawMessage

	// Confirmed is the caller trust level: staff-created bookings start
	// life confirmed, guest-created ones pending.
	Confirmed bool
}

func (in *CreateBookingInput) validate() error {
	in.GuestName = strings.TrimSpace(in.GuestName)
	in.GuestEmail = strings.TrimSpace(in.GuestEmail)
	in.GuestPhone = strings.TrimSpace(in.GuestPhone)

	if in.RoomID == 0 {
		return validationErr("roomId is required")
	}
	if in.GuestName == "" {
		return validationErr("guestName is required")
	}
	if in.GuestEmail == "" {
		return validationErr("guestEmail is required")
	}
	if !models.ValidPaymentMethod(in.PaymentMethod) {
		return validationErr("unknown payment method " + in.PaymentMethod)
	}
	if in.Adults <= 0 {
		in.Adults = 1
	}
	if in.Children < 0 {
		in.Children = 0
	}
	return nil
}

// Create books a room for the requested interval. It fails with
// ErrRoomNotAvailable when an active booking overlaps, including the
// case where a concurrent writer claimed the dates between our check
// and commit.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	checkIn, err := ParseDate(in.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := ParseDate(in.CheckOut)
	if err != nil {
		return nil, err
	}
	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidDateRange
	}

	status := models.BookingStatusPending
	if in.Confirmed {
		status = models.BookingStatusConfirmed
	}

	var booking *models.Booking
	err = s.runRoomTx(ctx, in.RoomID, func(tx repository.Store) error {
		avail, err := s.availability.checkWith(ctx, tx, in.RoomID, checkIn, checkOut, 0)
		if err != nil {
			return err
		}
		if !avail.Available {
			return ErrRoomNotAvailable
		}

		booking = &models.Booking{
			RoomID:          in.RoomID,
			ReferenceCode:   utils.NewReferenceCode(),
			GuestName:       in.GuestName,
			GuestEmail:      in.GuestEmail,
			GuestPhone:      in.GuestPhone,
			CheckIn:         checkIn,
			CheckOut:        checkOut,
			Nights:          avail.Quote.Nights,
			Adults:          in.Adults,
			Children:        in.Children,
			NightlyRate:     avail.Quote.NightlyRate,
			TotalAmount:     avail.Quote.Total,
			PaymentMethod:   in.PaymentMethod,
			SpecialRequests: datatypes.JSON(in.SpecialRequests),
			Status:          status,
		}
		return tx.CreateBooking(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	_ = s.events.Publish(ctx, newBookingEvent(EventBookingCreated, booking))
	return booking, nil
}

type ModifyBookingInput struct {
	CheckIn         string // empty keeps the current date
	CheckOut        string
	Adults          *int
	Children        *int
	SpecialRequests json.RawMessage
}

// Modify changes a booking's dates or occupancy. The availability
// re-check excludes the booking itself, so shifting a stay on the same
// room never trips over its own old interval.
func (s *BookingService) Modify(ctx context.Context, id uint, in ModifyBookingInput) (*models.Booking, error) {
	current, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	var booking *models.Booking
	err = s.runRoomTx(ctx, current.RoomID, func(tx repository.Store) error {
		booking, err = tx.GetBooking(ctx, id)
		if err != nil {
			return err
		}
		if !booking.Status.Active() {
			return fmt.Errorf("%w: cannot modify a %s booking", ErrInvalidTransition, booking.Status)
		}

		checkIn, checkOut := booking.CheckIn, booking.CheckOut
		if in.CheckIn != "" {
			if checkIn, err = ParseDate(in.CheckIn); err != nil {
				return err
			}
		}
		if in.CheckOut != "" {
			if checkOut, err = ParseDate(in.CheckOut); err != nil {
				return err
			}
		}
		if !checkIn.Before(checkOut) {
			return ErrInvalidDateRange
		}

		avail, err := s.availability.checkWith(ctx, tx, booking.RoomID, checkIn, checkOut, booking.ID)
		if err != nil {
			return err
		}
		if !avail.Available {
			return ErrRoomNotAvailable
		}

		booking.CheckIn = checkIn
		booking.CheckOut = checkOut
		booking.Nights = avail.Quote.Nights
		booking.NightlyRate = avail.Quote.NightlyRate
		booking.TotalAmount = avail.Quote.Total
		if in.Adults != nil && *in.Adults > 0 {
			booking.Adults = *in.Adults
		}
		if in.Children != nil && *in.Children >= 0 {
			booking.Children = *in.Children
		}
		if in.SpecialRequests != nil {
			booking.SpecialRequests = datatypes.JSON(in.SpecialRequests)
		}
		return tx.UpdateBooking(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	_ = s.events.Publish(ctx, newBookingEvent(EventBookingModified, booking))
	return booking, nil
}

// Confirm moves a pending booking to confirmed. A stay covering today
// also marks the room booked, which is the slot Cancel later releases.
func (s *BookingService) Confirm(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.transition(ctx, id, models.BookingStatusConfirmed, func(tx repository.Store, booking *models.Booking) error {
		if booking.Covers(Today()) {
			return tx.UpdateRoomStatus(ctx, booking.RoomID, models.RoomStatusBooked)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	_ = s.events.Publish(ctx, newBookingEvent(EventBookingConfirmed, booking))
	return booking, nil
}

// CheckIn moves a pending or confirmed booking to checked_in and marks
// the room occupied. Even though the conflict checker should make it
// impossible, it refuses when another booking is already checked in on
// the same room.
func (s *BookingService) CheckIn(ctx context.Context, id uint) (*models.Booking, error) {
	now := time.Now().UTC()
	booking, err := s.transition(ctx, id, models.BookingStatusCheckedIn, func(tx repository.Store, booking *models.Booking) error {
		occupied, err := tx.CountCheckedIn(ctx, booking.RoomID, booking.ID)
		if err != nil {
			return err
		}
		if occupied > 0 {
			return ErrRoomNotAvailable
		}
		booking.CheckedInAt = &now
		return tx.UpdateRoomStatus(ctx, booking.RoomID, models.RoomStatusOccupied)
	})
	if err != nil {
		return nil, err
	}
	_ = s.events.Publish(ctx, newBookingEvent(EventBookingCheckedIn, booking))
	return booking, nil
}

// CheckOut ends a stay. The room goes to cleaning, not available:
// housekeeping owns the turnover gap and flips the status back through
// the room registry once the room is ready.
func (s *BookingService) CheckOut(ctx context.Context, id uint) (*models.Booking, error) {
	now := time.Now().UTC()
	booking, err := s.transition(ctx, id, models.BookingStatusCheckedOut, func(tx repository.Store, booking *models.Booking) error {
		booking.CheckedOutAt = &now
		return tx.UpdateRoomStatus(ctx, booking.RoomID, models.RoomStatusCleaning)
	})
	if err != nil {
		return nil, err
	}
	_ = s.events.Publish(ctx, newBookingEvent(EventBookingCheckedOut, booking))
	return booking, nil
}

// Cancel is allowed from pending and confirmed only. The row stays for
// audit; it just stops counting against the room timeline. The room's
// cached status is released only when this booking was the one holding
// it for today — cancelling a future booking touches nothing.
func (s *BookingService) Cancel(ctx context.Context, id uint, reason string) (*models.Booking, error) {
	current, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	var booking *models.Booking
	err = s.runRoomTx(ctx, current.RoomID, func(tx repository.Store) error {
		booking, err = tx.GetBooking(ctx, id)
		if err != nil {
			return err
		}
		if !booking.Status.CanTransitionTo(models.BookingStatusCancelled) {
			return fmt.Errorf("%w: status is %s", ErrInvalidCancellation, booking.Status)
		}

		now := time.Now().UTC()
		booking.Status = models.BookingStatusCancelled
		booking.CancelReason = strings.TrimSpace(reason)
		booking.CancelledAt = &now
		if err := tx.UpdateBooking(ctx, booking); err != nil {
			return err
		}

		if booking.Covers(Today()) {
			room, err := tx.GetRoom(ctx, booking.RoomID)
			if err != nil {
				return err
			}
			if room.Status == models.RoomStatusBooked {
				return tx.UpdateRoomStatus(ctx, booking.RoomID, models.RoomStatusAvailable)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.events.Publish(ctx, newBookingEvent(EventBookingCancelled, booking))
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, id uint) (*models.Booking, error) {
	return s.store.GetBooking(ctx, id)
}

func (s *BookingService) List(ctx context.Context) ([]models.Booking, error) {
	return s.store.ListBookings(ctx)
}

// transition performs a single state-machine edge inside the per-room
// transaction. sideEffect runs after the edge is validated and may
// mutate the booking and the room's cached status.
func (s *BookingService) transition(ctx context.Context, id uint, to models.BookingStatus, sideEffect func(tx repository.Store, booking *models.Booking) error) (*models.Booking, error) {
	current, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	var booking *models.Booking
	err = s.runRoomTx(ctx, current.RoomID, func(tx repository.Store) error {
		booking, err = tx.GetBooking(ctx, id)
		if err != nil {
			return err
		}
		if !booking.Status.CanTransitionTo(to) {
			return invalidTransitionErr(booking.Status, to)
		}
		booking.Status = to
		if sideEffect != nil {
			if err := sideEffect(tx, booking); err != nil {
				return err
			}
		}
		return tx.UpdateBooking(ctx, booking)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// runRoomTx retries a room-scoped transaction once when it lost to a
// concurrent writer. A second loss is reported as the room being
// unavailable, which by then it is.
func (s *BookingService) runRoomTx(ctx context.Context, roomID uint, fn func(tx repository.Store) error) error {
	err := s.store.InRoomTx(ctx, roomID, fn)
	if repository.IsRetryable(err) {
		err = s.store.InRoomTx(ctx, roomID, fn)
		if repository.IsRetryable(err) {
			return ErrRoomNotAvailable
		}
	}
	return err
}
