package services

import (
	"context"
	"testing"

	"github.com/reposekdz/eastgate-sub004/models"
	"github.com/reposekdz/eastgate-sub004/repository"
)

// testEngine wires the full engine against the in-memory store.
type testEngine struct {
	store        *repository.MemoryStore
	pricing      *PricingService
	availability *AvailabilityService
	bookings     *BookingService
	rooms        *RoomService
	branch       *models.Branch
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()
	store := repository.NewMemoryStore()

	branch := &models.Branch{Name: "Main Branch", Code: "MAIN"}
	if err := store.CreateBranch(context.Background(), branch); err != nil {
		t.Fatalf("seed branch: %v", err)
	}

	pricing := NewPricingService(store)
	availability := NewAvailabilityService(store, pricing)
	return &testEngine{
		store:        store,
		pricing:      pricing,
		availability: availability,
		bookings:     NewBookingService(store, availability, NoopPublisher{}),
		rooms:        NewRoomService(store),
		branch:       branch,
	}
}

func (e *testEngine) seedRoom(t *testing.T, number string, nightlyRate int64) *models.Room {
	t.Helper()
	room := &models.Room{
		BranchID:    e.branch.ID,
		Number:      number,
		Type:        "Standard",
		Floor:       "1",
		NightlyRate: nightlyRate,
		Status:      models.RoomStatusAvailable,
	}
	if err := e.store.CreateRoom(context.Background(), room); err != nil {
		t.Fatalf("seed room: %v", err)
	}
	return room
}

func (e *testEngine) createBooking(t *testing.T, roomID uint, checkIn, checkOut string) *models.Booking {
	t.Helper()
	booking, err := e.bookings.Create(context.Background(), CreateBookingInput{
		RoomID:     roomID,
		GuestName:  "Jordan Guest",
		GuestEmail: "jordan@example.com",
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	})
	if err != nil {
		t.Fatalf("create booking [%s, %s): %v", checkIn, checkOut, err)
	}
	return booking
}
