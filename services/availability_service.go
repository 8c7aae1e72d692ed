package services

import (
	"context"
	"time"

	"github.com/reposekdz/eastgate-sub004/repository"
)

// Availability is the answer to "can I book room R from A to B, and
// for how much". Quote is nil when the room is taken.
type Availability struct {
	Available bool   `json:"available"`
	Quote     *Quote `json:"pricing,omitempty"`
}

// AvailabilityService orchestrates the conflict check and the pricing
// calculator. Reads are side-effect free: calling CheckAvailability
// twice with no intervening writes returns identical results.
type AvailabilityService struct {
	store   repository.Store
	pricing *PricingService
}

func NewAvailabilityService(store repository.Store, pricing *PricingService) *AvailabilityService {
	return &AvailabilityService{store: store, pricing: pricing}
}

// CheckAvailability validates the range, consults the booking timeline
// (never the cached room status) and quotes the stay when clear.
// excludeID carves one booking out of the conflict check so a
// modification does not collide with itself; pass zero otherwise.
// Back-dated ranges are accepted here — staff enter historical
// corrections — and the guest-facing handler enforces checkIn >= today
// on top.
func (s *AvailabilityService) CheckAvailability(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeID uint) (Availability, error) {
	return s.checkWith(ctx, s.store, roomID, checkIn, checkOut, excludeID)
}

// checkWith runs the same read against an explicit store view. Booking
// commands call it with their transaction-scoped store so the conflict
// check and the write observe the same timeline.
func (s *AvailabilityService) checkWith(ctx context.Context, store repository.Store, roomID uint, checkIn, checkOut time.Time, excludeID uint) (Availability, error) {
	if !checkIn.Before(checkOut) {
		return Availability{}, ErrInvalidDateRange
	}

	room, err := store.GetRoom(ctx, roomID)
	if err != nil {
		return Availability{}, err
	}

	overlapping, err := store.CountActiveOverlapping(ctx, roomID, checkIn, checkOut, excludeID)
	if err != nil {
		return Availability{}, err
	}
	if overlapping > 0 {
		return Availability{Available: false}, nil
	}

	quote, err := s.pricing.quoteWith(ctx, store, room, checkIn, checkOut)
	if err != nil {
		return Availability{}, err
	}
	return Availability{Available: true, Quote: &quote}, nil
}
