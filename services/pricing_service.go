package services

import (
	"context"
	"errors"
	"time"

	"github.com/reposekdz/eastgate-sub004/models"
	"github.com/reposekdz/eastgate-sub004/repository"
)

// Quote is the price breakdown for one stay. NightlyRate is the rate
// actually charged, after any active override. Amounts are integer
// minor units; taxes and discounts belong to the billing collaborator.
type Quote struct {
	Nights      int   `json:"nights"`
	NightlyRate int64 `json:"nightlyRate"`
	Total       int64 `json:"total"`
}

type PricingService struct {
	overrides repository.OverrideStore
}

func NewPricingService(overrides repository.OverrideStore) *PricingService {
	return &PricingService{overrides: overrides}
}

// Quote computes nights * nightly rate for the half-open interval
// [checkIn, checkOut). An active price override for the room and its
// branch replaces the room's default rate before multiplication.
func (s *PricingService) Quote(ctx context.Context, room *models.Room, checkIn, checkOut time.Time) (Quote, error) {
	return s.quoteWith(ctx, s.overrides, room, checkIn, checkOut)
}

func (s *PricingService) quoteWith(ctx context.Context, overrides repository.OverrideStore, room *models.Room, checkIn, checkOut time.Time) (Quote, error) {
	nights := nightsBetween(checkIn, checkOut)
	if nights < 1 {
		return Quote{}, ErrInvalidDateRange
	}

	rate := room.NightlyRate
	override, err := overrides.ActiveOverride(ctx, room.ID, room.BranchID)
	switch {
	case err == nil:
		rate = override.NightlyRate
	case errors.Is(err, repository.ErrNotFound):
		// no override, default rate stands
	default:
		return Quote{}, err
	}

	return Quote{
		Nights:      nights,
		NightlyRate: rate,
		Total:       rate * int64(nights),
	}, nil
}
