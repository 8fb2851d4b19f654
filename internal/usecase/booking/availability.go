package booking

import (
	"context"
	"time"

	"github.com/odnowakanapowa/booking-api/internal/cache"
	domain "github.com/odnowakanapowa/booking-api/internal/domain/booking"
	"github.com/odnowakanapowa/booking-api/internal/httperr"
	"github.com/odnowakanapowa/booking-api/internal/timezone"
)

type GetAvailableTimes struct {
	repo  domain.Repository
	cache *cache.Cache
}

func NewGetAvailableTimes(repo domain.Repository, cache *cache.Cache) *GetAvailableTimes {
	return &GetAvailableTimes{repo: repo, cache: cache}
}

// Execute returns the free subset of the slot catalog for a date:
// catalog minus the times of non-cancelled bookings.
func (uc *GetAvailableTimes) Execute(
	ctx context.Context,
	date string,
) ([]string, error) {

	if _, err := time.ParseInLocation(domain.DateLayout, date, timezone.Location()); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	key := cache.SlotsKey(date)
	var free []string
	if uc.cache.GetJSON(ctx, key, &free) {
		return free, nil
	}

	booked, err := uc.repo.BookedTimes(ctx, date)
	if err != nil {
		return nil, err
	}

	free = domain.FreeTimes(booked)
	uc.cache.SetJSON(ctx, key, free)
	return free, nil
}
