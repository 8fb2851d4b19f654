package booking

import (
	"context"
	"time"

	"github.com/odnowakanapowa/booking-api/internal/cache"
	domain "github.com/odnowakanapowa/booking-api/internal/domain/booking"
	"github.com/odnowakanapowa/booking-api/internal/httperr"
	"github.com/odnowakanapowa/booking-api/internal/timezone"
)

type GetOccupiedDates struct {
	repo  domain.Repository
	cache *cache.Cache
}

func NewGetOccupiedDates(repo domain.Repository, cache *cache.Cache) *GetOccupiedDates {
	return &GetOccupiedDates{repo: repo, cache: cache}
}

// Execute lists distinct dates up to endDate (inclusive) with at
// least one non-cancelled booking. An empty endDate defaults to one
// year ahead; it feeds the frontend calendar shading.
func (uc *GetOccupiedDates) Execute(
	ctx context.Context,
	endDate string,
) ([]string, error) {

	// only the default horizon is cached; explicit bounds vary per
	// caller and just hit the store
	cacheable := endDate == ""

	if endDate == "" {
		endDate = timezone.Now().AddDate(1, 0, 0).Format(domain.DateLayout)
	} else if _, err := time.ParseInLocation(domain.DateLayout, endDate, timezone.Location()); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	var dates []string
	if cacheable && uc.cache.GetJSON(ctx, cache.OccupiedKey(), &dates) {
		return dates, nil
	}

	dates, err := uc.repo.OccupiedDates(ctx, endDate)
	if err != nil {
		return nil, err
	}
	if dates == nil {
		dates = []string{}
	}

	if cacheable {
		uc.cache.SetJSON(ctx, cache.OccupiedKey(), dates)
	}
	return dates, nil
}
