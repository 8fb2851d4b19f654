package booking

import (
	"sort"

	"github.com/odnowakanapowa/booking-api/internal/httperr"
	"github.com/odnowakanapowa/booking-api/internal/models"
)

// Selection is one requested catalog position.
type Selection struct {
	ServiceID uint `json:"id"`
	Quantity  int  `json:"quantity"`
}

// MergeSelections collapses duplicate service ids (quantities sum),
// applies the quantity floor of 1 and the per-service MaxQuantity cap.
// Unknown service ids are rejected. The result is ordered by service id
// so inserts are deterministic.
func MergeSelections(selections []Selection, services []models.Service) ([]models.AppointmentService, error) {
	byID := make(map[uint]models.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	merged := make(map[uint]int, len(selections))
	for _, sel := range selections {
		if _, ok := byID[sel.ServiceID]; !ok {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		qty := sel.Quantity
		if qty < 1 {
			qty = 1
		}
		merged[sel.ServiceID] += qty
	}

	ids := make([]uint, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	items := make([]models.AppointmentService, 0, len(ids))
	for _, id := range ids {
		qty := merged[id]
		if cap := byID[id].MaxQuantity; cap > 0 && qty > cap {
			qty = cap
		}
		items = append(items, models.AppointmentService{
			ServiceID: id,
			Quantity:  qty,
		})
	}
	return items, nil
}
