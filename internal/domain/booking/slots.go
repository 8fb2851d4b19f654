package booking

import "time"

// SlotCatalog is the fixed list of bookable start times: a 4.5 hour
// evening window at 30-minute granularity.
var SlotCatalog = []string{
	"16:00", "16:30", "17:00", "17:30", "18:00",
	"18:30", "19:00", "19:30", "20:00",
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// FreeTimes returns the catalog minus the already booked times,
// preserving catalog order.
func FreeTimes(booked []string) []string {
	taken := make(map[string]bool, len(booked))
	for _, t := range booked {
		taken[t] = true
	}

	free := make([]string, 0, len(SlotCatalog))
	for _, t := range SlotCatalog {
		if !taken[t] {
			free = append(free, t)
		}
	}
	return free
}

// ParseSlot validates the wire format of a (date, time) pair and
// returns the slot start in the given location.
func ParseSlot(date, timeStr string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+timeStr, loc)
}
