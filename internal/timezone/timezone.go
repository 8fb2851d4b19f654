package timezone

import "time"

// The business operates in one city; all slot arithmetic happens in
// its local time.
const DefaultTimezone = "Europe/Warsaw"

func Location() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}
