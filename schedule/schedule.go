// Package schedule provides the read contract for the static timetable the
// import job materializes for the current service day.
package schedule

import (
	"context"
	"time"
)

// Departure is one scheduled stop event. StopID is direction-qualified the
// same way the realtime feed qualifies it (station id plus N/S suffix).
type Departure struct {
	TripID     string
	StopID     string
	Route      string
	Headsign   string
	Arrival    time.Time
	Departure  time.Time
	RouteColor string
}

// Source answers "what is scheduled to serve this station soon". Results are
// already filtered to the current service day and to times that have not
// passed; callers only narrow further.
type Source interface {
	Upcoming(ctx context.Context, stationID string, lines []string, window time.Duration) ([]Departure, error)
}
