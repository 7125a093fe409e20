package arrivals

import (
	"sort"
	"strings"
	"time"

	"github.com/cleanride/realtime/gtfsrt"
)

// Extract lowers a decoded feed to the arrivals that serve one station.
// Only direction-qualified platform stops (station id plus N or S) match,
// and only stop times strictly after now survive. The caller passes its own
// clock rather than trusting the feed header, which lags behind wall time
// when the upstream hiccups. Entities missing a usable line are skipped
// individually; one bad trip never costs the rest of the feed.
func Extract(feed gtfsrt.DecodedFeed, stationID string, now time.Time) []Arrival {
	north := stationID + "N"
	south := stationID + "S"
	cutoff := now.Unix()

	var out []Arrival
	seen := make(map[string]struct{})
	for _, ent := range feed.Entities {
		line := lineOf(ent)
		if line == "" {
			continue
		}
		for _, u := range ent.Updates {
			var dir string
			switch u.StopID {
			case north:
				dir = "N"
			case south:
				dir = "S"
			default:
				continue
			}
			if u.Arrival <= cutoff {
				continue
			}
			// A feed occasionally repeats a trip across entities; one
			// sighting per trip and platform is enough.
			key := ent.TripID + "_" + u.StopID
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, Arrival{
				ID:           key,
				Line:         line,
				Direction:    dir,
				Destination:  DestinationFor(line, dir),
				Time:         time.Unix(u.Arrival, 0),
				DelaySeconds: int(u.Delay),
				Realtime:     true,
				Assigned:     ent.Assigned,
				Color:        ColorFor(line),
				TrainID:      ent.TrainID,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Time.Equal(out[j].Time) {
			return out[i].Time.Before(out[j].Time)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// lineOf resolves the line for an entity. RouteID is authoritative; trips
// that omit it still encode the route in the trip id ("087850_6..N03R").
func lineOf(ent gtfsrt.TripEntity) string {
	if ent.RouteID != "" {
		return normalizeRoute(ent.RouteID)
	}
	_, rest, ok := strings.Cut(ent.TripID, "_")
	if !ok {
		return ""
	}
	route, _, ok := strings.Cut(rest, ".")
	if !ok || route == "" {
		return ""
	}
	return normalizeRoute(route)
}

// normalizeRoute folds express variants (6X, 7X) onto the base line.
func normalizeRoute(route string) string {
	route = strings.ToUpper(route)
	if len(route) == 2 && route[1] == 'X' {
		return route[:1]
	}
	return route
}
