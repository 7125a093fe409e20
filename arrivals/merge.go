package arrivals

import (
	"sort"
	"strings"
	"time"

	"github.com/cleanride/realtime/schedule"
)

// dedupWindow is how close a scheduled departure must sit to a realtime
// arrival on the same line before it is considered the same train.
const dedupWindow = 120 * time.Second

// Merge folds scheduled departures into a realtime arrival list. A scheduled
// entry within dedupWindow of a realtime arrival on the same line is dropped
// as a duplicate sighting of the same train; the rest are converted to
// non-realtime arrivals. The result is sorted and contains only arrivals
// still ahead of now. Merging the output with the same schedule again is a
// no-op.
func Merge(realtime []Arrival, scheduled []schedule.Departure, now time.Time) []Arrival {
	out := append([]Arrival(nil), realtime...)
	for _, d := range scheduled {
		if coveredByRealtime(realtime, d) {
			continue
		}
		out = append(out, fromScheduled(d))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Time.Equal(out[j].Time) {
			return out[i].Time.Before(out[j].Time)
		}
		return out[i].ID < out[j].ID
	})

	kept := out[:0]
	for _, a := range out {
		if a.Time.After(now) {
			kept = append(kept, a)
		}
	}
	return kept
}

func coveredByRealtime(realtime []Arrival, d schedule.Departure) bool {
	for _, a := range realtime {
		if a.Line != d.Route {
			continue
		}
		diff := a.Time.Sub(d.Arrival)
		if diff < 0 {
			diff = -diff
		}
		if diff <= dedupWindow {
			return true
		}
	}
	return false
}

func fromScheduled(d schedule.Departure) Arrival {
	dir := ""
	switch {
	case strings.HasSuffix(d.StopID, "N"):
		dir = "N"
	case strings.HasSuffix(d.StopID, "S"):
		dir = "S"
	}
	dest := d.Headsign
	if dest == "" {
		dest = DestinationFor(d.Route, dir)
	}
	color := normalizeColor(d.RouteColor)
	if color == "" {
		color = ColorFor(d.Route)
	}
	return Arrival{
		ID:          d.TripID + "_" + d.StopID,
		Line:        d.Route,
		Direction:   dir,
		Destination: dest,
		Time:        d.Arrival,
		Realtime:    false,
		Color:       color,
		TrainID:     d.TripID,
	}
}

// normalizeColor accepts GTFS route_color values, which omit the leading '#'.
func normalizeColor(c string) string {
	if c == "" || strings.HasPrefix(c, "#") {
		return c
	}
	return "#" + c
}
