package arrivals

import (
	"testing"
	"time"

	"github.com/cleanride/realtime/gtfsrt"
)

func TestExtractFiltersStationAndDirection(t *testing.T) {
	now := int64(1700000000)
	feed := gtfsrt.DecodedFeed{
		Timestamp: now,
		Entities: []gtfsrt.TripEntity{
			{
				TripID: "a", RouteID: "1", TrainID: "01 1452+ VCP/SFY", Assigned: true,
				Updates: []gtfsrt.StopTimeUpdate{
					{StopID: "127N", Arrival: now + 300, Delay: 60},
					{StopID: "128N", Arrival: now + 500},
				},
			},
			{
				TripID: "b", RouteID: "2", TrainID: "b",
				Updates: []gtfsrt.StopTimeUpdate{
					{StopID: "127S", Arrival: now + 120},
					// Already passed; dropped.
					{StopID: "127N", Arrival: now - 30},
				},
			},
		},
	}

	got := Extract(feed, "127", time.Unix(now, 0))
	if len(got) != 2 {
		t.Fatalf("expected 2 arrivals, got %d: %+v", len(got), got)
	}
	if got[0].Line != "2" || got[0].Direction != "S" {
		t.Errorf("expected the southbound 2 first, got %+v", got[0])
	}
	if got[1].Line != "1" || got[1].Direction != "N" || got[1].DelaySeconds != 60 {
		t.Errorf("unexpected second arrival: %+v", got[1])
	}
	if !got[1].Realtime || !got[1].Assigned || got[1].TrainID != "01 1452+ VCP/SFY" {
		t.Errorf("realtime identity not carried: %+v", got[1])
	}
	if got[1].Destination != "Van Cortlandt Park-242 St" {
		t.Errorf("unexpected destination %q", got[1].Destination)
	}
	if got[1].Color != "#EE352E" {
		t.Errorf("unexpected color %q", got[1].Color)
	}
}

func TestExtractDerivesLineFromTripID(t *testing.T) {
	now := int64(1700000000)
	feed := gtfsrt.DecodedFeed{
		Timestamp: now,
		Entities: []gtfsrt.TripEntity{
			{TripID: "087850_6..N03R", TrainID: "087850_6..N03R",
				Updates: []gtfsrt.StopTimeUpdate{{StopID: "631N", Arrival: now + 60}}},
			{TripID: "090000_6X..N01R", TrainID: "090000_6X..N01R",
				Updates: []gtfsrt.StopTimeUpdate{{StopID: "631N", Arrival: now + 90}}},
			// No route anywhere; skipped.
			{TripID: "opaque", TrainID: "opaque",
				Updates: []gtfsrt.StopTimeUpdate{{StopID: "631N", Arrival: now + 120}}},
		},
	}

	got := Extract(feed, "631", time.Unix(now, 0))
	if len(got) != 2 {
		t.Fatalf("expected 2 arrivals, got %d", len(got))
	}
	for _, a := range got {
		if a.Line != "6" {
			t.Errorf("expected express variant folded onto line 6, got %q", a.Line)
		}
	}
}

func TestExtractSkipsRepeatedTripSightings(t *testing.T) {
	now := int64(1700000000)
	ent := gtfsrt.TripEntity{
		TripID: "a", RouteID: "1", TrainID: "a",
		Updates: []gtfsrt.StopTimeUpdate{{StopID: "127N", Arrival: now + 300}},
	}
	feed := gtfsrt.DecodedFeed{Timestamp: now, Entities: []gtfsrt.TripEntity{ent, ent}}

	got := Extract(feed, "127", time.Unix(now, 0))
	if len(got) != 1 {
		t.Errorf("expected the repeated trip collapsed to 1 arrival, got %d", len(got))
	}
}

func TestExtractIgnoresStaleFeedHeader(t *testing.T) {
	now := int64(1700000000)
	feed := gtfsrt.DecodedFeed{
		// Header lagging ten minutes behind wall time.
		Timestamp: now - 600,
		Entities: []gtfsrt.TripEntity{
			{
				TripID: "a", RouteID: "1", TrainID: "a",
				Updates: []gtfsrt.StopTimeUpdate{
					// Ahead of the stale header but already passed.
					{StopID: "127N", Arrival: now - 30},
					{StopID: "127N", Arrival: now + 60},
				},
			},
		},
	}

	got := Extract(feed, "127", time.Unix(now, 0))
	if len(got) != 1 {
		t.Fatalf("expected only the future arrival, got %d: %+v", len(got), got)
	}
	if got[0].Time.Unix() != now+60 {
		t.Errorf("wrong arrival survived: %+v", got[0])
	}
}

func TestExtractEmptyFeed(t *testing.T) {
	got := Extract(gtfsrt.EmptyFeed(time.Unix(1700000000, 0)), "127", time.Unix(1700000000, 0))
	if len(got) != 0 {
		t.Errorf("expected no arrivals, got %d", len(got))
	}
}
