package gtfsrt

import (
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// Decode parses a raw feed payload. It never fails: malformed bytes produce
// an empty feed stamped with the current time. Callers that need to observe
// decode failures use decodeFeed directly.
func Decode(raw []byte) DecodedFeed {
	feed, _ := decodeFeed(raw, time.Now())
	return feed
}

// decodeFeed lowers a FeedMessage into the package's own representation. The
// second return reports whether the payload parsed; the DecodedFeed is
// complete either way.
func decodeFeed(raw []byte, now time.Time) (DecodedFeed, bool) {
	// AllowPartial: the wire format declares header fields required, but a
	// payload missing them is still worth mining for trip updates.
	var fm gtfsrtpb.FeedMessage
	if err := (proto.UnmarshalOptions{AllowPartial: true}).Unmarshal(raw, &fm); err != nil {
		return EmptyFeed(now), false
	}

	out := DecodedFeed{Timestamp: now.Unix()}
	if fm.Header != nil && fm.Header.Timestamp != nil && *fm.Header.Timestamp > 0 {
		out.Timestamp = int64(*fm.Header.Timestamp)
	}

	for _, e := range fm.Entity {
		tu := e.TripUpdate
		if tu == nil || tu.Trip == nil || tu.Trip.TripId == nil {
			continue
		}

		ent := TripEntity{TripID: *tu.Trip.TripId}
		if tu.Trip.RouteId != nil {
			ent.RouteID = *tu.Trip.RouteId
		}

		// The NYCT extension rides in the descriptor's unknown fields since
		// the upstream bindings don't register it. Fall back to the trip id
		// when absent or malformed.
		if ext, ok := parseNyctTripDescriptor(tu.Trip.ProtoReflect().GetUnknown()); ok {
			ent.TrainID = ext.TrainID
			ent.Assigned = ext.IsAssigned
		}
		if ent.TrainID == "" {
			ent.TrainID = ent.TripID
		}

		for _, stu := range tu.StopTimeUpdate {
			if stu.StopId == nil {
				continue
			}
			u := StopTimeUpdate{StopID: *stu.StopId}
			switch {
			case stu.Arrival != nil && stu.Arrival.Time != nil:
				u.Arrival = *stu.Arrival.Time
				if stu.Arrival.Delay != nil {
					u.Delay = *stu.Arrival.Delay
				}
			case stu.Departure != nil && stu.Departure.Time != nil:
				u.Arrival = *stu.Departure.Time
				if stu.Departure.Delay != nil {
					u.Delay = *stu.Departure.Delay
				}
			default:
				continue
			}
			ent.Updates = append(ent.Updates, u)
		}
		out.Entities = append(out.Entities, ent)
	}
	return out, true
}
