package gtfsrt

import "time"

// StopTimeUpdate is one stop-level prediction within a trip update. StopID is
// direction-qualified (station id plus N/S suffix), Arrival is epoch seconds.
type StopTimeUpdate struct {
	StopID  string
	Arrival int64
	Delay   int32
}

// TripEntity is the decoded form of one feed entity carrying a trip update.
// TrainID and Assigned come from the NYCT trip descriptor extension when the
// feed carries one; TrainID falls back to the raw trip id otherwise.
type TripEntity struct {
	TripID   string
	RouteID  string
	TrainID  string
	Assigned bool
	Updates  []StopTimeUpdate
}

// DecodedFeed is the structured result of decoding one feed payload.
type DecodedFeed struct {
	Timestamp int64 // feed header epoch, or decode time when absent
	Entities  []TripEntity
}

// EmptyFeed returns a DecodedFeed with no entities, stamped at t. It is the
// degraded form every failure path collapses to.
func EmptyFeed(t time.Time) DecodedFeed {
	return DecodedFeed{Timestamp: t.Unix()}
}

// Outcome classifies one fetch-decode cycle.
type Outcome int

const (
	// RealtimeOk means the feed was fetched and decoded and carries entities.
	RealtimeOk Outcome = iota
	// RealtimeEmpty means the feed was fetched and decoded but holds no trip
	// updates. Legitimate overnight and on lightly serviced divisions.
	RealtimeEmpty
	// RealtimeFailed means transport or decoding failed, or the process is
	// running offline. The feed in the result is empty.
	RealtimeFailed
)

func (o Outcome) String() string {
	switch o {
	case RealtimeOk:
		return "ok"
	case RealtimeEmpty:
		return "empty"
	default:
		return "failed"
	}
}

// Result pairs a source with the outcome of fetching it. The Feed is always
// usable regardless of outcome; callers decide the fallback policy on the
// Outcome, not on errors.
type Result struct {
	SourceID string
	Outcome  Outcome
	Feed     DecodedFeed
}
