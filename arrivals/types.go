// Package arrivals turns decoded realtime feeds and static schedules into the
// single arrival list the API serves. Real, scheduled and synthetic entries
// all share one shape; consumers cannot and must not tell them apart by form.
package arrivals

import "time"

// Arrival is the normalized arrival record.
type Arrival struct {
	ID           string    `json:"id"`
	Line         string    `json:"line"`
	Direction    string    `json:"direction"`
	Destination  string    `json:"destination"`
	Time         time.Time `json:"arrivalTime"`
	DelaySeconds int       `json:"delaySeconds"`
	Realtime     bool      `json:"isRealtime"`
	Assigned     bool      `json:"isAssigned"`
	Color        string    `json:"color"`
	TrainID      string    `json:"trainId"`
}
