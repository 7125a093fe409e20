package realtime

import "net/http"

type healthResponse struct {
	Status          string `json:"status"`
	Offline         bool   `json:"offline"`
	LatestFeedEpoch int64  `json:"latest_feed_epoch"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		Offline:         s.fetcher.Offline(),
		LatestFeedEpoch: s.fetcher.LatestTimestamp(),
	})
}
