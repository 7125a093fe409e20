package realtime

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cleanride/realtime/stations"
)

func (s *Server) handleArrivals(w http.ResponseWriter, r *http.Request) {
	stationID := chi.URLParam(r, "stationID")
	if stationID == "" {
		writeError(w, http.StatusBadRequest, "missing station id")
		return
	}

	board, err := s.service.GetTrainArrivals(r.Context(), stationID)
	if err != nil {
		if errors.Is(err, stations.ErrNotFound) {
			writeError(w, http.StatusNotFound, "unknown station")
			return
		}
		// The service degrades everything else internally; reaching here
		// means the station store itself is broken.
		s.log.Error("arrival lookup failed",
			zap.String("station", stationID),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, board)
}
