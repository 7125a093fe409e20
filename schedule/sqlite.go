package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const departuresSchema = `
CREATE TABLE IF NOT EXISTS scheduled_departures (
	trip_id         TEXT NOT NULL,
	stop_id         TEXT NOT NULL,
	route           TEXT NOT NULL,
	headsign        TEXT NOT NULL DEFAULT '',
	arrival_epoch   INTEGER NOT NULL,
	departure_epoch INTEGER NOT NULL,
	route_color     TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (trip_id, stop_id)
);
CREATE INDEX IF NOT EXISTS idx_sched_stop_arrival ON scheduled_departures (stop_id, arrival_epoch);`

// SQLiteSource queries the scheduled_departures table the import job rebuilds
// each service day from stop_times, trips and routes.
type SQLiteSource struct {
	db  *sql.DB
	now func() time.Time
}

func OpenSQLite(path string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", path+"?_journal=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open schedule db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping schedule db: %w", err)
	}
	if _, err := db.Exec(departuresSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schedule schema: %w", err)
	}
	return &SQLiteSource{db: db, now: time.Now}, nil
}

func (s *SQLiteSource) Close() error { return s.db.Close() }

// Upcoming returns departures at either platform of the station within the
// window, optionally narrowed to the given lines, ordered by arrival.
func (s *SQLiteSource) Upcoming(ctx context.Context, stationID string, lines []string, window time.Duration) ([]Departure, error) {
	now := s.now()
	from := now.Unix()
	to := now.Add(window).Unix()

	args := []any{stationID + "N", stationID + "S", from, to}
	q := `SELECT trip_id, stop_id, route, headsign, arrival_epoch, departure_epoch, route_color
	      FROM scheduled_departures
	      WHERE stop_id IN (?, ?) AND arrival_epoch > ? AND arrival_epoch <= ?`
	if len(lines) > 0 {
		q += " AND route IN (?" + strings.Repeat(", ?", len(lines)-1) + ")"
		for _, l := range lines {
			args = append(args, l)
		}
	}
	q += " ORDER BY arrival_epoch ASC"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query departures for %s: %w", stationID, err)
	}
	defer func() { _ = rows.Close() }()

	var out []Departure
	for rows.Next() {
		var d Departure
		var arr, dep int64
		if err := rows.Scan(&d.TripID, &d.StopID, &d.Route, &d.Headsign, &arr, &dep, &d.RouteColor); err != nil {
			return nil, fmt.Errorf("scan departure: %w", err)
		}
		d.Arrival = time.Unix(arr, 0)
		d.Departure = time.Unix(dep, 0)
		out = append(out, d)
	}
	return out, rows.Err()
}

// Put upserts one departure. Used by the importer and by tests.
func (s *SQLiteSource) Put(ctx context.Context, d Departure) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scheduled_departures
			(trip_id, stop_id, route, headsign, arrival_epoch, departure_epoch, route_color)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(trip_id, stop_id) DO UPDATE SET
			route = excluded.route,
			headsign = excluded.headsign,
			arrival_epoch = excluded.arrival_epoch,
			departure_epoch = excluded.departure_epoch,
			route_color = excluded.route_color`,
		d.TripID, d.StopID, d.Route, d.Headsign, d.Arrival.Unix(), d.Departure.Unix(), d.RouteColor)
	if err != nil {
		return fmt.Errorf("upsert departure %s@%s: %w", d.TripID, d.StopID, err)
	}
	return nil
}
