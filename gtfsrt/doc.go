// Package gtfsrt fetches and decodes the MTA's GTFS-Realtime protobuf feeds.
//
// The package enforces the pipeline's absorption boundary: transport and
// decode failures never propagate to callers. Every fetch produces a Result
// carrying a complete DecodedFeed, downgraded to an empty one when the
// upstream is unreachable or the payload is malformed.
package gtfsrt
