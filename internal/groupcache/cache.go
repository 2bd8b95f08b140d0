// Package groupcache persists enumerated groups (with their candidate
// paths) to a JSON document, fingerprinted against the source graph so a
// cache from a prior, different timetable is detected and ignored rather
// than silently reused (SPEC_FULL.md §8.6/§10.3). Grounded on the
// original implementation's dump_groups/load_groups (serde_json round
// trip of the full group list) and the host project's cache client
// singleton pattern (internal/cache/redis.go) for the optional Redis
// backend.
package groupcache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/eliaswendt/timetable-optimizer/internal/enumerate"
	"github.com/eliaswendt/timetable-optimizer/internal/timetable"
)

// Document is the full on-disk/on-Redis cache representation.
type Document struct {
	Fingerprint string        `json:"fingerprint"`
	Groups      []cachedGroup `json:"groups"`
}

type cachedGroup struct {
	ID             string        `json:"id"`
	OriginStation  string        `json:"origin_station"`
	DestStation    string        `json:"dest_station"`
	Departure      int           `json:"departure"`
	PlannedArrival int           `json:"planned_arrival"`
	Passengers     uint64        `json:"passengers"`
	InTrip         string        `json:"in_trip"`
	Paths          []cachedPath  `json:"paths"`
}

type cachedPath struct {
	Edges      []int  `json:"edges"`
	Passengers uint64 `json:"passengers"`
	Duration   int    `json:"duration"`
}

// Fingerprint hashes every field of a graph's input rows so a changed
// timetable invalidates any existing cache. It is intentionally cheap (a
// content digest of the records as passed to the builder) rather than a
// hash of the built graph itself, so a cache can be validated before the
// graph is even built.
func Fingerprint(stations []timetable.StationRecord, trips []timetable.TripRecord, footpaths []timetable.FootpathRecord) string {
	h := sha256.New()
	for _, s := range stations {
		fmt.Fprintf(h, "s|%s|%s|%d\n", s.ID, s.Name, s.TransferTime)
	}
	for _, t := range trips {
		fmt.Fprintf(h, "t|%s|%s|%d|%s|%d|%d\n", t.ID, t.FromStation, t.Departure, t.ToStation, t.Arrival, t.Capacity)
	}
	for _, f := range footpaths {
		fmt.Fprintf(h, "f|%s|%s|%d\n", f.FromStation, f.ToStation, f.Duration)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Encode serializes groups (with their enumerated candidate paths) into a
// Document tagged with fingerprint.
func Encode(fingerprint string, groups []enumerate.Group) Document {
	doc := Document{Fingerprint: fingerprint, Groups: make([]cachedGroup, len(groups))}
	for i, g := range groups {
		paths := make([]cachedPath, len(g.Paths))
		for j, p := range g.Paths {
			paths[j] = cachedPath{Edges: p.Edges, Passengers: p.Passengers, Duration: p.Duration}
		}
		doc.Groups[i] = cachedGroup{
			ID: g.ID, OriginStation: g.OriginStation, DestStation: g.DestStation,
			Departure: g.Departure, PlannedArrival: g.PlannedArrival,
			Passengers: g.Passengers, InTrip: g.InTrip, Paths: paths,
		}
	}
	return doc
}

// Decode reverses Encode. Returns ok=false if fingerprint does not match
// doc's recorded fingerprint, signaling a stale cache that must be
// ignored (the caller should re-enumerate).
func Decode(doc Document, fingerprint string) ([]enumerate.Group, bool) {
	if doc.Fingerprint != fingerprint {
		return nil, false
	}
	groups := make([]enumerate.Group, len(doc.Groups))
	for i, g := range doc.Groups {
		paths := make([]timetable.Path, len(g.Paths))
		for j, p := range g.Paths {
			paths[j] = timetable.Path{Edges: p.Edges, Passengers: p.Passengers, Duration: p.Duration}
		}
		groups[i] = enumerate.Group{
			ID: g.ID, OriginStation: g.OriginStation, DestStation: g.DestStation,
			Departure: g.Departure, PlannedArrival: g.PlannedArrival,
			Passengers: g.Passengers, InTrip: g.InTrip, Paths: paths,
		}
	}
	return groups, true
}

// Marshal/Unmarshal wrap encoding/json for the Redis backend. The file
// backend (file.go) encodes the same Document with encoding/json directly,
// indented on write.
func Marshal(doc Document) ([]byte, error) { return json.Marshal(doc) }
func Unmarshal(data []byte) (Document, error) {
	var doc Document
	err := json.Unmarshal(data, &doc)
	return doc, err
}
