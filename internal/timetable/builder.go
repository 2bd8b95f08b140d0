package timetable

import "fmt"

// StationRecord is one row of stations.csv.
type StationRecord struct {
	ID           string
	Name         string
	TransferTime int // minutes
}

// TripRecord is one row of trips.csv.
type TripRecord struct {
	ID            string
	FromStation   string
	Departure     int
	ToStation     string
	Arrival       int
	Capacity      uint64
}

// FootpathRecord is one row of footpaths.csv.
type FootpathRecord struct {
	FromStation string
	ToStation   string
	Duration    int
}

// BuildStats counts non-fatal conditions encountered while building,
// per SPEC_FULL.md §9 kind 4.
type BuildStats struct {
	ImpossibleFootpaths int
}

// station is the per-station scratch bucket used only during construction.
type station struct {
	record      StationRecord
	departures  []int // node ids, one per Departure created at this station
	arrivals    []int // node ids
}

// Builder constructs a Graph from station/trip/footpath records following
// the four-step construction order of SPEC_FULL.md §4.2.
type Builder struct{}

// NewBuilder returns a Builder. The builder is stateless between calls.
func NewBuilder() *Builder { return &Builder{} }

// Build constructs a Graph satisfying §3's invariants from the three input
// tables. It returns a fatal error only for malformed cross-references
// (a trip or footpath naming an unknown station); footpaths that cannot
// reach any qualifying Transfer are non-fatal and counted in BuildStats.
func (b *Builder) Build(stations []StationRecord, trips []TripRecord, footpaths []FootpathRecord) (*Graph, BuildStats, error) {
	g := NewGraph()
	var stats BuildStats

	// Step 1: per-station scratch buckets.
	byStation := make(map[string]*station, len(stations))
	for _, s := range stations {
		byStation[s.ID] = &station{record: s}
	}

	// legsByTrip groups multi-leg through-trips (several records sharing
	// one TripID, one per intermediate stop) so step 3 can wire
	// WaitInTrain between consecutive legs.
	type leg struct {
		departureNode, arrivalNode int
		record                     TripRecord
	}
	legsByTrip := make(map[string][]leg)

	// Step 2: Departure/Arrival pair plus Trip edge, per trip.
	for _, t := range trips {
		from, ok := byStation[t.FromStation]
		if !ok {
			return nil, stats, fmt.Errorf("trip %s: unknown origin station %q", t.ID, t.FromStation)
		}
		to, ok := byStation[t.ToStation]
		if !ok {
			return nil, stats, fmt.Errorf("trip %s: unknown destination station %q", t.ID, t.ToStation)
		}
		depNode := g.AddNode(Node{Kind: Departure, TripID: t.ID, Time: t.Departure, StationID: t.FromStation, StationName: from.record.Name})
		arrNode := g.AddNode(Node{Kind: Arrival, TripID: t.ID, Time: t.Arrival, StationID: t.ToStation, StationName: to.record.Name})
		from.departures = append(from.departures, depNode)
		to.arrivals = append(to.arrivals, arrNode)

		capSoft := uint64(float64(t.Capacity) * 0.75)
		g.AddEdge(Edge{
			Kind: Trip, From: depNode, To: arrNode,
			Duration:     t.Arrival - t.Departure,
			CapacitySoft: capSoft,
			CapacityHard: t.Capacity,
		})
		legsByTrip[t.ID] = append(legsByTrip[t.ID], leg{departureNode: depNode, arrivalNode: arrNode, record: t})
	}

	// Step 3: per-station Transfer/Board/WaitAtStation/Alight/WaitInTrain/
	// MainArrivalRelation wiring.
	for stationID, st := range byStation {
		for _, depNode := range st.departures {
			dep := g.Node(depNode)
			tr := g.AddNode(Node{Kind: Transfer, Time: dep.Time, StationID: stationID, StationName: st.record.Name})
			g.registerTransfer(stationID, tr)
			g.AddEdge(Edge{Kind: Board, From: tr, To: depNode})
		}
		g.sortStationTransfers(stationID)

		transfers := g.stationTransfers[stationID]
		for i := 1; i < len(transfers); i++ {
			gap := g.Node(transfers[i]).Time - g.Node(transfers[i-1]).Time
			g.AddEdge(Edge{Kind: WaitAtStation, From: transfers[i-1], To: transfers[i], Duration: gap})
		}

		terminal := g.AddNode(Node{Kind: MainArrival, StationID: stationID})
		g.stationTerminal[stationID] = terminal

		for _, arrNode := range st.arrivals {
			arr := g.Node(arrNode)
			g.AddEdge(Edge{Kind: MainArrivalRelation, From: arrNode, To: terminal})

			if tr, ok := g.FindEarliestTransfer(stationID, arr.Time+st.record.TransferTime); ok {
				g.AddEdge(Edge{Kind: Alight, From: arrNode, To: tr, Duration: st.record.TransferTime})
			}
		}
	}

	// Through-trip WaitInTrain: consecutive legs of one physical trip
	// (same trip id, sorted by departure time) that meet at the same
	// station get an Arrival->Departure edge so a group already aboard
	// need not Alight and re-Board.
	for _, legs := range legsByTrip {
		for i := 1; i < len(legs); i++ {
			j := i
			for j > 0 && legs[j-1].record.Departure > legs[j].record.Departure {
				legs[j-1], legs[j] = legs[j], legs[j-1]
				j--
			}
		}
		for i := 1; i < len(legs); i++ {
			prev, next := legs[i-1], legs[i]
			if prev.record.ToStation != next.record.FromStation {
				continue
			}
			g.AddEdge(Edge{
				Kind:     WaitInTrain,
				From:     prev.arrivalNode,
				To:       next.departureNode,
				Duration: next.record.Departure - prev.record.Arrival,
			})
		}
	}

	// Step 4: footpaths.
	for _, fp := range footpaths {
		fromSt, ok := byStation[fp.FromStation]
		if !ok {
			return nil, stats, fmt.Errorf("footpath %s->%s: unknown origin station", fp.FromStation, fp.ToStation)
		}
		if _, ok := byStation[fp.ToStation]; !ok {
			return nil, stats, fmt.Errorf("footpath %s->%s: unknown destination station", fp.FromStation, fp.ToStation)
		}
		for _, arrNode := range fromSt.arrivals {
			arr := g.Node(arrNode)
			tr, ok := g.FindEarliestTransfer(fp.ToStation, arr.Time+fp.Duration)
			if !ok {
				stats.ImpossibleFootpaths++
				continue
			}
			g.AddEdge(Edge{Kind: Walk, From: arrNode, To: tr, Duration: fp.Duration})
		}
	}

	return g, stats, nil
}
