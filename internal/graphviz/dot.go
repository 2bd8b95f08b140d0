// Package graphviz renders a built timetable.Graph to Graphviz DOT text,
// used only when the CLI's input path contains "sample" (SPEC_FULL.md
// §10.2/§10.7). No library in the retrieved example pack writes DOT
// output (confirmed by search across every example go.mod); this stays a
// small stdlib text emitter rather than fabricate a dependency the pack
// never reaches for (DESIGN.md).
package graphviz

import (
	"fmt"
	"io"

	"github.com/eliaswendt/timetable-optimizer/internal/timetable"
)

// Write renders g as "digraph { ... }" to w, grouping nodes into one
// subgraph per station and coloring Trip edges by their utilization
// ratio (green when lightly loaded, red when at or beyond
// capacity_hard).
func Write(w io.Writer, g *timetable.Graph) error {
	if _, err := fmt.Fprintln(w, "digraph timetable {"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "  rankdir=LR;"); err != nil {
		return err
	}

	byStation := make(map[string][]int)
	for id := 0; id < g.NodeCount(); id++ {
		n := g.Node(id)
		byStation[n.StationID] = append(byStation[n.StationID], id)
	}

	for station, nodeIDs := range byStation {
		fmt.Fprintf(w, "  subgraph \"cluster_%s\" {\n", escape(station))
		fmt.Fprintf(w, "    label=%q;\n", station)
		for _, id := range nodeIDs {
			fmt.Fprintf(w, "    n%d [label=%q, shape=%s];\n", id, nodeLabel(g.Node(id)), nodeShape(g.Node(id)))
		}
		fmt.Fprintln(w, "  }")
	}

	for id := 0; id < g.EdgeCount(); id++ {
		e := g.Edge(id)
		color := "black"
		if e.Kind == timetable.Trip {
			color = edgeColor(g.EdgeUtilization(id), e.CapacitySoft, e.CapacityHard)
		}
		fmt.Fprintf(w, "  n%d -> n%d [label=%q, color=%s];\n", e.From, e.To, edgeLabel(e), color)
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

func nodeLabel(n timetable.Node) string {
	switch n.Kind {
	case timetable.Departure:
		return fmt.Sprintf("Dep %s@%d", n.TripID, n.Time)
	case timetable.Arrival:
		return fmt.Sprintf("Arr %s@%d", n.TripID, n.Time)
	case timetable.Transfer:
		return fmt.Sprintf("Xfer@%d", n.Time)
	case timetable.MainArrival:
		return "Main"
	default:
		return "?"
	}
}

func nodeShape(n timetable.Node) string {
	switch n.Kind {
	case timetable.MainArrival:
		return "doublecircle"
	case timetable.Transfer:
		return "diamond"
	default:
		return "box"
	}
}

func edgeLabel(e timetable.Edge) string {
	switch e.Kind {
	case timetable.Trip:
		return fmt.Sprintf("Trip(%d)", e.Duration)
	case timetable.WaitInTrain:
		return fmt.Sprintf("WaitInTrain(%d)", e.Duration)
	case timetable.Board:
		return "Board"
	case timetable.Alight:
		return fmt.Sprintf("Alight(%d)", e.Duration)
	case timetable.WaitAtStation:
		return fmt.Sprintf("Wait(%d)", e.Duration)
	case timetable.Walk:
		return fmt.Sprintf("Walk(%d)", e.Duration)
	case timetable.MainArrivalRelation:
		return ""
	default:
		return "?"
	}
}

func edgeColor(utilization, soft, hard uint64) string {
	if utilization >= hard {
		return "red"
	}
	if utilization > soft {
		return "orange"
	}
	return "green"
}

func escape(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '"' {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
