package services

import (
	"testing"
)

func TestNearestNeighborOrdering(t *testing.T) {
	depot := coord(0, 0)
	stops := []Stop{
		{OrderID: "c", Coord: coord(0.03, 0)},
		{OrderID: "a", Coord: coord(0.01, 0)},
		{OrderID: "b", Coord: coord(0.02, 0)},
	}

	ordered := NearestNeighborOrdering{}.OrderStops(depot, stops)

	want := []string{"a", "b", "c"}
	if len(ordered) != len(want) {
		t.Fatalf("got %d stops, want %d", len(ordered), len(want))
	}
	for i, id := range want {
		if ordered[i].OrderID != id {
			t.Fatalf("position %d = %q, want %q", i, ordered[i].OrderID, id)
		}
	}
}

func TestNearestNeighborOrderingTieBreak(t *testing.T) {
	depot := coord(0, 0)
	// Two stops equidistant from the depot; the lower order ID goes first.
	stops := []Stop{
		{OrderID: "z", Coord: coord(0.01, 0)},
		{OrderID: "a", Coord: coord(-0.01, 0)},
	}

	ordered := NearestNeighborOrdering{}.OrderStops(depot, stops)
	if ordered[0].OrderID != "a" {
		t.Fatalf("tie-break picked %q first, want %q", ordered[0].OrderID, "a")
	}
}

func TestNearestNeighborOrderingDoesNotMutateInput(t *testing.T) {
	depot := coord(0, 0)
	stops := []Stop{
		{OrderID: "b", Coord: coord(0.02, 0)},
		{OrderID: "a", Coord: coord(0.01, 0)},
	}

	NearestNeighborOrdering{}.OrderStops(depot, stops)
	if stops[0].OrderID != "b" || stops[1].OrderID != "a" {
		t.Fatalf("input slice mutated: %+v", stops)
	}
}

func TestDiscoveryOrderingKeepsInputOrder(t *testing.T) {
	stops := []Stop{
		{OrderID: "c", Coord: coord(0.03, 0)},
		{OrderID: "a", Coord: coord(0.01, 0)},
	}

	ordered := DiscoveryOrdering{}.OrderStops(coord(0, 0), stops)
	if ordered[0].OrderID != "c" || ordered[1].OrderID != "a" {
		t.Fatalf("discovery order = %+v, want input order", ordered)
	}
}
