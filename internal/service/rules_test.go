package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testRules(t *testing.T) Rules {
	t.Helper()
	cutoff, err := time.Parse("2006-01-02", "2025-12-29")
	require.NoError(t, err)
	return Rules{MaxDeparture: cutoff, MinStayDays: 13}
}

func roundTripOffer(id, depAt, retAt string, price float64) FlightOffer {
	in := Leg{Departure: retAt}
	return FlightOffer{
		ID:       id,
		Price:    price,
		Outbound: Leg{Departure: depAt},
		Inbound:  &in,
	}
}

func TestFilter_DepartureAfterCutoffExcluded(t *testing.T) {
	// cheapest offer of all, but it departs past the cutoff
	offers := []FlightOffer{
		roundTripOffer("late", "2025-12-30T08:00:00", "2026-01-14T08:00:00", 1.00),
	}
	require.Empty(t, FilterByRules(offers, testRules(t)))
}

func TestFilter_DepartureOnCutoffKept(t *testing.T) {
	offers := []FlightOffer{
		roundTripOffer("edge", "2025-12-29T00:00:00", "2026-01-12T00:00:00", 500),
	}
	require.Len(t, FilterByRules(offers, testRules(t)), 1)
}

func TestFilter_MinStayBoundary(t *testing.T) {
	r := testRules(t)

	exact := roundTripOffer("exact", "2025-12-26T10:00:00", "2026-01-08T10:00:00", 500) // 13 days
	short := roundTripOffer("short", "2025-12-26T10:00:00", "2026-01-07T10:00:00", 500) // 12 days

	require.Len(t, FilterByRules([]FlightOffer{exact}, r), 1)
	require.Empty(t, FilterByRules([]FlightOffer{short}, r))
}

func TestFilter_PartialDayRoundsUp(t *testing.T) {
	// 12 days and 2 hours rounds up to 13 whole days
	o := roundTripOffer("partial", "2025-12-26T10:00:00", "2026-01-07T12:00:00", 500)
	require.Len(t, FilterByRules([]FlightOffer{o}, testRules(t)), 1)
}

func TestFilter_OneWayKept(t *testing.T) {
	o := FlightOffer{ID: "oneway", Outbound: Leg{Departure: "2025-12-26T10:00:00"}}
	require.Len(t, FilterByRules([]FlightOffer{o}, testRules(t)), 1)
}

func TestFilter_OrderPreserved(t *testing.T) {
	offers := []FlightOffer{
		roundTripOffer("a", "2025-12-26T10:00:00", "2026-01-10T10:00:00", 900),
		roundTripOffer("b", "2025-12-30T10:00:00", "2026-01-14T10:00:00", 100), // dropped
		roundTripOffer("c", "2025-12-27T10:00:00", "2026-01-11T10:00:00", 300),
	}
	kept := FilterByRules(offers, testRules(t))
	require.Len(t, kept, 2)
	require.Equal(t, "a", kept[0].ID)
	require.Equal(t, "c", kept[1].ID)
	// input untouched
	require.Equal(t, "b", offers[1].ID)
}

func TestFilter_UnparseableDepartureDropped(t *testing.T) {
	o := FlightOffer{ID: "bad", Outbound: Leg{Departure: "not-a-timestamp"}}
	require.Empty(t, FilterByRules([]FlightOffer{o}, testRules(t)))
}
