package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/you/go-mestre-flights/internal/providers"
)

func seg(carrier, depAt, arrAt string) providers.RawSegment {
	return providers.RawSegment{
		CarrierCode: carrier,
		Departure:   providers.RawEndpoint{At: depAt},
		Arrival:     providers.RawEndpoint{At: arrAt},
	}
}

func rawOneWay(id, total string, segs ...providers.RawSegment) providers.RawOffer {
	var o providers.RawOffer
	o.ID = id
	o.Price.Total = total
	o.Price.Currency = "BRL"
	o.Itineraries = []providers.RawItinerary{{Duration: "PT5H30M", Segments: segs}}
	return o
}

func rawRoundTrip(id, total, depAt, retAt string) providers.RawOffer {
	o := rawOneWay(id, total, seg("G3", depAt, "2025-12-26T14:00:00"))
	o.Itineraries = append(o.Itineraries, providers.RawItinerary{
		Duration: "PT4H10M",
		Segments: []providers.RawSegment{seg("AD", retAt, "2026-01-08T20:00:00")},
	})
	return o
}

func TestNormalize_OneWayHasNoInbound(t *testing.T) {
	resp := &providers.OfferSearchResponse{Data: []providers.RawOffer{
		rawOneWay("1", "899.90",
			seg("G3", "2025-12-26T08:00:00", "2025-12-26T10:30:00"),
			seg("G3", "2025-12-26T11:30:00", "2025-12-26T14:00:00"),
		),
	}}

	offers := Normalize(resp)
	require.Len(t, offers, 1)
	require.Nil(t, offers[0].Inbound)
	require.Equal(t, 1, offers[0].Outbound.Stops)
	require.Equal(t, "2025-12-26T08:00:00", offers[0].Outbound.Departure)
	require.Equal(t, "2025-12-26T14:00:00", offers[0].Outbound.Arrival)
	require.Equal(t, 899.90, offers[0].Price)
	require.Equal(t, "BRL", offers[0].Currency)
	require.Equal(t, "https://www.amadeus.com/booking/1", offers[0].BookingLink)
}

func TestNormalize_RoundTripLegs(t *testing.T) {
	o := rawOneWay("2", "1500.00",
		seg("G3", "2025-12-26T08:00:00", "2025-12-26T10:30:00"),
		seg("AD", "2025-12-26T11:30:00", "2025-12-26T14:00:00"),
		seg("G3", "2025-12-26T15:00:00", "2025-12-26T17:00:00"),
	)
	o.Itineraries = append(o.Itineraries, providers.RawItinerary{
		Duration: "PT6H",
		Segments: []providers.RawSegment{
			seg("LA", "2026-01-10T09:00:00", "2026-01-10T12:00:00"),
			seg("LA", "2026-01-10T13:00:00", "2026-01-10T15:00:00"),
		},
	})

	offers := Normalize(&providers.OfferSearchResponse{Data: []providers.RawOffer{o}})
	require.Len(t, offers, 1)

	got := offers[0]
	require.NotNil(t, got.Inbound)
	require.Equal(t, 1, got.Inbound.Stops) // segment count minus one
	require.Equal(t, 2, got.Outbound.Stops)
	require.Equal(t, "2026-01-10T09:00:00", got.Inbound.Departure)
	require.Equal(t, "2026-01-10T15:00:00", got.Inbound.Arrival)
	// outbound carriers only, deduped in first-seen order
	require.Equal(t, []string{"G3", "AD"}, got.Airlines)
	require.Equal(t, "5h 30m", got.Outbound.Duration)
	require.Equal(t, "6h ", got.Inbound.Duration)
}

func TestNormalize_EmptyPayload(t *testing.T) {
	require.Empty(t, Normalize(nil))
	require.Empty(t, Normalize(&providers.OfferSearchResponse{}))
	require.NotNil(t, Normalize(&providers.OfferSearchResponse{}))
}

func TestNormalize_SkipsOffersWithoutSegments(t *testing.T) {
	resp := &providers.OfferSearchResponse{Data: []providers.RawOffer{
		{ID: "empty"},
		rawOneWay("ok", "100.00", seg("G3", "2025-12-26T08:00:00", "2025-12-26T10:00:00")),
	}}
	offers := Normalize(resp)
	require.Len(t, offers, 1)
	require.Equal(t, "ok", offers[0].ID)
}

func TestHumanDuration(t *testing.T) {
	cases := map[string]string{
		"PT5H30M": "5h 30m",
		"PT45M":   "45m",
		"PT2H":    "2h ",
		"garbage": "garbage", // malformed input passes through
	}
	for in, want := range cases {
		require.Equal(t, want, humanDuration(in), "input %q", in)
	}
}
