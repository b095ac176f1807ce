package service

import (
	"strconv"
	"strings"

	"github.com/you/go-mestre-flights/internal/providers"
)

// Normalize flattens the provider's raw payload into FlightOffer records.
// A payload with no offer array yields an empty list, not an error. Pure.
func Normalize(resp *providers.OfferSearchResponse) []FlightOffer {
	if resp == nil || len(resp.Data) == 0 {
		return []FlightOffer{}
	}
	out := make([]FlightOffer, 0, len(resp.Data))
	for _, raw := range resp.Data {
		if len(raw.Itineraries) == 0 || len(raw.Itineraries[0].Segments) == 0 {
			continue
		}
		outbound := buildLeg(raw.Itineraries[0])

		var inbound *Leg
		if len(raw.Itineraries) > 1 && len(raw.Itineraries[1].Segments) > 0 {
			l := buildLeg(raw.Itineraries[1])
			inbound = &l
		}

		price, _ := strconv.ParseFloat(raw.Price.Total, 64)

		out = append(out, FlightOffer{
			ID:          raw.ID,
			Price:       price,
			Currency:    raw.Price.Currency,
			Airlines:    carrierCodes(raw.Itineraries[0]),
			Outbound:    outbound,
			Inbound:     inbound,
			BookingLink: "https://www.amadeus.com/booking/" + raw.ID,
		})
	}
	return out
}

func buildLeg(it providers.RawItinerary) Leg {
	segs := it.Segments
	return Leg{
		Departure: segs[0].Departure.At,
		Arrival:   segs[len(segs)-1].Arrival.At,
		Duration:  humanDuration(it.Duration),
		Stops:     len(segs) - 1,
	}
}

// humanDuration rewrites the provider's compact notation (PT5H30M) as "5h 30m"
// by literal first-occurrence token substitution. Malformed inputs pass
// through unchanged.
func humanDuration(d string) string {
	d = strings.Replace(d, "PT", "", 1)
	d = strings.Replace(d, "H", "h ", 1)
	return strings.Replace(d, "M", "m", 1)
}

// carrierCodes dedupes the outbound leg's carriers preserving first-seen
// order. Inbound carriers are not collected.
func carrierCodes(it providers.RawItinerary) []string {
	seen := make(map[string]struct{}, len(it.Segments))
	codes := make([]string, 0, len(it.Segments))
	for _, s := range it.Segments {
		if _, ok := seen[s.CarrierCode]; ok {
			continue
		}
		seen[s.CarrierCode] = struct{}{}
		codes = append(codes, s.CarrierCode)
	}
	return codes
}
