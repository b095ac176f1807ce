package service

import (
	"fmt"
	"math"
	"time"

	"github.com/you/go-mestre-flights/internal/config"
)

// Rules are the two business constraints an offer must satisfy: depart no
// later than the cutoff, and keep the traveler at the destination for at
// least MinStayDays when a return leg exists.
type Rules struct {
	MaxDeparture time.Time
	MinStayDays  int
}

func RulesFromConfig(cfg *config.Config) (Rules, error) {
	cutoff, err := time.Parse("2006-01-02", cfg.MaxDepartureDate)
	if err != nil {
		return Rules{}, fmt.Errorf("bad max_departure_date %q: %w", cfg.MaxDepartureDate, err)
	}
	return Rules{MaxDeparture: cutoff, MinStayDays: cfg.MinStayDays}, nil
}

// FilterByRules keeps an offer iff its outbound departure is on or before the
// cutoff and, when an inbound leg exists, the stay spans at least MinStayDays
// whole days. Order-preserving; inputs are not mutated. Offers with
// unparseable timestamps are dropped.
func FilterByRules(offers []FlightOffer, r Rules) []FlightOffer {
	kept := make([]FlightOffer, 0, len(offers))
	for _, o := range offers {
		dep, err := parseOfferTime(o.Outbound.Departure)
		if err != nil || dep.After(r.MaxDeparture) {
			continue
		}
		if o.Inbound != nil {
			ret, err := parseOfferTime(o.Inbound.Departure)
			if err != nil || stayDays(dep, ret) < r.MinStayDays {
				continue
			}
		}
		kept = append(kept, o)
	}
	return kept
}

// stayDays is the whole-day span between outbound and inbound departures,
// rounded up.
func stayDays(dep, ret time.Time) int {
	return int(math.Ceil(ret.Sub(dep).Hours() / 24))
}
