package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/you/go-mestre-flights/internal/config"
	"github.com/you/go-mestre-flights/internal/observability"
	"github.com/you/go-mestre-flights/internal/providers"
)

// Plan is the full search space: one origin, the destination list, the
// candidate departure dates and the bounds on return-date enumeration.
type Plan struct {
	Origin         string
	Destinations   []config.Destination
	DepartureDates []string
	Rules          Rules
	MaxReturnDate  time.Time
	ReturnStepDays int
	MaxReturnDates int
	TopN           int
}

func PlanFromConfig(cfg *config.Config) (Plan, error) {
	rules, err := RulesFromConfig(cfg)
	if err != nil {
		return Plan{}, err
	}
	maxReturn, err := time.Parse("2006-01-02", cfg.MaxReturnDate)
	if err != nil {
		return Plan{}, fmt.Errorf("bad max_return_date %q: %w", cfg.MaxReturnDate, err)
	}
	return Plan{
		Origin:         cfg.Origin,
		Destinations:   cfg.Destinations,
		DepartureDates: cfg.DepartureDates,
		Rules:          rules,
		MaxReturnDate:  maxReturn,
		ReturnStepDays: cfg.ReturnStepDays,
		MaxReturnDates: cfg.MaxReturnDates,
		TopN:           cfg.TopN,
	}, nil
}

// SearchResult is the boundary payload: the ranked top offers or a failure
// message. Success stays true even when the list is empty.
type SearchResult struct {
	Success bool          `json:"success"`
	Flights []FlightOffer `json:"flights"`
	Total   int           `json:"total"`
	Message string        `json:"message"`
}

// ProgressEvent reports one scanned (departure, return) pair.
type ProgressEvent struct {
	RunID         string `json:"runId"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate"`
	Offers        int    `json:"offers"`
	Error         string `json:"error,omitempty"`
}

type ProgressFunc func(ProgressEvent)

// SearchService drives the grid scan: it enumerates the plan, paces provider
// calls, isolates per-pair failures and ranks the survivors.
type SearchService struct {
	provider providers.FlightProvider
	plan     Plan
	limiter  *rate.Limiter
	history  *HistoryService
	group    singleflight.Group
	log      zerolog.Logger
}

// NewSearchService builds the orchestrator. pace is the minimum interval
// between successive provider calls; zero disables pacing (tests).
func NewSearchService(p providers.FlightProvider, plan Plan, pace time.Duration, hist *HistoryService, log zerolog.Logger) *SearchService {
	lim := rate.NewLimiter(rate.Inf, 1)
	if pace > 0 {
		lim = rate.NewLimiter(rate.Every(pace), 1)
	}
	return &SearchService{
		provider: p,
		plan:     plan,
		limiter:  lim,
		history:  hist,
		log:      log,
	}
}

// RunSearch executes one full grid scan. Concurrent callers coalesce into a
// single scan and share its result.
func (s *SearchService) RunSearch(ctx context.Context) (SearchResult, error) {
	v, err, _ := s.group.Do("scan", func() (any, error) {
		res, err := s.scan(ctx, nil)
		if err != nil {
			return nil, err
		}
		return res, nil
	})
	if err != nil {
		return SearchResult{
			Flights: []FlightOffer{},
			Message: "flight search failed, please try again later",
		}, err
	}
	return v.(SearchResult), nil
}

// RunSearchWithProgress is RunSearch with a per-pair callback. Progress runs
// are never coalesced: each caller gets its own event stream.
func (s *SearchService) RunSearchWithProgress(ctx context.Context, progress ProgressFunc) (SearchResult, error) {
	return s.scan(ctx, progress)
}

func (s *SearchService) scan(ctx context.Context, progress ProgressFunc) (SearchResult, error) {
	runID := uuid.NewString()
	start := time.Now()
	log := s.log.With().Str("run_id", runID).Logger()

	all := []FlightOffer{}
	pairs, failures := 0, 0

	for _, dest := range s.plan.Destinations {
		log.Info().Str("destination", dest.Code).Msg("scanning destination")
		for _, depDate := range s.plan.DepartureDates {
			returnDates, err := s.returnDates(depDate)
			if err != nil {
				return s.fail(runID, start, pairs, failures, err)
			}
			for _, retDate := range returnDates {
				pairs++
				if err := s.limiter.Wait(ctx); err != nil {
					return s.fail(runID, start, pairs, failures, err)
				}
				offers, err := s.scanPair(ctx, dest, depDate, retDate)
				if err != nil {
					// one failed pair never aborts the scan
					failures++
					log.Warn().Err(err).
						Str("destination", dest.Code).
						Str("departure", depDate).
						Str("return", retDate).
						Msg("pair query failed, skipping")
					if progress != nil {
						progress(ProgressEvent{RunID: runID, Destination: dest.Code, DepartureDate: depDate, ReturnDate: retDate, Error: err.Error()})
					}
					continue
				}
				all = append(all, offers...)
				if progress != nil {
					progress(ProgressEvent{RunID: runID, Destination: dest.Code, DepartureDate: depDate, ReturnDate: retDate, Offers: len(offers)})
				}
			}
		}
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Price < all[j].Price })
	if len(all) > s.plan.TopN {
		all = all[:s.plan.TopN]
	}

	res := SearchResult{Success: true, Flights: all, Total: len(all)}
	if res.Total > 0 {
		res.Message = "found the best offers matching your rules"
	} else {
		res.Message = "no flights matched the rules this time"
	}

	summary := RunSummary{
		ID:         runID,
		StartedAt:  start.UTC(),
		DurationMS: time.Since(start).Milliseconds(),
		Pairs:      pairs,
		Failures:   failures,
		Offers:     res.Total,
		Success:    true,
	}
	if res.Total > 0 {
		summary.CheapestPrice = all[0].Price
		summary.Currency = all[0].Currency
	}
	if s.history != nil {
		s.history.Record(summary)
	}
	observability.ScansTotal.WithLabelValues("ok").Inc()
	observability.ScanOffers.Observe(float64(res.Total))

	log.Info().
		Int("pairs", pairs).
		Int("failures", failures).
		Int("flights", res.Total).
		Dur("took", time.Since(start)).
		Msg("scan finished")
	return res, nil
}

// fail records an aborted run and surfaces the error to the caller.
func (s *SearchService) fail(runID string, start time.Time, pairs, failures int, err error) (SearchResult, error) {
	if s.history != nil {
		s.history.Record(RunSummary{
			ID:         runID,
			StartedAt:  start.UTC(),
			DurationMS: time.Since(start).Milliseconds(),
			Pairs:      pairs,
			Failures:   failures,
		})
	}
	observability.ScansTotal.WithLabelValues("error").Inc()
	s.log.Error().Str("run_id", runID).Err(err).Msg("scan aborted")
	return SearchResult{
		Flights: []FlightOffer{},
		Message: "flight search failed, please try again later",
	}, err
}

// returnDates enumerates candidate return dates for one departure: the
// earliest is departure + MinStayDays, then forward in ReturnStepDays steps,
// bounded by MaxReturnDate and capped at MaxReturnDates candidates.
func (s *SearchService) returnDates(departureDate string) ([]string, error) {
	dep, err := time.Parse("2006-01-02", departureDate)
	if err != nil {
		return nil, fmt.Errorf("bad departure date %q: %w", departureDate, err)
	}
	var out []string
	for d := dep.AddDate(0, 0, s.plan.Rules.MinStayDays); !d.After(s.plan.MaxReturnDate); d = d.AddDate(0, 0, s.plan.ReturnStepDays) {
		out = append(out, d.Format("2006-01-02"))
		if len(out) >= s.plan.MaxReturnDates {
			break
		}
	}
	return out, nil
}

// scanPair runs fetch -> normalize -> filter -> stamp for one date pair.
func (s *SearchService) scanPair(ctx context.Context, dest config.Destination, departureDate, returnDate string) ([]FlightOffer, error) {
	resp, err := s.provider.Search(ctx, providers.SearchQuery{
		Origin:        s.plan.Origin,
		Destination:   dest.Code,
		DepartureDate: departureDate,
		ReturnDate:    returnDate,
		Adults:        1,
	})
	if err != nil {
		return nil, err
	}
	offers := FilterByRules(Normalize(resp), s.plan.Rules)
	for i := range offers {
		offers[i].Destination = dest.Name
		offers[i].DestinationCode = dest.Code
	}
	return offers, nil
}
