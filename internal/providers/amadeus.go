package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/you/go-mestre-flights/internal/config"
	"github.com/you/go-mestre-flights/internal/observability"
)

type Amadeus struct {
	host       string
	authPath   string
	searchPath string
	client     *http.Client
	id         string
	secret     string
	currency   string
	maxOffers  int
}

func NewAmadeus(cfg *config.Config) *Amadeus {
	return &Amadeus{
		host:       cfg.AmadeusURL,
		authPath:   "/v1/security/oauth2/token",
		searchPath: "/v2/shopping/flight-offers",
		id:         cfg.AmadeusAPIKey,
		secret:     cfg.AmadeusAPISecret,
		currency:   cfg.Currency,
		maxOffers:  cfg.MaxOffersPerQuery,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *Amadeus) Name() string { return "amadeus" }

// token exchanges the client id/secret for a short-lived bearer token. Tokens
// are not cached: every search call performs a fresh exchange.
func (a *Amadeus) token(ctx context.Context) (string, error) {
	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("client_id", a.id)
	data.Set("client_secret", a.secret)

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, a.host+a.authPath, strings.NewReader(data.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		observability.ObserveProvider("token", 0, time.Since(start))
		return "", fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	defer resp.Body.Close()
	observability.ObserveProvider("token", resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: token endpoint returned %s", ErrAuthentication, resp.Status)
	}
	var tr struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("%w: decode token response: %v", ErrAuthentication, err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrAuthentication)
	}
	return tr.AccessToken, nil
}

func (a *Amadeus) Search(ctx context.Context, q SearchQuery) (*OfferSearchResponse, error) {
	if a.id == "" || a.secret == "" {
		return nil, fmt.Errorf("%w: amadeus credentials missing", ErrAuthentication)
	}
	tok, err := a.token(ctx)
	if err != nil {
		return nil, err
	}

	adults := q.Adults
	if adults <= 0 {
		adults = 1
	}

	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.DepartureDate)
	if q.ReturnDate != "" {
		params.Set("returnDate", q.ReturnDate)
	}
	params.Set("adults", strconv.Itoa(adults))
	params.Set("currencyCode", a.currency)
	params.Set("max", strconv.Itoa(a.maxOffers))

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, a.host+a.searchPath+"?"+params.Encode(), nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		observability.ObserveProvider("search", 0, time.Since(start))
		return nil, fmt.Errorf("%w: %v", ErrSearch, err)
	}
	defer resp.Body.Close()
	observability.ObserveProvider("search", resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 300 {
		// small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %s: %s", ErrSearch, resp.Status, strings.TrimSpace(string(b)))
	}

	var payload OfferSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode offers: %v", ErrSearch, err)
	}
	return &payload, nil
}
