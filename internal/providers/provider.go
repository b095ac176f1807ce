package providers

import (
	"context"
	"errors"
)

// SearchQuery is one (route, date pair) request against the provider. Built per
// grid iteration and discarded after use.
type SearchQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
}

// OfferSearchResponse is the provider's raw flight-offers payload. It is owned
// transiently by the fetch call and consumed by normalization only.
type OfferSearchResponse struct {
	Data []RawOffer `json:"data"`
}

type RawOffer struct {
	ID    string `json:"id"`
	Price struct {
		Total    string `json:"total"`
		Currency string `json:"currency"`
	} `json:"price"`
	Itineraries []RawItinerary `json:"itineraries"`
}

type RawItinerary struct {
	Duration string       `json:"duration"` // ISO8601 compact, e.g. PT5H30M
	Segments []RawSegment `json:"segments"`
}

type RawSegment struct {
	CarrierCode string      `json:"carrierCode"`
	Departure   RawEndpoint `json:"departure"`
	Arrival     RawEndpoint `json:"arrival"`
}

type RawEndpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"` // local time without offset, e.g. 2025-12-26T08:45:00
}

type FlightProvider interface {
	Name() string
	Search(ctx context.Context, q SearchQuery) (*OfferSearchResponse, error)
}

var (
	// ErrAuthentication marks a failed token exchange: the search that needed
	// the token cannot proceed.
	ErrAuthentication = errors.New("provider authentication failed")
	// ErrSearch marks a failed offer query for one date pair.
	ErrSearch = errors.New("provider search failed")
)
