package service

import (
	"fmt"
	"time"
)

// Leg is one direction of travel. Timestamps are kept as the provider returned
// them; they are parsed only where the rules need to compare them.
type Leg struct {
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
	Duration  string `json:"duration"`
	Stops     int    `json:"stops"`
}

// FlightOffer is the flat, normalized offer record. Inbound is nil for one-way
// offers. Destination metadata is stamped by the orchestrator after filtering.
type FlightOffer struct {
	ID              string   `json:"id"`
	Price           float64  `json:"price"`
	Currency        string   `json:"currency"`
	Airlines        []string `json:"airlines"`
	Outbound        Leg      `json:"outbound"`
	Inbound         *Leg     `json:"inbound"`
	BookingLink     string   `json:"bookingLink"`
	Destination     string   `json:"destination"`
	DestinationCode string   `json:"destinationCode"`
}

// parseOfferTime handles the provider's naive local timestamps with RFC3339
// fallbacks should a zone ever appear.
func parseOfferTime(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unsupported time format: %q", s)
}
