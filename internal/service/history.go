package service

import (
	"sync"
	"time"
)

// RunSummary records how one grid scan went.
type RunSummary struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"startedAt"`
	DurationMS    int64     `json:"durationMs"`
	Pairs         int       `json:"pairs"`
	Failures      int       `json:"failures"`
	Offers        int       `json:"offers"`
	CheapestPrice float64   `json:"cheapestPrice,omitempty"`
	Currency      string    `json:"currency,omitempty"`
	Success       bool      `json:"success"`
}

// HistoryService keeps summaries of recent scan runs in memory, newest first.
// Summaries only; offer payloads are never retained across requests.
type HistoryService struct {
	mu   sync.Mutex
	max  int
	runs []RunSummary
}

func NewHistoryService(max int) *HistoryService {
	if max <= 0 {
		max = 50
	}
	return &HistoryService{max: max}
}

func (h *HistoryService) Record(r RunSummary) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.runs = append([]RunSummary{r}, h.runs...)
	if len(h.runs) > h.max {
		h.runs = h.runs[:h.max]
	}
}

func (h *HistoryService) Recent() []RunSummary {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]RunSummary, len(h.runs))
	copy(out, h.runs)
	return out
}
