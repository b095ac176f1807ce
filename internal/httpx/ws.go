package httpx

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/you/go-mestre-flights/internal/service"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // in prod, restrict origin
	},
}

type wsEvent struct {
	Type     string                 `json:"type"` // progress|result|error
	Progress *service.ProgressEvent `json:"progress,omitempty"`
	Result   *service.SearchResult  `json:"result,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// SearchWSHandler streams one scan: a progress event per scanned date pair,
// then the final ranked result. The scan runs sequentially, so writes from
// the progress callback never race the final write.
func SearchWSHandler(svc *service.SearchService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		defer conn.Close()

		res, err := svc.RunSearchWithProgress(r.Context(), func(ev service.ProgressEvent) {
			_ = conn.WriteJSON(wsEvent{Type: "progress", Progress: &ev})
		})
		if err != nil {
			_ = conn.WriteJSON(wsEvent{Type: "error", Error: err.Error()})
			return
		}
		_ = conn.WriteJSON(wsEvent{Type: "result", Result: &res})
	}
}
