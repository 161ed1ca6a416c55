package ws

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter exposes the websocket endpoint and a liveness probe.
func NewRouter(t *Transport) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ws", t.Handler())
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return r
}
