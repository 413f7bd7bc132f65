package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"voice-connector/internal/infra/handlers"
)

type Routes struct {
	Mux                *mux.Router
	MediaStreamHandler *handlers.MediaStreamHandler
}

func NewRoutes(mux *mux.Router, mediaStreamHandler *handlers.MediaStreamHandler) *Routes {
	return &Routes{mux, mediaStreamHandler}
}

func (r *Routes) Init() {
	r.Mux.HandleFunc("/media", r.MediaStreamHandler.MediaStream)

	r.Mux.HandleFunc("/healthCheck", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods(http.MethodGet)
}
