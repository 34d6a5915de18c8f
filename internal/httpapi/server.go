package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"listings/internal/metrics"
	"listings/internal/store"
)

// ListingService exposes listing-specific workflows.
type ListingService interface {
	Create(ctx context.Context, input store.NewListing) (store.Listing, error)
	List(ctx context.Context, filter store.ListingFilter) ([]store.Listing, error)
	Get(ctx context.Context, id string) (store.Listing, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	listings ListingService
	metrics  *metrics.Metrics
}

// New configures a Server. m may be nil, in which case requests are not
// instrumented and /metrics is not served.
func New(listings ListingService, m *metrics.Metrics) *Server {
	return &Server{listings: listings, metrics: m}
}

// Routes exposes the HTTP handlers for the listings directory.
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()

	if s.metrics != nil {
		router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	// Both spellings of the collection path are served directly rather than
	// redirected, so POST bodies survive.
	for _, path := range []string{"/listings/", "/listings"} {
		router.HandleFunc(path, s.handleCreateListing).Methods(http.MethodPost)
		router.HandleFunc(path, s.handleListListings).Methods(http.MethodGet)
	}
	router.HandleFunc("/listings/{id}", s.handleGetListing).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Not Found"})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Detail: "Method Not Allowed"})
	})

	if s.metrics != nil {
		return s.metrics.Instrument(router)
	}
	return router
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
