package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"listings/internal/logging"
	"listings/internal/store"
)

const maxListingBodyBytes = 1 << 20

var (
	errInvalidNumber = errors.New("must be a number")
	errTrailingData  = errors.New("unexpected data after JSON value")
)

type listingRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *number `json:"price"`
	Location    *string `json:"location"`
	City        *string `json:"city"`
}

// toNewListing reports the first missing field, in declaration order.
func (req listingRequest) toNewListing() (store.NewListing, error) {
	required := []struct {
		name    string
		missing bool
	}{
		{"title", req.Title == nil},
		{"description", req.Description == nil},
		{"price", req.Price == nil},
		{"location", req.Location == nil},
		{"city", req.City == nil},
	}
	for _, field := range required {
		if field.missing {
			return store.NewListing{}, fmt.Errorf("%s is required", field.name)
		}
	}

	return store.NewListing{
		Title:       *req.Title,
		Description: *req.Description,
		Price:       float64(*req.Price),
		Location:    *req.Location,
		City:        *req.City,
	}, nil
}

// number decodes a JSON number or a string holding one.
type number float64

func (n *number) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errInvalidNumber
		}
		raw = s
	}
	v, err := parseNumber(raw)
	if err != nil {
		return err
	}
	*n = number(v)
	return nil
}

func parseNumber(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errInvalidNumber
	}
	return v, nil
}

func (s *Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	var req listingRequest
	if err := decodeBody(http.MaxBytesReader(w, r.Body, maxListingBodyBytes), &req); err != nil {
		status, detail := decodeFailure(err)
		writeJSON(w, status, errorResponse{Detail: detail})
		return
	}

	input, err := req.toNewListing()
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: err.Error()})
		return
	}

	listing, err := s.listings.Create(r.Context(), input)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, listing)
}

func (s *Server) handleListListings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := store.ListingFilter{City: query.Get("city")}

	for _, bound := range []struct {
		name string
		dst  **float64
	}{
		{"min_price", &filter.MinPrice},
		{"max_price", &filter.MaxPrice},
	} {
		raw := query.Get(bound.name)
		if raw == "" {
			continue
		}
		v, err := parseNumber(raw)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: bound.name + " " + err.Error()})
			return
		}
		*bound.dst = &v
	}

	listings, err := s.listings.List(r.Context(), filter)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if listings == nil {
		listings = []store.Listing{}
	}

	writeJSON(w, http.StatusOK, listings)
}

func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := s.listings.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, store.ErrListingNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Listing not found"})
			return
		}
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listing)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	logging.WithContext(r.Context()).Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("listing request failed")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal server error"})
}

// decodeBody decodes exactly one JSON value from body. Anything but
// whitespace after it is a syntax error.
func decodeBody(body io.Reader, dst any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

// decodeFailure maps a body decoding error to a status and a client message.
// Syntactically broken bodies are 400, well formed bodies with the wrong
// shape are 422.
func decodeFailure(err error) (int, string) {
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, errInvalidNumber):
		return http.StatusUnprocessableEntity, "price " + errInvalidNumber.Error()
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return http.StatusUnprocessableEntity, "request body must be a JSON object"
		}
		return http.StatusUnprocessableEntity, fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type)
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge, "request body too large"
	default:
		return http.StatusBadRequest, "invalid JSON payload"
	}
}
