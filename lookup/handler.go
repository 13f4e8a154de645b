package lookup

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cadastralscraper/fetcher"

	"github.com/go-playground/validator/v10"
)

// minGeocodeLength is enforced at the API boundary before any fetch happens.
const minGeocodeLength = 5

// Handler serves the lookup HTTP API.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler creates the API handler around a lookup service.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

// lookupResponse is the success body of GET /lookup.
type lookupResponse struct {
	Geocode string `json:"geocode"`
	Address string `json:"address"`
}

// errorResponse is the failure body of every route.
type errorResponse struct {
	Detail string `json:"detail"`
}

// Lookup handles GET /lookup?geocode=<value>.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	geocode := strings.TrimSpace(r.URL.Query().Get("geocode"))

	if err := h.validate.Var(geocode, fmt.Sprintf("required,min=%d", minGeocodeLength)); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Detail: fmt.Sprintf("geocode query parameter is required and must be at least %d characters", minGeocodeLength),
		})
		return
	}

	result, err := h.service.Lookup(r.Context(), geocode)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, lookupResponse{Geocode: result.Geocode, Address: result.Address})
	case errors.Is(err, ErrBadInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: result.Error})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Address not found on the page."})
	default:
		var fetchErr *fetcher.FetchError
		detail := "Lookup failed: " + result.Error
		if errors.As(err, &fetchErr) {
			detail = "Lookup failed: " + fetchErr.Error()
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: detail})
	}
}

// Root handles GET / with a static usage hint.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"message": "Use /lookup?geocode=XX-XXXX-XX-X-XX-XX-XXXX",
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
