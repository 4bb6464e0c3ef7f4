package httpeph

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/core/ports/driven"
	"github.com/custodia-labs/jyotish/internal/logger"
)

// handler serves an ephemeris over HTTP.
type handler struct {
	eph driven.Ephemeris
}

// NewHandler exposes an ephemeris with the JSON API the Client speaks.
func NewHandler(eph driven.Ephemeris) http.Handler {
	h := &handler{eph: eph}
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+PathPosition, h.position)
	mux.HandleFunc("GET "+PathTransit, h.transit)
	mux.HandleFunc("GET "+PathAyanamsa, h.ayanamsa)
	return mux
}

func (h *handler) position(w http.ResponseWriter, r *http.Request) {
	q := query{r: r}
	jd := q.number("jd")
	body := domain.BodyKey(q.param("body"))
	if q.err != nil {
		writeError(w, q.err)
		return
	}

	pos, err := h.eph.BodyPosition(r.Context(), domain.JulianDay(jd), body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, positionResponse{
		Body:      string(pos.Key),
		Longitude: pos.Longitude,
		Latitude:  pos.Latitude,
		Speed:     pos.Speed,
	})
}

func (h *handler) transit(w http.ResponseWriter, r *http.Request) {
	q := query{r: r}
	jd := q.number("jd")
	geo := domain.GeoPosition{
		Latitude:  q.number("lat"),
		Longitude: q.number("lon"),
		Altitude:  q.optionalNumber("alt"),
	}
	body := domain.BodyKey(q.param("body"))
	event := domain.EventType(q.param("event"))
	flags := domain.RiseSetFlags{
		DiscCenter:   q.flag("disc_center"),
		NoRefraction: q.flag("no_refraction"),
	}
	if q.err != nil {
		writeError(w, q.err)
		return
	}

	at, err := h.eph.RiseSetTransit(r.Context(), domain.JulianDay(jd), geo, body, event, flags)
	if errors.Is(err, domain.ErrNoTransition) {
		writeJSON(w, http.StatusOK, transitResponse{})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transitResponse{JD: float64(at), Valid: true})
}

func (h *handler) ayanamsa(w http.ResponseWriter, r *http.Request) {
	q := query{r: r}
	jd := q.number("jd")
	if q.err != nil {
		writeError(w, q.err)
		return
	}

	value, err := h.eph.Ayanamsa(r.Context(), domain.JulianDay(jd))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ayanamsaResponse{Ayanamsa: value})
}

// query reads parameters and keeps the first error.
type query struct {
	r   *http.Request
	err error
}

func (q *query) param(name string) string {
	v := q.r.URL.Query().Get(name)
	if v == "" && q.err == nil {
		q.err = fmt.Errorf("%w: missing parameter %q", domain.ErrInvalidInput, name)
	}
	return v
}

func (q *query) number(name string) float64 {
	v := q.param(name)
	if v == "" {
		return 0
	}
	return q.parse(name, v)
}

func (q *query) optionalNumber(name string) float64 {
	v := q.r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	return q.parse(name, v)
}

func (q *query) parse(name, v string) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil && q.err == nil {
		q.err = fmt.Errorf("%w: parameter %q: %v", domain.ErrInvalidInput, name, err)
	}
	return f
}

func (q *query) flag(name string) bool {
	v := q.r.URL.Query().Get(name)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil && q.err == nil {
		q.err = fmt.Errorf("%w: parameter %q: %v", domain.ErrInvalidInput, name, err)
	}
	return b
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrEphemerisUnavailable):
		status = http.StatusNotFound
	default:
		logger.Warn("ephemeris request failed: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("write response: %v", err)
	}
}
