package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/couchcryptid/design-value-explorer/internal/catalog"
	"github.com/couchcryptid/design-value-explorer/internal/colorscale"
	"github.com/couchcryptid/design-value-explorer/internal/explorer"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

// Explorer is the part of explorer.Service the API serves.
type Explorer interface {
	Catalog() *catalog.Catalog
	Initial(id string, regime catalog.Regime) (explorer.State, error)
	Reduce(st explorer.State, ev explorer.Event) (explorer.State, error)
	Colourbar(ctx context.Context, st explorer.State) (colorscale.Colourbar, error)
}

type viewResponse struct {
	State     explorer.State       `json:"state"`
	Colourbar colorscale.Colourbar `json:"colourbar"`
}

type reduceRequest struct {
	State *explorer.State `json:"state"`
	Event json.RawMessage `json:"event"`
}

func (s *Server) handleDesignValues(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.explorer.Catalog())
}

func (s *Server) handleColourMaps(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, map[string][]string{"colour_maps": colorscale.ColourMapNames()})
}

func (s *Server) handleColourbar(w http.ResponseWriter, r *http.Request) {
	st, err := s.stateFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeView(w, r, st)
}

// stateFromQuery starts from the default state of the requested dataset and
// applies each query override as a reducer event.
func (s *Server) stateFromQuery(r *http.Request) (explorer.State, error) {
	q := r.URL.Query()

	id := q.Get("design_value")
	if id == "" {
		return explorer.State{}, fmt.Errorf("%w: design_value is required", errBadRequest)
	}
	regime := catalog.Historical
	if v := q.Get("regime"); v != "" {
		parsed, err := catalog.ParseRegime(v)
		if err != nil {
			return explorer.State{}, err
		}
		regime = parsed
	}

	st, err := s.explorer.Initial(id, regime)
	if err != nil {
		return explorer.State{}, err
	}

	if v := q.Get("warming_level"); v != "" {
		for _, ev := range []explorer.Event{explorer.SelectWarmingLevel{Level: v}, explorer.ResetRange{}} {
			if st, err = s.explorer.Reduce(st, ev); err != nil {
				return explorer.State{}, err
			}
		}
	}

	var events []explorer.Event
	if v := q.Get("colour_map"); v != "" {
		events = append(events, explorer.SetColourMap{Name: v})
	}
	if v := q.Get("bins"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return explorer.State{}, fmt.Errorf("%w: bins must be an integer, got %q", errBadRequest, v)
		}
		events = append(events, explorer.SetBins{Bins: n})
	}
	if v := q.Get("scale"); v != "" {
		events = append(events, explorer.SetScale{Scale: colorscale.Mode(v)})
	}

	minStr, maxStr := q.Get("min"), q.Get("max")
	if minStr != "" || maxStr != "" {
		rng := explorer.SetRange{Min: st.Min, Max: st.Max}
		if minStr != "" {
			if rng.Min, err = parseFloat("min", minStr); err != nil {
				return explorer.State{}, err
			}
		}
		if maxStr != "" {
			if rng.Max, err = parseFloat("max", maxStr); err != nil {
				return explorer.State{}, err
			}
		}
		events = append(events, rng)
	}

	for _, ev := range events {
		if st, err = s.explorer.Reduce(st, ev); err != nil {
			return explorer.State{}, err
		}
	}
	return st, nil
}

func (s *Server) handleReduce(w http.ResponseWriter, r *http.Request) {
	var req reduceRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: decode body: %w", errBadRequest, err))
		return
	}
	if req.State == nil {
		s.writeError(w, r, fmt.Errorf("%w: state is required", errBadRequest))
		return
	}
	if len(req.Event) == 0 {
		s.writeError(w, r, fmt.Errorf("%w: event is required", errBadRequest))
		return
	}

	ev, err := explorer.DecodeEvent(req.Event)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	st, err := s.explorer.Reduce(*req.State, ev)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeView(w, r, st)
}

func (s *Server) writeView(w http.ResponseWriter, r *http.Request, st explorer.State) {
	cb, err := s.explorer.Colourbar(r.Context(), st)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, viewResponse{State: st, Colourbar: cb})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrUnknownDesignValue):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, explorer.ErrInvalidEvent),
		errors.Is(err, catalog.ErrUnknownRegime),
		errors.Is(err, colorscale.ErrConfiguration),
		errors.Is(err, colorscale.ErrShapeMismatch),
		errors.Is(err, colorscale.ErrUnknownColourMap):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parseFloat(name, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", errBadRequest, name, v)
	}
	return f, nil
}
