package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/bolide-group/impact-cli/internal/dataset"
	"github.com/bolide-group/impact-cli/internal/export"
	"github.com/bolide-group/impact-cli/internal/gazetteer"
	"github.com/bolide-group/impact-cli/internal/geodesy"
	"github.com/bolide-group/impact-cli/internal/physics"
)

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	params, ok := s.decodeParams(w, r)
	if !ok {
		return
	}

	result, err := s.sim.Simulate(r.Context(), params)
	if err != nil {
		s.simulateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSimulateGeoJSON(w http.ResponseWriter, r *http.Request) {
	lat, lng, ok := queryCoords(w, r)
	if !ok {
		return
	}
	params := physics.Parameters{
		DiameterM:   queryFloat(r, "diameter", 0),
		DensityKgM3: queryFloat(r, "density", 0),
		VelocityKmS: queryFloat(r, "velocity", 0),
		AngleDeg:    queryFloat(r, "angle", 45),
		Target:      &geodesy.Point{Lat: lat, Lng: lng},
	}

	result, err := s.sim.Simulate(r.Context(), params)
	if err != nil {
		s.simulateError(w, err)
		return
	}

	data, err := export.Marshal(result)
	if err != nil {
		s.log.Error("geojson export failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(data)
}

func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	lat, lng, ok := queryCoords(w, r)
	if !ok {
		return
	}
	idx, ok := s.index(w, r)
	if !ok {
		return
	}

	city, found := idx.Nearest(lat, lng)
	if !found {
		writeError(w, http.StatusNotFound, "no cities in dataset")
		return
	}
	writeJSON(w, http.StatusOK, city)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit := int(queryFloat(r, "limit", 10))

	idx, ok := s.index(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, idx.Search(query, limit))
}

func (s *Server) handleDatasetStatus(w http.ResponseWriter, _ *http.Request) {
	type statuser interface {
		Status() dataset.Status
	}
	if st, ok := s.provider.(statuser); ok {
		writeJSON(w, http.StatusOK, st.Status())
		return
	}
	if s.provider == nil {
		writeJSON(w, http.StatusOK, dataset.Status{State: "disabled"})
		return
	}
	writeJSON(w, http.StatusOK, dataset.Status{State: "ready"})
}

// decodeParams reads the simulation parameters from the request body.
func (s *Server) decodeParams(w http.ResponseWriter, r *http.Request) (physics.Parameters, bool) {
	var params physics.Parameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return params, false
	}
	return params, true
}

// simulateError maps simulation failures to HTTP status codes. Invalid
// parameters are the caller's fault; everything else is ours.
func (s *Server) simulateError(w http.ResponseWriter, err error) {
	if eris.Is(err, physics.ErrInvalidParameters) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.Error("simulation failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "simulation failed")
}

// index resolves the city index, translating dataset failures to HTTP errors.
func (s *Server) index(w http.ResponseWriter, r *http.Request) (*gazetteer.Index, bool) {
	if s.provider == nil {
		writeError(w, http.StatusServiceUnavailable, "city dataset not configured")
		return nil, false
	}
	idx, err := s.provider.Index(r.Context())
	if err != nil {
		if eris.Is(err, dataset.ErrUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "city dataset unavailable")
			return nil, false
		}
		s.log.Error("index load failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "dataset load failed")
		return nil, false
	}
	return idx, true
}

func queryFloat(r *http.Request, key string, def float64) float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

func queryCoords(w http.ResponseWriter, r *http.Request) (lat, lng float64, ok bool) {
	q := r.URL.Query()
	if q.Get("lat") == "" || q.Get("lng") == "" {
		writeError(w, http.StatusBadRequest, "lat and lng are required")
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	if errLat != nil || errLng != nil {
		writeError(w, http.StatusBadRequest, "lat and lng must be numbers")
		return 0, 0, false
	}
	return lat, lng, true
}
