package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexiusacademia/rcmn/internal/beam"
	"github.com/alexiusacademia/rcmn/internal/units"
)

// CapacityRequest is the body of POST /api/capacity. Values are in the
// request's unit system: f'c in psi or MPa, fy and Es in ksi or MPa,
// lengths in in or mm. Layers without a depth take the standard cover.
type CapacityRequest struct {
	Config      beam.Config  `json:"config"`
	Units       string       `json:"units,omitempty"`
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Fc          float64      `json:"fc"`
	Fy          float64      `json:"fy"`
	Es          float64      `json:"es,omitempty"`
	Tension     []beam.Layer `json:"tension"`
	Compression []beam.Layer `json:"compression,omitempty"`
}

// CapacityResponse wraps a result with any warning about it
type CapacityResponse struct {
	units.Result
	Warning string `json:"warning,omitempty"`
}

type ConfigInfo struct {
	Name              string `json:"name"`
	Title             string `json:"title"`
	TensionLayers     int    `json:"tension_layers"`
	CompressionLayers int    `json:"compression_layers"`
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Input converts the request to solver units. A single layer sent for a
// two-layer configuration is split evenly over the standard depths and must
// not carry a depth of its own.
func (req CapacityRequest) Input(sys units.System) (beam.Input, error) {
	tension, err := spread("tension", req.Tension, req.Config.TensionLayers())
	if err != nil {
		return beam.Input{}, err
	}
	compression, err := spread("compression", req.Compression, req.Config.CompressionLayers())
	if err != nil {
		return beam.Input{}, err
	}
	in := beam.Input{
		Config:      req.Config,
		Geometry:    beam.Geometry{Width: req.Width, Height: req.Height},
		Materials:   beam.Materials{Fc: req.Fc, Fy: req.Fy, Es: req.Es},
		Tension:     tension,
		Compression: compression,
	}
	return sys.ToCore(in).WithDefaultDepths(), nil
}

// spread splits a single combined layer over a two-layer configuration
func spread(name string, layers []beam.Layer, n int) ([]beam.Layer, error) {
	if len(layers) != 1 || n != 2 {
		return layers, nil
	}
	if layers[0].Depth != 0 {
		return nil, &beam.InputError{
			Field:  name + " depth",
			Value:  layers[0].Depth,
			Reason: "a combined area is placed at the standard depths; send two layers to set depths",
		}
	}
	return beam.SplitEvenly(layers[0].Area, 0, 0), nil
}

func (s *Server) handleCapacity(w http.ResponseWriter, r *http.Request) {
	var req CapacityRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, beam.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Sprintf("decode request: %v", err))
		return
	}

	sys := s.cfg.Units
	if req.Units != "" {
		var err error
		if sys, err = units.ParseSystem(req.Units); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
	}

	res, err := s.solve(req, sys)
	if err != nil {
		s.log.Info("capacity rejected", "config", req.Config.String(), "err", err)
		writeError(w, http.StatusUnprocessableEntity, errorKind(err), err.Error())
		return
	}

	resp := CapacityResponse{Result: sys.Convert(res)}
	if !res.Converged {
		resp.Warning = res.Check().Error()
	}
	s.log.Debug("capacity solved", "config", req.Config.String(), "iterations", res.Iterations, "converged", res.Converged)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) solve(req CapacityRequest, sys units.System) (*beam.Result, error) {
	in, err := req.Input(sys)
	if err != nil {
		return nil, err
	}
	res, err := beam.Solve(in)
	if err != nil {
		return nil, err
	}
	if s.cfg.Strict {
		if err := res.Check(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (s *Server) handleConfigs(w http.ResponseWriter, r *http.Request) {
	out := make([]ConfigInfo, 0, len(beam.Configs))
	for _, c := range beam.Configs {
		out = append(out, ConfigInfo{
			Name:              c.String(),
			Title:             c.Title(),
			TensionLayers:     c.TensionLayers(),
			CompressionLayers: c.CompressionLayers(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, beam.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, beam.ErrInvalidSection):
		return "invalid_section"
	case errors.Is(err, beam.ErrDegenerateEquilibrium):
		return "degenerate_equilibrium"
	case errors.Is(err, beam.ErrNonConvergence):
		return "non_convergence"
	}
	return "internal"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, errorBody{Error: msg, Kind: kind})
}
