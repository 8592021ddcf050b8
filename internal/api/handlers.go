package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/paunstefan/view-angle-calculator/internal/metrics"
	"github.com/paunstefan/view-angle-calculator/internal/transform"
)

// ErrDegenerate is returned when the observer geometry makes the look angles
// undefined (NaN or infinite).
var ErrDegenerate = errors.New("degenerate geometry")

type positionJSON struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
}

type ellipsoidJSON struct {
	SemiMajorAxis     float64 `json:"semi_major_axis"`
	InverseFlattening float64 `json:"inverse_flattening"`
	Flattening        float64 `json:"flattening"`
	EccentricitySq    float64 `json:"eccentricity_squared"`
}

// LookAnglesResponse is the body of a successful look-angle request.
type LookAnglesResponse struct {
	Azimuth     float64       `json:"azimuth"`
	Elevation   float64       `json:"elevation"`
	RangeM      float64       `json:"range_m"`
	Source      positionJSON  `json:"source"`
	Destination positionJSON  `json:"destination"`
	Ellipsoid   ellipsoidJSON `json:"ellipsoid"`
}

func toEllipsoidJSON(e transform.Ellipsoid) ellipsoidJSON {
	return ellipsoidJSON{
		SemiMajorAxis:     e.SemiMajorAxis,
		InverseFlattening: e.InverseFlattening,
		Flattening:        e.Flattening(),
		EccentricitySq:    e.EccentricitySquared(),
	}
}

func ellipsoidHandler(e transform.Ellipsoid) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, toEllipsoidJSON(e))
	}
}

func lookAnglesHandler(logger *slog.Logger, e transform.Ellipsoid) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := computeLookAngles(r.URL.Query(), e)
		switch {
		case errors.Is(err, ErrDegenerate):
			metrics.ObserveComputation(metrics.OutcomeDegenerate, 0)
			logger.Warn("degenerate look-angle geometry",
				"component", "api",
				"request_id", RequestID(r.Context()),
				"query", r.URL.RawQuery,
			)
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		case err != nil:
			metrics.ObserveComputation(metrics.OutcomeInvalid, 0)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		metrics.ObserveComputation(metrics.OutcomeOK, resp.Elevation)
		writeJSON(w, http.StatusOK, resp)
	}
}

// computeLookAngles parses observer and target from query parameters and runs
// the conversion. Altitudes default to 0; latitudes and longitudes are required.
func computeLookAngles(q url.Values, e transform.Ellipsoid) (LookAnglesResponse, error) {
	src, err := parsePosition(q, "source")
	if err != nil {
		return LookAnglesResponse{}, err
	}
	dst, err := parsePosition(q, "dest")
	if err != nil {
		return LookAnglesResponse{}, err
	}

	la := transform.Compute(src, dst, e)
	if la.Degenerate() {
		return LookAnglesResponse{}, ErrDegenerate
	}

	return LookAnglesResponse{
		Azimuth:     la.AzimuthDeg,
		Elevation:   la.ElevationDeg,
		RangeM:      la.RangeM,
		Source:      positionJSON{Latitude: src.LatDeg, Longitude: src.LonDeg, Altitude: src.AltM},
		Destination: positionJSON{Latitude: dst.LatDeg, Longitude: dst.LonDeg, Altitude: dst.AltM},
		Ellipsoid:   toEllipsoidJSON(e),
	}, nil
}

func parsePosition(q url.Values, prefix string) (transform.GeodeticPosition, error) {
	var (
		pos transform.GeodeticPosition
		err error
	)
	if pos.LatDeg, err = parseParam(q, prefix+"_lat", true); err != nil {
		return pos, err
	}
	if pos.LonDeg, err = parseParam(q, prefix+"_lon", true); err != nil {
		return pos, err
	}
	if pos.AltM, err = parseParam(q, prefix+"_alt", false); err != nil {
		return pos, err
	}
	return pos, nil
}

func parseParam(q url.Values, name string, required bool) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		if required {
			return 0, fmt.Errorf("%s is required", name)
		}
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, raw)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
