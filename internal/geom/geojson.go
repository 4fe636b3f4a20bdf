package geom

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb/geojson"
)

// ParseGeoJSON reads the line geometries of a GeoJSON document: a
// FeatureCollection, a Feature or a bare geometry.
func ParseGeoJSON(data []byte) (Data, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Data{}, fmt.Errorf("geojson: %w", err)
	}
	var d Data
	switch head.Type {
	case "":
		return Data{}, errors.New("invalid geojson: missing type")
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return Data{}, fmt.Errorf("geojson: %w", err)
		}
		for _, f := range fc.Features {
			d.addGeometry(f.Geometry)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return Data{}, fmt.Errorf("geojson: %w", err)
		}
		d.addGeometry(f.Geometry)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return Data{}, fmt.Errorf("geojson: %w", err)
		}
		d.addGeometry(g.Geometry())
	}
	if len(d.Lines) == 0 {
		return Data{}, errors.New("geojson: no line geometries found")
	}
	return d, nil
}
