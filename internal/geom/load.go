package geom

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// Extensions lists the file types LoadLines understands.
var Extensions = []string{".geojson", ".json", ".wkt", ".csv", ".kml", ".txt"}

// Supported reports whether path has a loadable extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// LoadLines reads the polylines stored in path, picking the format from
// its extension. .txt files hold WKT or encoded polylines.
func LoadLines(path string) (Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		return ParseGeoJSON(data)
	case ".wkt":
		return ParseWKT(string(data))
	case ".csv":
		return ParseCSV(bytes.NewReader(data))
	case ".kml":
		return ParseKML(data)
	case ".txt":
		return ParseText(string(data))
	default:
		return Data{}, &UnsupportedError{Ext: ext}
	}
}

type UnsupportedError struct {
	Ext string
}

func (e *UnsupportedError) Error() string { return "unsupported file: " + e.Ext }
