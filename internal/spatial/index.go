// Package spatial narrows radius queries with an R-tree of postal code centroids.
package spatial

import (
	"math"

	"postalgeo-api/internal/geo"
	"postalgeo-api/internal/models"

	"github.com/dhconnelly/rtreego"
)

const (
	// pointTolerance is the half-width of the rectangle stored for each centroid.
	pointTolerance = 1e-9
	// boxPadding widens search boxes so centroids sitting exactly on the radius are kept.
	boxPadding = 1e-6
)

type entry struct {
	rect rtreego.Rect
	loc  models.Location
}

func (e *entry) Bounds() rtreego.Rect {
	return e.rect
}

// Index is an immutable R-tree over a set of locations, keyed by (longitude, latitude).
type Index struct {
	tree *rtreego.Rtree
	// outliers have coordinates outside the valid range and cannot be placed in a bounding box
	outliers []models.Location
}

// NewIndex bulk loads locs into a new index.
func NewIndex(locs []models.Location) *Index {
	objs := make([]rtreego.Spatial, 0, len(locs))
	var outliers []models.Location
	for _, loc := range locs {
		if !inRange(loc.Latitude, loc.Longitude) {
			outliers = append(outliers, loc)
			continue
		}
		objs = append(objs, &entry{
			rect: rtreego.Point{loc.Longitude, loc.Latitude}.ToRect(pointTolerance),
			loc:  loc,
		})
	}

	return &Index{
		tree:     rtreego.NewTree(2, 25, 50, objs...),
		outliers: outliers,
	}
}

// Size returns the number of indexed locations.
func (ix *Index) Size() int {
	return ix.tree.Size() + len(ix.outliers)
}

// Candidates returns every location that may be within radiusKm of (lat, lon). The result is a
// superset of the true answer and callers still need to measure each candidate.
//
// ok is false when the search box would wrap over a pole or across the antimeridian. The index
// does not handle either case and the caller has to scan every location instead.
func (ix *Index) Candidates(lat, lon, radiusKm float64) (candidates []models.Location, ok bool) {
	minLat, minLon, maxLat, maxLon, ok := BoundingBox(lat, lon, radiusKm)
	if !ok {
		return nil, false
	}

	box, err := rtreego.NewRect(
		rtreego.Point{minLon, minLat},
		[]float64{maxLon - minLon, maxLat - minLat},
	)
	if err != nil {
		return nil, false
	}

	hits := ix.tree.SearchIntersect(box)
	candidates = make([]models.Location, 0, len(hits)+len(ix.outliers))
	for _, hit := range hits {
		candidates = append(candidates, hit.(*entry).loc)
	}
	candidates = append(candidates, ix.outliers...)
	return candidates, true
}

// BoundingBox returns the latitude/longitude box that contains every point within radiusKm of
// (lat, lon) on the sphere used by geo.Haversine.
func BoundingBox(lat, lon, radiusKm float64) (minLat, minLon, maxLat, maxLon float64, ok bool) {
	if radiusKm < 0 || math.IsNaN(radiusKm) || !inRange(lat, lon) {
		return 0, 0, 0, 0, false
	}

	angular := radiusKm / geo.EarthRadiusKm
	dLat := angular * 180 / math.Pi

	minLat = lat - dLat - boxPadding
	maxLat = lat + dLat + boxPadding
	if minLat <= -90 || maxLat >= 90 {
		return 0, 0, 0, 0, false
	}

	dLon := math.Asin(math.Sin(angular)/math.Cos(lat*math.Pi/180)) * 180 / math.Pi
	minLon = lon - dLon - boxPadding
	maxLon = lon + dLon + boxPadding
	if minLon < -180 || maxLon > 180 {
		return 0, 0, 0, 0, false
	}

	return minLat, minLon, maxLat, maxLon, true
}

func inRange(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
