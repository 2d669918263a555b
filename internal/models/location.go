package models

// Location represents a single postal-code area: the source row identifier, its country and
// forward sortation code, the communities it covers and the coordinates of its centroid.
type Location struct {
	ID         string  `json:"id"`
	Country    string  `json:"country"`
	PostalCode string  `json:"postal_code"`
	City       string  `json:"city"`
	Province   string  `json:"province"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// Neighbor pairs a location with its distance from the reference location of a radius query.
// It only lives for the duration of a single query result.
type Neighbor struct {
	Location
	DistanceKm float64 `json:"distance_km"`
}
