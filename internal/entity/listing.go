package entity

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Listing is a service provider sourced from the third-party places API.
// Listings are never persisted.
type Listing struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	Rating         float64  `json:"rating"`
	ReviewCount    int      `json:"review_count"`
	OpenNow        bool     `json:"open_now"`
	Location       GeoPoint `json:"location"`
	Types          []string `json:"types"`
	PriceLevel     *int     `json:"price_level,omitempty"`
	PhotoReference string   `json:"photo_reference,omitempty"`
	Category       string   `json:"category"`
}
