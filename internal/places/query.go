package places

import (
	"fmt"
	"strings"
)

const defaultGoogleType = "car_repair"

var googleTypes = map[string]string{
	"autoopravna":  "car_repair",
	"vymena-oleje": "car_repair",
	"myti-auta":    "car_wash",
	"pneuservis":   "car_repair",
	"diagnostika":  "car_repair",
	"detailing":    "car_wash",
	"klimatizace":  "car_repair",
	"brzdy":        "car_repair",
	"stk":          "car_inspection",
	"ek":           "car_inspection",
	"odtah":        "car_rental",
}

var queryTexts = map[string]string{
	"stk":        "STK technická kontrola",
	"ek":         "měření emisí",
	"myti-auta":  "mytí auta car wash",
	"pneuservis": "pneuservis pneumatiky",
	"detailing":  "auto detailing",
}

// Query selects which listings to fetch.
type Query struct {
	Category string
	Location string
	Radius   int
}

// Normalize trims the query and lower-cases the category slug.
func (q Query) Normalize() Query {
	q.Category = strings.ToLower(strings.TrimSpace(q.Category))
	q.Location = strings.TrimSpace(q.Location)
	return q
}

// WithDefaults normalizes q and fills an empty location or non-positive radius.
func (q Query) WithDefaults(location string, radius int) Query {
	q = q.Normalize()
	if q.Location == "" {
		q.Location = location
	}
	if q.Radius <= 0 {
		q.Radius = radius
	}
	return q
}

// GoogleType maps a category slug to the upstream place type.
func GoogleType(category string) string {
	if t, ok := googleTypes[category]; ok {
		return t
	}
	return defaultGoogleType
}

// SearchText builds the free-text query sent upstream for a category and location.
func SearchText(category, location string) string {
	text, ok := queryTexts[category]
	if !ok {
		text = fmt.Sprintf("%s autoservis", category)
	}
	if location == "" {
		return text
	}
	return text + " " + location
}
