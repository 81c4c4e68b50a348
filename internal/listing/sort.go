package listing

import (
	"sort"
	"strings"

	"github.com/fixpoints/fixpoints-api/internal/entity"
)

// SortKey selects the ordering of a result set.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortRating    SortKey = "rating"
	SortReviews   SortKey = "reviews"
	SortDistance  SortKey = "distance"
)

// ParseSortKey maps user input to a sort key; unknown values mean relevance.
func ParseSortKey(raw string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(raw))) {
	case SortRating:
		return SortRating
	case SortReviews:
		return SortReviews
	case SortDistance:
		return SortDistance
	default:
		return SortRelevance
	}
}

// Sort returns a stably ordered copy of listings. Distance ordering needs an
// origin; without one the input order is kept.
func Sort(listings []entity.Listing, key SortKey, origin *entity.GeoPoint) []entity.Listing {
	out := make([]entity.Listing, len(listings))
	copy(out, listings)

	switch key {
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case SortReviews:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ReviewCount > out[j].ReviewCount })
	case SortDistance:
		if origin == nil {
			return out
		}
		byDistance := make([]rankedListing, len(out))
		for i, l := range out {
			byDistance[i] = rankedListing{listing: l, distance: Distance(*origin, l.Location)}
		}
		sort.SliceStable(byDistance, func(i, j int) bool { return byDistance[i].distance < byDistance[j].distance })
		for i := range byDistance {
			out[i] = byDistance[i].listing
		}
	default:
		sort.SliceStable(out, func(i, j int) bool { return relevance(out[i]) > relevance(out[j]) })
	}
	return out
}

type rankedListing struct {
	listing  entity.Listing
	distance float64
}

func relevance(l entity.Listing) float64 {
	return l.Rating * float64(l.ReviewCount)
}
