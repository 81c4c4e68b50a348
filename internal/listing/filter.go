package listing

import (
	"strings"

	"github.com/fixpoints/fixpoints-api/internal/entity"
)

// Filter keeps the listings that satisfy every active criterion: the service
// type keywords, the free-text query and the minimum rating.
func Filter(listings []entity.Listing, c Criteria) []entity.Listing {
	query := strings.ToLower(strings.TrimSpace(c.Query))

	var keywords []string
	if c.ServiceType != nil {
		keywords = make([]string, 0, len(c.ServiceType.Keywords))
		for _, kw := range c.ServiceType.Keywords {
			keywords = append(keywords, strings.ToLower(kw))
		}
	}

	out := make([]entity.Listing, 0, len(listings))
	for _, l := range listings {
		name := strings.ToLower(l.Name)
		if len(keywords) > 0 && !matchesKeywords(name, l.Types, keywords) {
			continue
		}
		if query != "" && !strings.Contains(name, query) {
			continue
		}
		if c.MinRating > 0 && l.Rating < c.MinRating {
			continue
		}
		out = append(out, l)
	}
	return out
}

func matchesKeywords(name string, types []string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
		for _, t := range types {
			if strings.Contains(strings.ToLower(t), kw) {
				return true
			}
		}
	}
	return false
}
