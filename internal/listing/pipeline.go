package listing

import (
	"context"

	"github.com/fixpoints/fixpoints-api/internal/entity"
)

// Criteria are the user-chosen parameters of a search.
type Criteria struct {
	ServiceType *ServiceType
	Query       string
	MinRating   float64
	Sort        SortKey
	Origin      *entity.GeoPoint
	Page        int
	PageSize    int
}

// FetchFunc loads the raw listings for a search.
type FetchFunc func(ctx context.Context) ([]entity.Listing, error)

// Result is the outcome of Run. On fetch failure Page is empty and Err is set.
type Result struct {
	Page    Page[entity.Listing]
	Matched int
	Err     error
}

// Run fetches listings, then filters, sorts and paginates them.
func Run(ctx context.Context, fetch FetchFunc, c Criteria) Result {
	listings, err := fetch(ctx)
	if err != nil {
		return Result{Page: Paginate([]entity.Listing{}, c.Page, c.PageSize), Err: err}
	}

	filtered := Filter(listings, c)
	sorted := Sort(filtered, c.Sort, c.Origin)
	return Result{Page: Paginate(sorted, c.Page, c.PageSize), Matched: len(sorted)}
}
