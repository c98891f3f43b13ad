package search

import (
	"context"

	"github.com/vipuldholariya1991dev-droid/Boiler-Data-Tool/pkg/catalog"
)

// Backend discovers candidate documents for a query. Implementations
// return at most maxResults candidates; an empty slice is a valid
// no-hits response.
type Backend interface {
	Search(ctx context.Context, query string, maxResults int) ([]catalog.Candidate, error)
}
