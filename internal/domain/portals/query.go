package portals

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CollectionQuery holds the filter, pagination and sorting options for
// children listings.
type CollectionQuery struct {
	MaxResources *int64 `validate:"omitempty,min=0"`
	Limit        int    `validate:"min=0,max=10000"`
	Offset       int    `validate:"min=0"`
	SortBy       string `validate:"omitempty,oneof=title name count_total_resources"`
	SortOrder    string `validate:"omitempty,oneof=asc desc"`
}

// NewCollectionQuery creates a CollectionQuery with default values
func NewCollectionQuery() *CollectionQuery {
	return &CollectionQuery{
		Limit:     0,
		Offset:    0,
		SortBy:    "",
		SortOrder: "asc",
	}
}

// Validate checks that all fields in CollectionQuery are valid
func (q *CollectionQuery) Validate() error {
	validate := validator.New()

	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed for CollectionQuery: %w", err)
	}

	return nil
}

// Admits reports whether a collection passes the MaxResources threshold.
// An unset threshold admits everything.
func (q *CollectionQuery) Admits(c *Collection) bool {
	if q.MaxResources == nil {
		return true
	}
	return c.CountTotalResources <= *q.MaxResources
}
