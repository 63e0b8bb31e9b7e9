package domain

import (
	"time"

	"github.com/govalues/decimal"
)

// SearchMode selects how the free-text part of a query is interpreted.
type SearchMode string

const (
	// SearchModeFull matches the text against a full-text index.
	SearchModeFull SearchMode = "full"
	// SearchModePartial matches the text as a case-insensitive substring
	// over the requested fields.
	SearchModePartial SearchMode = "partial"
	// SearchModePricesRange skips text search, sort and pagination and
	// projects the filtered set to totalAmount only.
	SearchModePricesRange SearchMode = "pricesRange"
)

// SearchQuery is the structured filter + sort + pagination descriptor the
// storage layer executes. It is built from a flat request by the search
// builder and carries no storage-specific syntax.
type SearchQuery struct {
	Mode SearchMode

	Text       string
	TextFields []string

	PriceFrom *decimal.Decimal
	PriceTo   *decimal.Decimal
	DateFrom  *time.Time
	DateTo    *time.Time

	StatusID      string
	LocalStatusID string

	// Extra carries pass-through equality filters, merged last.
	Extra map[string]string

	SortBy string
	Desc   bool
	Sorted bool

	Limit     int
	Offset    int
	Paginated bool
}

// UserListFilter narrows a customer's own order listing.
type UserListFilter struct {
	Type     OrderType
	StatusID string
	Desc     bool
}

// Page is the pagination result shape. Next and Previous are either empty or
// an "offset=<n>" cursor, never an opaque token.
type Page struct {
	Count    int
	Next     string
	Previous string
	Results  []*Order
}

// MinMaxTotal scans totalAmount over a result set and returns its bounds.
// An empty set yields [0, 0].
func MinMaxTotal(results []*Order) [2]decimal.Decimal {
	if len(results) == 0 {
		return [2]decimal.Decimal{decimal.Zero, decimal.Zero}
	}
	min, max := results[0].TotalAmount, results[0].TotalAmount
	for _, o := range results[1:] {
		v := o.TotalAmount
		if v.Cmp(min) < 0 {
			min = v
		}
		if v.Cmp(max) > 0 {
			max = v
		}
	}
	return [2]decimal.Decimal{min, max}
}
