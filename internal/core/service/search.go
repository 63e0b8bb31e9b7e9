package service

import (
	"context"
	"strconv"
	"time"

	"github.com/adiallo/orderflow/internal/core/domain"
	"github.com/adiallo/orderflow/internal/core/port"
	"github.com/govalues/decimal"
)

const defaultSortField = "createdAt"

func (s *Service) Search(ctx context.Context, mode domain.SearchMode, req port.SearchRequest) (*domain.Page, error) {
	query := buildSearchQuery(mode, req)
	return s.repo.SearchOrders(ctx, query)
}

// PricesRange fetches the full filtered set projected to totalAmount and
// derives its bounds. An empty matching set yields [0, 0].
func (s *Service) PricesRange(ctx context.Context, req port.SearchRequest) ([2]decimal.Decimal, error) {
	query := buildSearchQuery(domain.SearchModePricesRange, req)
	page, err := s.repo.SearchOrders(ctx, query)
	if err != nil {
		return [2]decimal.Decimal{}, err
	}
	return domain.MinMaxTotal(page.Results), nil
}

// buildSearchQuery translates the flat query-string-shaped request into the
// structured descriptor the storage layer executes. In pricesRange mode the
// limit is intentionally not parsed: the whole filtered set is fetched so
// the caller can derive min/max.
func buildSearchQuery(mode domain.SearchMode, req port.SearchRequest) *domain.SearchQuery {
	normal := mode != domain.SearchModePricesRange

	query := &domain.SearchQuery{
		Mode:          mode,
		StatusID:      req.Status,
		LocalStatusID: req.LocalStatus,
		Extra:         req.Extra,
		SortBy:        req.SortBy,
		Desc:          req.Order != "asc",
		Sorted:        normal,
	}
	if query.SortBy == "" {
		query.SortBy = defaultSortField
	}

	if req.Search != "" {
		switch mode {
		case domain.SearchModeFull:
			query.Text = req.Search
		case domain.SearchModePartial:
			query.Text = req.Search
			query.TextFields = req.SearchInFields
		}
	}

	if normal {
		if limit, err := strconv.Atoi(req.Limit); err == nil && limit > 0 {
			query.Limit = limit
			query.Paginated = true
		}
		if offset, err := strconv.Atoi(req.Offset); err == nil && offset > 0 {
			query.Offset = offset
		}

		// the price-range clause only applies outside pricesRange mode
		if len(req.Price) == 2 {
			from := domain.NormalizeAmount(req.Price[0])
			to := domain.NormalizeAmount(req.Price[1])
			query.PriceFrom = &from
			query.PriceTo = &to
		}
	}

	if len(req.Dates) == 2 {
		if from, ok := parseDate(req.Dates[0]); ok {
			query.DateFrom = &from
		}
		if to, ok := parseDate(req.Dates[1]); ok {
			query.DateTo = &to
		}
	}

	return query
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
