package repository

import (
	"testing"
	"time"

	"github.com/adiallo/orderflow/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSearchColumn(t *testing.T) {
	tests := []struct {
		name  string
		field string
		exp   string
		ok    bool
	}{
		{name: "scalar", field: "totalAmount", exp: "total_amount", ok: true},
		{name: "status id", field: "status.id", exp: "status_id", ok: true},
		{
			name:  "document field",
			field: "customerData.firstName",
			exp:   "customer_data->>'firstName'",
			ok:    true,
		},
		{
			name:  "nested document field",
			field: "shipping.address.phone",
			exp:   "shipping->'address'->>'phone'",
			ok:    true,
		},
		{name: "unknown scalar", field: "password", ok: false},
		{name: "unknown document", field: "secrets.key", ok: false},
		// request-supplied names never reach the SQL text unvalidated
		{name: "injection attempt", field: "customerData.a' OR '1'='1", ok: false},
		{name: "empty part", field: "customerData.", ok: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			column, ok := searchColumn(test.field)
			assert.Equal(t, test.ok, ok)
			if test.ok {
				assert.Equal(t, test.exp, column)
			}
		})
	}
}

func TestSortColumn_FallsBack(t *testing.T) {
	assert.Equal(t, "created_at", sortColumn("createdAt"))
	assert.Equal(t, "total_amount", sortColumn("totalAmount"))
	assert.Equal(t, "created_at", sortColumn("no; drop table orders"))
}

func TestBuildFilter_FullText(t *testing.T) {
	query := &domain.SearchQuery{
		Mode: domain.SearchModeFull,
		Text: "cahier",
	}

	sql, args, err := buildFilter(query).ToSql()
	assert.NoError(t, err)
	assert.Contains(t, sql, "search_text @@ plainto_tsquery('simple', ?)")
	assert.Contains(t, args, "cahier")
}

func TestBuildFilter_PartialText(t *testing.T) {
	query := &domain.SearchQuery{
		Mode:       domain.SearchModePartial,
		Text:       "awa",
		TextFields: []string{"customerData.firstName", "bogus field", "customerData.lastName"},
	}

	sql, args, err := buildFilter(query).ToSql()
	assert.NoError(t, err)
	assert.Contains(t, sql, "customer_data->>'firstName' ILIKE ?")
	assert.Contains(t, sql, "customer_data->>'lastName' ILIKE ?")
	assert.NotContains(t, sql, "bogus")
	assert.Contains(t, args, "%awa%")
}

func TestBuildFilter_Clauses(t *testing.T) {
	from := decimal.MustParse("10")
	to := decimal.MustParse("50")
	dateFrom := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	query := &domain.SearchQuery{
		Mode:          domain.SearchModeFull,
		PriceFrom:     &from,
		PriceTo:       &to,
		StatusID:      domain.StatusProcessing,
		LocalStatusID: "preparing",
		DateFrom:      &dateFrom,
		Extra:         map[string]string{"customerData.phone": "770000000", "nope;": "x"},
	}

	sql, args, err := buildFilter(query).ToSql()
	assert.NoError(t, err)
	assert.Contains(t, sql, "total_amount >= ?")
	assert.Contains(t, sql, "total_amount <= ?")
	assert.Contains(t, sql, "status_id = ?")
	assert.Contains(t, sql, "local_status_id = ?")
	assert.Contains(t, sql, "created_at >= ?")
	assert.Contains(t, sql, "customer_data->>'phone' = ?")
	assert.NotContains(t, sql, "nope")
	assert.Contains(t, args, "770000000")
}

func TestPageCursors(t *testing.T) {
	tests := []struct {
		name        string
		count       int
		limit       int
		offset      int
		expNext     string
		expPrevious string
	}{
		{name: "first page of many", count: 100, limit: 20, offset: 0, expNext: "offset=20"},
		{
			name: "middle page", count: 100, limit: 20, offset: 40,
			expNext: "offset=60", expPrevious: "offset=20",
		},
		{name: "last page", count: 100, limit: 20, offset: 80, expPrevious: "offset=60"},
		{name: "single page", count: 10, limit: 20, offset: 0},
		{
			name: "offset smaller than limit clamps to zero", count: 100, limit: 20, offset: 5,
			expNext: "offset=25", expPrevious: "offset=0",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			next, previous := pageCursors(test.count, test.limit, test.offset)
			assert.Equal(t, test.expNext, next)
			assert.Equal(t, test.expPrevious, previous)
		})
	}
}

func TestBuildFilter_EmptyQueryMatchesAll(t *testing.T) {
	sql, args, err := buildFilter(&domain.SearchQuery{Mode: domain.SearchModeFull}).ToSql()
	assert.NoError(t, err)
	assert.Equal(t, "(TRUE)", sql)
	assert.Empty(t, args)
}

func TestSearchProjection(t *testing.T) {
	for _, mode := range []domain.SearchMode{domain.SearchModeFull, domain.SearchModePartial} {
		columns := searchProjection(mode)
		assert.Equal(t, searchColumns, columns)
		// listings stay lite: the heavy documents never join the projection
		assert.NotContains(t, columns, "contents")
		assert.NotContains(t, columns, "cart_summary")
	}

	assert.Equal(t, []string{"total_amount"}, searchProjection(domain.SearchModePricesRange))
}
