package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/adiallo/orderflow/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/jackc/pgx/v5"
)

// SearchOrders executes a structured search descriptor. The translation to
// SQL lives entirely here; the core builds descriptors, never syntax.
func (or *Repository) SearchOrders(ctx context.Context, query *domain.SearchQuery) (*domain.Page, error) {
	filter := buildFilter(query)

	count, err := or.countOrders(ctx, filter)
	if err != nil {
		return nil, err
	}

	statement := or.db.QueryBuilder.
		Select(searchProjection(query.Mode)...).
		From("orders").
		Where(filter)

	if query.Sorted {
		direction := "ASC"
		if query.Desc {
			direction = "DESC"
		}
		statement = statement.OrderBy(sortColumn(query.SortBy) + " " + direction)
	}

	if query.Paginated {
		statement = statement.Limit(uint64(query.Limit))
		if query.Offset > 0 {
			statement = statement.Offset(uint64(query.Offset))
		}
	}

	var results []*domain.Order
	if query.Mode == domain.SearchModePricesRange {
		results, err = or.queryTotals(ctx, statement)
	} else {
		results, err = or.querySearchResults(ctx, statement)
	}
	if err != nil {
		return nil, err
	}

	page := &domain.Page{
		Count:   count,
		Results: results,
	}
	if query.Paginated {
		page.Next, page.Previous = pageCursors(count, query.Limit, query.Offset)
	}

	return page, nil
}

// pageCursors computes the offset-based neighbor cursors: empty when no
// neighbor page exists.
func pageCursors(count, limit, offset int) (next, previous string) {
	if offset+limit < count {
		next = fmt.Sprintf("offset=%d", offset+limit)
	}
	if offset > 0 {
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		previous = fmt.Sprintf("offset=%d", prev)
	}
	return next, previous
}

// searchColumns is the fixed lite projection for search listings: the heavy
// contents document and the cart summary stay out of result pages.
var searchColumns = []string{
	"id", "user_id", "type", "customer_data", "shipping",
	"total_amount", "amount_paid", "payments", "status", "status_id",
	"local_status", "item_count", "created_at", "updated_at",
}

func searchProjection(mode domain.SearchMode) []string {
	if mode == domain.SearchModePricesRange {
		// totalAmount only, the caller derives min/max
		return []string{"total_amount"}
	}
	return searchColumns
}

func (or *Repository) querySearchResults(ctx context.Context, statement sq.SelectBuilder) ([]*domain.Order, error) {
	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanSearchResult(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}

	return list, rows.Err()
}

func scanSearchResult(row pgx.Row) (*domain.Order, error) {
	order := domain.Order{}
	doc := orderDoc{}

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.Type,
		&doc.customer,
		&doc.shipping,
		&order.TotalAmount,
		&order.AmountPaid,
		&doc.payments,
		&doc.status,
		&order.Status.ID,
		&doc.localStatus,
		&order.Count,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	fields := []struct {
		src []byte
		dst any
	}{
		{doc.customer, &order.CustomerData},
		{doc.shipping, &order.Shipping},
		{doc.payments, &order.Payments},
		{doc.status, &order.Status},
	}
	for _, f := range fields {
		if len(f.src) == 0 {
			continue
		}
		if err := json.Unmarshal(f.src, f.dst); err != nil {
			return nil, fmt.Errorf("unmarshal search result %s: %w", order.ID, err)
		}
	}
	if len(doc.localStatus) > 0 {
		if err := json.Unmarshal(doc.localStatus, &order.LocalStatus); err != nil {
			return nil, fmt.Errorf("unmarshal search result %s: %w", order.ID, err)
		}
	}

	return &order, nil
}

func (or *Repository) countOrders(ctx context.Context, filter sq.And) (int, error) {
	statement := or.db.QueryBuilder.Select("count(*)").From("orders").Where(filter)

	sql, args, err := statement.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := or.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (or *Repository) queryTotals(ctx context.Context, statement sq.SelectBuilder) ([]*domain.Order, error) {
	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		var total decimal.Decimal
		if err := rows.Scan(&total); err != nil {
			return nil, err
		}
		list = append(list, &domain.Order{TotalAmount: total})
	}

	return list, rows.Err()
}

// buildFilter composes the shared filter clauses: text, price range, status,
// localStatus, creation-date range, then pass-through equality filters last.
func buildFilter(query *domain.SearchQuery) sq.And {
	filter := sq.And{sq.Expr("TRUE")}

	if query.Text != "" {
		switch query.Mode {
		case domain.SearchModeFull:
			filter = append(filter, sq.Expr("search_text @@ plainto_tsquery('simple', ?)", query.Text))
		case domain.SearchModePartial:
			or := sq.Or{}
			for _, field := range query.TextFields {
				column, ok := searchColumn(field)
				if !ok {
					continue
				}
				or = append(or, sq.ILike{column: "%" + query.Text + "%"})
			}
			if len(or) > 0 {
				filter = append(filter, or)
			}
		}
	}

	if query.PriceFrom != nil && query.PriceTo != nil {
		filter = append(filter, sq.And{
			sq.GtOrEq{"total_amount": *query.PriceFrom},
			sq.LtOrEq{"total_amount": *query.PriceTo},
		})
	}
	if query.StatusID != "" {
		filter = append(filter, sq.Eq{"status_id": query.StatusID})
	}
	if query.LocalStatusID != "" {
		filter = append(filter, sq.Eq{"local_status_id": query.LocalStatusID})
	}
	if query.DateFrom != nil {
		filter = append(filter, sq.GtOrEq{"created_at": *query.DateFrom})
	}
	if query.DateTo != nil {
		filter = append(filter, sq.LtOrEq{"created_at": *query.DateTo})
	}

	for field, value := range query.Extra {
		column, ok := searchColumn(field)
		if !ok {
			continue
		}
		filter = append(filter, sq.Eq{column: value})
	}

	return filter
}

// scalar columns addressable by their request-facing names
var scalarColumns = map[string]string{
	"id":             "id",
	"user":           "user_id",
	"type":           "type",
	"count":          "item_count",
	"status.id":      "status_id",
	"localStatus.id": "local_status_id",
	"totalAmount":    "total_amount",
	"amountPaid":     "amount_paid",
	"createdAt":      "created_at",
	"updatedAt":      "updated_at",
}

// jsonb document columns addressable by their request-facing prefix
var documentColumns = map[string]string{
	"customerData": "customer_data",
	"shipping":     "shipping",
	"cart":         "cart_summary",
}

// searchColumn maps a request-facing field name ("customerData.firstName")
// onto a SQL expression. Unknown or malformed names are dropped rather than
// interpolated, field names come from the request.
func searchColumn(field string) (string, bool) {
	if column, ok := scalarColumns[field]; ok {
		return column, true
	}

	parts := strings.Split(field, ".")
	if len(parts) < 2 {
		return "", false
	}
	column, ok := documentColumns[parts[0]]
	if !ok {
		return "", false
	}
	for _, part := range parts[1:] {
		if !isIdent(part) {
			return "", false
		}
	}

	expr := column
	for _, part := range parts[1 : len(parts)-1] {
		expr += "->'" + part + "'"
	}
	expr += "->>'" + parts[len(parts)-1] + "'"
	return expr, true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		ok := r == '_' ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9')
		if !ok {
			return false
		}
	}
	return true
}

func sortColumn(field string) string {
	if column, ok := searchColumn(field); ok {
		return column
	}
	return "created_at"
}
