package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/adiallo/orderflow/internal/adapter/storage"
	"github.com/adiallo/orderflow/internal/core/domain"
	"github.com/adiallo/orderflow/pkg/metrics"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

var orderColumns = []string{
	"id", "user_id", "type", "contents", "shipping", "cart_summary",
	"customer_data", "total_amount", "amount_paid", "payments",
	"status", "status_id", "local_status", "local_status_id",
	"expire_at", "item_count", "created_by", "updated_by",
	"completed_date", "created_at", "updated_at", "version",
}

func (or *Repository) CreateOrder(ctx context.Context, order *domain.Order, events []domain.Event) (*domain.Order, error) {
	doc, err := marshalOrder(order)
	if err != nil {
		return nil, err
	}

	err = pgx.BeginFunc(ctx, or.db, func(tx pgx.Tx) error {
		statement := or.db.QueryBuilder.Insert("orders").
			Columns(append(orderColumns, "search_text")...).
			Values(order.ID, order.UserID, order.Type, doc.contents, doc.shipping,
				doc.cart, doc.customer, order.TotalAmount, order.AmountPaid,
				doc.payments, doc.status, order.Status.ID, doc.localStatus,
				nullable(order.LocalStatus.ID), order.ExpireAt, order.Count,
				order.CreatedBy, order.UpdatedBy, order.CompletedDate,
				order.CreatedAt, order.UpdatedAt, order.Version,
				sq.Expr("to_tsvector('simple', ?)", searchText(order)))

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}

		return insertEvents(ctx, tx, or.db.QueryBuilder, events)
	})
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return order, nil
}

// UpdateOrder is a compare-and-swap on the order's version: a concurrent
// writer that got there first leaves no matching row and the caller gets
// domain.ErrConflictingData instead of a silently lost update.
func (or *Repository) UpdateOrder(ctx context.Context, order *domain.Order, events []domain.Event) (*domain.Order, error) {
	doc, err := marshalOrder(order)
	if err != nil {
		return nil, err
	}

	err = pgx.BeginFunc(ctx, or.db, func(tx pgx.Tx) error {
		statement := or.db.QueryBuilder.Update("orders").
			Set("amount_paid", order.AmountPaid).
			Set("payments", doc.payments).
			Set("status", doc.status).
			Set("status_id", order.Status.ID).
			Set("local_status", doc.localStatus).
			Set("local_status_id", nullable(order.LocalStatus.ID)).
			Set("updated_by", order.UpdatedBy).
			Set("completed_date", order.CompletedDate).
			Set("updated_at", order.UpdatedAt).
			Set("version", order.Version+1).
			Where(sq.Eq{"id": order.ID, "version": order.Version})

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			metrics.SaveConflicts.Inc()
			return domain.ErrConflictingData
		}

		return insertEvents(ctx, tx, or.db.QueryBuilder, events)
	})
	if err != nil {
		return nil, err
	}

	order.Version++
	return order, nil
}

func insertEvents(ctx context.Context, tx pgx.Tx, qb *sq.StatementBuilderType, events []domain.Event) error {
	for _, event := range events {
		statement := qb.Insert("outbox").
			Columns("event_id", "kind", "order_id", "payload", "created_at").
			Values(event.ID, event.Kind, event.OrderID, event.Payload, event.CreatedAt)

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}
		metrics.EventsRecorded.WithLabelValues(string(event.Kind)).Inc()
	}
	return nil
}

func (or *Repository) ReadOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(or.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return order, nil
}

func (or *Repository) ListOrdersByUser(ctx context.Context, userID string, filter domain.UserListFilter) ([]*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"user_id": userID})

	if filter.Type != "" {
		statement = statement.Where(sq.Eq{"type": filter.Type})
	}
	if filter.StatusID != "" {
		statement = statement.Where(sq.Eq{"status_id": filter.StatusID})
	}
	if filter.Desc {
		statement = statement.OrderBy("created_at DESC")
	} else {
		statement = statement.OrderBy("created_at ASC")
	}

	return or.queryOrders(ctx, statement)
}

func (or *Repository) ListOrdersByStatus(ctx context.Context, statusID string) ([]*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders")

	if statusID != "" {
		statement = statement.Where(sq.Eq{"status_id": statusID})
	}

	return or.queryOrders(ctx, statement)
}

func (or *Repository) queryOrders(ctx context.Context, statement sq.SelectBuilder) ([]*domain.Order, error) {
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
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}

	return list, rows.Err()
}

func (or *Repository) ReadProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	statement := or.db.QueryBuilder.
		Select("id", "first_name", "last_name", "phone", "email").
		From("customers").
		Where(sq.Eq{"id": userID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	profile := domain.Profile{}
	err = or.db.QueryRow(ctx, sql, args...).Scan(
		&profile.ID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Phone,
		&profile.Email,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &profile, nil
}

// FetchPendingEvents feeds the outbox dispatcher.
func (or *Repository) FetchPendingEvents(ctx context.Context, limit int) ([]domain.OutboxRecord, error) {
	statement := or.db.QueryBuilder.
		Select("id", "event_id", "kind", "order_id", "payload", "created_at", "sent_at").
		From("outbox").
		Where("sent_at IS NULL").
		OrderBy("id").
		Limit(uint64(limit))

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.OutboxRecord
	for rows.Next() {
		var rec domain.OutboxRecord
		if err := rows.Scan(&rec.ID, &rec.Event.ID, &rec.Event.Kind, &rec.Event.OrderID,
			&rec.Event.Payload, &rec.Event.CreatedAt, &rec.SentAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (or *Repository) MarkEventSent(ctx context.Context, recordID int64) error {
	statement := or.db.QueryBuilder.Update("outbox").
		Set("sent_at", time.Now()).
		Where(sq.Eq{"id": recordID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	_, err = or.db.Exec(ctx, sql, args...)
	return err
}

// --- row mapping ---

type orderDoc struct {
	contents    []byte
	shipping    []byte
	cart        []byte
	customer    []byte
	payments    []byte
	status      []byte
	localStatus []byte
}

func marshalOrder(order *domain.Order) (*orderDoc, error) {
	doc := &orderDoc{}
	fields := []struct {
		dst *[]byte
		src any
	}{
		{&doc.contents, order.Contents},
		{&doc.shipping, order.Shipping},
		{&doc.cart, order.Cart},
		{&doc.customer, order.CustomerData},
		{&doc.payments, order.Payments},
		{&doc.status, order.Status},
	}
	for _, f := range fields {
		data, err := json.Marshal(f.src)
		if err != nil {
			return nil, fmt.Errorf("marshal order %s: %w", order.ID, err)
		}
		*f.dst = data
	}
	if order.LocalStatus.ID != "" {
		data, err := json.Marshal(order.LocalStatus)
		if err != nil {
			return nil, fmt.Errorf("marshal order %s: %w", order.ID, err)
		}
		doc.localStatus = data
	}
	return doc, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	order := domain.Order{}
	doc := orderDoc{}
	var localStatusID *string

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.Type,
		&doc.contents,
		&doc.shipping,
		&doc.cart,
		&doc.customer,
		&order.TotalAmount,
		&order.AmountPaid,
		&doc.payments,
		&doc.status,
		&order.Status.ID,
		&doc.localStatus,
		&localStatusID,
		&order.ExpireAt,
		&order.Count,
		&order.CreatedBy,
		&order.UpdatedBy,
		&order.CompletedDate,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.Version,
	)
	if err != nil {
		return nil, err
	}

	fields := []struct {
		src []byte
		dst any
	}{
		{doc.contents, &order.Contents},
		{doc.shipping, &order.Shipping},
		{doc.cart, &order.Cart},
		{doc.customer, &order.CustomerData},
		{doc.payments, &order.Payments},
		{doc.status, &order.Status},
	}
	for _, f := range fields {
		if len(f.src) == 0 {
			continue
		}
		if err := json.Unmarshal(f.src, f.dst); err != nil {
			return nil, fmt.Errorf("unmarshal order %s: %w", order.ID, err)
		}
	}
	if len(doc.localStatus) > 0 {
		if err := json.Unmarshal(doc.localStatus, &order.LocalStatus); err != nil {
			return nil, fmt.Errorf("unmarshal order %s: %w", order.ID, err)
		}
	}

	return &order, nil
}

// searchText feeds the full-text index with the fields an operator actually
// searches by.
func searchText(order *domain.Order) string {
	parts := []string{
		order.ID,
		order.CustomerData.FirstName,
		order.CustomerData.LastName,
		order.CustomerData.Email,
		order.CustomerData.Phone,
		string(order.Type),
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
