package repository

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/adiallo/orderflow/internal/adapter/storage"
	"github.com/adiallo/orderflow/internal/core/domain"
)

// CartStore resolves the requester's cart and list aggregates and removes
// them once their ownership transferred into an order snapshot.
type CartStore struct {
	db *storage.DB
}

func NewCartStore(db *storage.DB) (*CartStore, error) {
	return &CartStore{db: db}, nil
}

func (cs *CartStore) GetContent(ctx context.Context, userID string) (*domain.CartContent, error) {
	statement := cs.db.QueryBuilder.
		Select("id", "kind", "payload").
		From("carts").
		Where(sq.Eq{"user_id": userID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := cs.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	content := domain.CartContent{}
	for rows.Next() {
		var (
			id      string
			kind    domain.SourceKind
			payload []byte
		)
		if err := rows.Scan(&id, &kind, &payload); err != nil {
			return nil, err
		}

		source := domain.SourceCart{}
		if err := json.Unmarshal(payload, &source); err != nil {
			return nil, fmt.Errorf("unmarshal cart %s: %w", id, err)
		}
		source.ID = id
		source.Kind = kind

		switch kind {
		case domain.SourceKindList:
			content.List = &source
		default:
			content.Cart = &source
		}
	}

	return &content, rows.Err()
}

func (cs *CartStore) Remove(ctx context.Context, source *domain.SourceCart) error {
	statement := cs.db.QueryBuilder.Delete("carts").Where(sq.Eq{"id": source.ID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	tag, err := cs.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}
