package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/adiallo/orderflow/internal/core/domain"
	"github.com/adiallo/orderflow/internal/core/port"
	"github.com/adiallo/orderflow/internal/core/port/mock"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
)

// captureQuery wires SearchOrders to record the descriptor the builder
// produced and return a fixed page.
func captureQuery(repo *mock.MockRepository, captured **domain.SearchQuery, page *domain.Page) {
	repo.EXPECT().SearchOrders(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query *domain.SearchQuery) (*domain.Page, error) {
			*captured = query
			return page, nil
		})
}

func TestService_Search_FullMode(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	var captured *domain.SearchQuery
	s := newTestService(t, mockCtrl, func(repo *mock.MockRepository, carts *mock.MockCartProvider, codes *mock.MockCodeGenerator) {
		captureQuery(repo, &captured, &domain.Page{})
	})

	_, err := s.Search(context.Background(), domain.SearchModeFull, port.SearchRequest{
		Search: "cahier dakar",
		SortBy: "totalAmount",
		Order:  "asc",
		Limit:  "20",
		Offset: "40",
		Price:  []string{"10", "50"},
		Dates:  []string{"2026-01-01", "2026-02-01"},
		Status: domain.StatusProcessing,
		Extra:  map[string]string{"customerData.phone": "770000000"},
	})
	assert.NoError(t, err)

	assert.Equal(t, domain.SearchModeFull, captured.Mode)
	assert.Equal(t, "cahier dakar", captured.Text)
	assert.Empty(t, captured.TextFields)
	assert.Equal(t, "totalAmount", captured.SortBy)
	assert.False(t, captured.Desc)
	assert.True(t, captured.Sorted)
	assert.True(t, captured.Paginated)
	assert.Equal(t, 20, captured.Limit)
	assert.Equal(t, 40, captured.Offset)
	assert.Equal(t, decimal.MustParse("10"), *captured.PriceFrom)
	assert.Equal(t, decimal.MustParse("50"), *captured.PriceTo)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *captured.DateFrom)
	assert.Equal(t, domain.StatusProcessing, captured.StatusID)
	assert.Equal(t, "770000000", captured.Extra["customerData.phone"])
}

func TestService_Search_Defaults(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	var captured *domain.SearchQuery
	s := newTestService(t, mockCtrl, func(repo *mock.MockRepository, carts *mock.MockCartProvider, codes *mock.MockCodeGenerator) {
		captureQuery(repo, &captured, &domain.Page{})
	})

	_, err := s.Search(context.Background(), domain.SearchModeFull, port.SearchRequest{})
	assert.NoError(t, err)

	// newest first over createdAt, no pagination unless asked for
	assert.Equal(t, "createdAt", captured.SortBy)
	assert.True(t, captured.Desc)
	assert.False(t, captured.Paginated)
	assert.Nil(t, captured.PriceFrom)
}

func TestService_Search_PartialMode(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	var captured *domain.SearchQuery
	s := newTestService(t, mockCtrl, func(repo *mock.MockRepository, carts *mock.MockCartProvider, codes *mock.MockCodeGenerator) {
		captureQuery(repo, &captured, &domain.Page{})
	})

	_, err := s.Search(context.Background(), domain.SearchModePartial, port.SearchRequest{
		Search:         "awa",
		SearchInFields: []string{"customerData.firstName", "customerData.lastName"},
	})
	assert.NoError(t, err)

	assert.Equal(t, domain.SearchModePartial, captured.Mode)
	assert.Equal(t, "awa", captured.Text)
	assert.Equal(t, []string{"customerData.firstName", "customerData.lastName"}, captured.TextFields)
}

func TestService_Search_BadNumbersIgnored(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	var captured *domain.SearchQuery
	s := newTestService(t, mockCtrl, func(repo *mock.MockRepository, carts *mock.MockCartProvider, codes *mock.MockCodeGenerator) {
		captureQuery(repo, &captured, &domain.Page{})
	})

	_, err := s.Search(context.Background(), domain.SearchModeFull, port.SearchRequest{
		Limit:  "banana",
		Offset: "-3",
		Dates:  []string{"not-a-date", "2026-02-01"},
	})
	assert.NoError(t, err)

	assert.False(t, captured.Paginated)
	assert.Equal(t, 0, captured.Offset)
	assert.Nil(t, captured.DateFrom)
	assert.NotNil(t, captured.DateTo)
}

func TestService_PricesRange(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	page := &domain.Page{Results: []*domain.Order{
		{TotalAmount: decimal.MustParse("50")},
		{TotalAmount: decimal.MustParse("10")},
		{TotalAmount: decimal.MustParse("30")},
	}}

	var captured *domain.SearchQuery
	s := newTestService(t, mockCtrl, func(repo *mock.MockRepository, carts *mock.MockCartProvider, codes *mock.MockCodeGenerator) {
		captureQuery(repo, &captured, page)
	})

	bounds, err := s.PricesRange(context.Background(), port.SearchRequest{
		// limit and price range are intentionally not honored in this mode
		Limit: "5",
		Price: []string{"20", "40"},
	})
	assert.NoError(t, err)

	assert.Equal(t, domain.SearchModePricesRange, captured.Mode)
	assert.False(t, captured.Sorted)
	assert.False(t, captured.Paginated)
	assert.Nil(t, captured.PriceFrom)

	assert.Equal(t, decimal.MustParse("10"), bounds[0])
	assert.Equal(t, decimal.MustParse("50"), bounds[1])
}

func TestService_PricesRange_EmptySet(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s := newTestService(t, mockCtrl, func(repo *mock.MockRepository, carts *mock.MockCartProvider, codes *mock.MockCodeGenerator) {
		repo.EXPECT().SearchOrders(gomock.Any(), gomock.Any()).Return(&domain.Page{}, nil)
	})

	bounds, err := s.PricesRange(context.Background(), port.SearchRequest{})
	assert.NoError(t, err)
	assert.Equal(t, [2]decimal.Decimal{decimal.Zero, decimal.Zero}, bounds)
}
