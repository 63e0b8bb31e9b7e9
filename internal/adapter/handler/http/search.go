package http

import (
	"time"

	"github.com/adiallo/orderflow/internal/core/domain"
	"github.com/adiallo/orderflow/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type SearchHandler struct {
	Handler
	service port.Service
}

func NewSearchHandler(service port.Service, logger *zap.Logger) (*SearchHandler, error) {
	return &SearchHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

// knownSearchParams are consumed by the builder itself, everything else in
// the query string is treated as a pass-through equality filter.
var knownSearchParams = map[string]struct{}{
	"order": {}, "sortBy": {}, "limit": {}, "offset": {},
	"search": {}, "price": {}, "dates": {},
	"status": {}, "localstatus": {}, "localStatus": {}, "searchInFields": {},
}

func searchRequestFromQuery(ctx *gin.Context) port.SearchRequest {
	// historical clients spell the filter all-lowercase
	localStatus := ctx.Query("localstatus")
	if localStatus == "" {
		localStatus = ctx.Query("localStatus")
	}

	req := port.SearchRequest{
		Order:          ctx.Query("order"),
		SortBy:         ctx.Query("sortBy"),
		Limit:          ctx.Query("limit"),
		Offset:         ctx.Query("offset"),
		Search:         ctx.Query("search"),
		Price:          ctx.QueryArray("price"),
		Dates:          ctx.QueryArray("dates"),
		Status:         ctx.Query("status"),
		LocalStatus:    localStatus,
		SearchInFields: ctx.QueryArray("searchInFields"),
	}

	for key, values := range ctx.Request.URL.Query() {
		if _, known := knownSearchParams[key]; known || len(values) == 0 {
			continue
		}
		if req.Extra == nil {
			req.Extra = make(map[string]string)
		}
		req.Extra[key] = values[0]
	}
	return req
}

// searchResultResponse is the lite listing shape: search pages never carry
// the contents document or the cart summary.
type searchResultResponse struct {
	ID           string                 `json:"id"`
	User         string                 `json:"user"`
	Type         domain.OrderType       `json:"type"`
	CustomerData domain.Customer        `json:"customerData"`
	Shipping     domain.Shipping        `json:"shipping"`
	TotalAmount  decimal.Decimal        `json:"totalAmount"`
	AmountPaid   decimal.Decimal        `json:"amountPaid"`
	Payment      []domain.PaymentRecord `json:"payment"`
	Status       domain.StatusValue     `json:"status"`
	LocalStatus  domain.StatusValue     `json:"localStatus"`
	Count        int                    `json:"count"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

func newSearchResultResponse(o *domain.Order) searchResultResponse {
	return searchResultResponse{
		ID:           o.ID,
		User:         o.UserID,
		Type:         o.Type,
		CustomerData: o.CustomerData,
		Shipping:     o.Shipping,
		TotalAmount:  o.TotalAmount,
		AmountPaid:   o.AmountPaid,
		Payment:      o.Payments,
		Status:       o.Status,
		LocalStatus:  o.LocalStatus,
		Count:        o.Count,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

type pageResponse struct {
	Count    int                    `json:"count"`
	Next     any                    `json:"next"`
	Previous any                    `json:"previous"`
	Results  []searchResultResponse `json:"results"`
}

// cursorOrFalse keeps the wire contract of the pagination fields: a cursor
// string when a neighbor page exists, the JSON literal false otherwise.
func cursorOrFalse(cursor string) any {
	if cursor == "" {
		return false
	}
	return cursor
}

func newPageResponse(page *domain.Page) pageResponse {
	results := make([]searchResultResponse, 0, len(page.Results))
	for _, o := range page.Results {
		results = append(results, newSearchResultResponse(o))
	}
	return pageResponse{
		Count:    page.Count,
		Next:     cursorOrFalse(page.Next),
		Previous: cursorOrFalse(page.Previous),
		Results:  results,
	}
}

func (sh *SearchHandler) search(ctx *gin.Context, mode domain.SearchMode) {
	page, err := sh.service.Search(ctx, mode, searchRequestFromQuery(ctx))
	if err != nil {
		sh.handleError(ctx, err)
		return
	}
	sh.handleSuccess(ctx, newPageResponse(page))
}

func (sh *SearchHandler) Search(ctx *gin.Context) {
	sh.search(ctx, domain.SearchModeFull)
}

func (sh *SearchHandler) SearchPartial(ctx *gin.Context) {
	sh.search(ctx, domain.SearchModePartial)
}

type pricesRangeResponse struct {
	PricesRange [2]decimal.Decimal `json:"pricesRange"`
}

func (sh *SearchHandler) PricesRange(ctx *gin.Context) {
	bounds, err := sh.service.PricesRange(ctx, searchRequestFromQuery(ctx))
	if err != nil {
		sh.handleError(ctx, err)
		return
	}
	sh.handleSuccess(ctx, pricesRangeResponse{PricesRange: bounds})
}
