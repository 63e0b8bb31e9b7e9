package http

import (
	"net/http"
	"time"

	"github.com/adiallo/orderflow/internal/core/domain"
	"github.com/adiallo/orderflow/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type createOrderRequest struct {
	Type    string              `json:"type"`
	Payment domain.PaymentInput `json:"payment"`
}

type orderResponse struct {
	ID            string                 `json:"id"`
	User          string                 `json:"user"`
	Type          domain.OrderType       `json:"type"`
	Contents      []domain.ContentGroup  `json:"contents"`
	Shipping      domain.Shipping        `json:"shipping"`
	Cart          domain.CartSummary     `json:"cart"`
	CustomerData  domain.Customer        `json:"customerData"`
	TotalAmount   decimal.Decimal        `json:"totalAmount"`
	AmountPaid    decimal.Decimal        `json:"amountPaid"`
	Payment       []domain.PaymentRecord `json:"payment"`
	Status        domain.StatusValue     `json:"status"`
	LocalStatus   domain.StatusValue     `json:"localStatus"`
	ExpireAt      time.Time              `json:"expireAt"`
	Count         int                    `json:"count"`
	CreatedBy     string                 `json:"createdBy"`
	UpdatedBy     string                 `json:"updatedBy,omitempty"`
	CompletedDate *time.Time             `json:"completedDate,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

func newOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:            o.ID,
		User:          o.UserID,
		Type:          o.Type,
		Contents:      o.Contents,
		Shipping:      o.Shipping,
		Cart:          o.Cart,
		CustomerData:  o.CustomerData,
		TotalAmount:   o.TotalAmount,
		AmountPaid:    o.AmountPaid,
		Payment:       o.Payments,
		Status:        o.Status,
		LocalStatus:   o.LocalStatus,
		ExpireAt:      o.ExpireAt,
		Count:         o.Count,
		CreatedBy:     o.CreatedBy,
		UpdatedBy:     o.UpdatedBy,
		CompletedDate: o.CompletedDate,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func newOrderListResponse(list []*domain.Order) []orderResponse {
	result := make([]orderResponse, 0, len(list))
	for _, o := range list {
		result = append(result, newOrderResponse(o))
	}
	return result
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	req := createOrderRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	kind := domain.SourceKindCart
	if req.Type == string(domain.SourceKindList) {
		kind = domain.SourceKindList
	}

	order, err := oh.service.CreateOrder(ctx, userID, port.CreateOrderRequest{
		SourceKind: kind,
		Payment:    req.Payment,
	})
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, newOrderResponse(order), http.StatusCreated)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	order, err := oh.service.GetOrder(ctx, ctx.Param("id"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.handleSuccess(ctx, newOrderResponse(order))
}

func (oh *OrderHandler) ListOrdersByUser(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	filter := domain.UserListFilter{
		Type:     domain.OrderType(ctx.Query("type")),
		StatusID: ctx.Query("status"),
		Desc:     ctx.Query("order") != "asc",
	}

	list, err := oh.service.ListByUser(ctx, userID, filter)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.handleSuccess(ctx, newOrderListResponse(list))
}

func (oh *OrderHandler) ListOrdersByStatus(ctx *gin.Context) {
	list, err := oh.service.ListByStatus(ctx, ctx.Param("status"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.handleSuccess(ctx, newOrderListResponse(list))
}

func (oh *OrderHandler) CancelOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	order, err := oh.service.CancelOrder(ctx, ctx.Param("id"), userID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.handleSuccess(ctx, newOrderResponse(order))
}

func (oh *OrderHandler) RemoveOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	order, err := oh.service.SoftDeleteOrder(ctx, ctx.Param("id"), userID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.handleSuccess(ctx, newOrderResponse(order))
}

type statusRequest struct {
	Status domain.StatusValue `json:"status"`
}

func (oh *OrderHandler) UpdateStatus(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	req := statusRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, err := oh.service.UpdateStatus(ctx, ctx.Param("id"), userID, req.Status)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.handleSuccess(ctx, newOrderResponse(order))
}

func (oh *OrderHandler) UpdateLocalStatus(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	req := statusRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, err := oh.service.UpdateLocalStatus(ctx, ctx.Param("id"), userID, req.Status)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.handleSuccess(ctx, newOrderResponse(order))
}

type enumerationsResponse struct {
	Statuses      domain.StatusSet   `json:"statuses"`
	LocalStatuses domain.StatusSet   `json:"localStatuses"`
	Types         []domain.OrderType `json:"types"`
}

func (oh *OrderHandler) Enumerations(ctx *gin.Context) {
	oh.handleSuccess(ctx, enumerationsResponse{
		Statuses:      oh.service.StatusEnumeration(),
		LocalStatuses: oh.service.LocalStatusEnumeration(),
		Types:         oh.service.TypeEnumeration(),
	})
}
