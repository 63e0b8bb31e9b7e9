package http

import (
	"github.com/adiallo/orderflow/internal/core/domain"
	"github.com/adiallo/orderflow/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	Handler
	service port.Service
}

func NewPaymentHandler(service port.Service, logger *zap.Logger) (*PaymentHandler, error) {
	return &PaymentHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type paymentRequest struct {
	Payment domain.PaymentInput `json:"payment"`
}

// SubmitPayment records an installment against an order.
func (ph *PaymentHandler) SubmitPayment(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	req := paymentRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, err := ph.service.ApplyInstallmentPayment(ctx, ctx.Param("id"), userID, req.Payment)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}
	ph.handleSuccess(ctx, newOrderResponse(order))
}

// ConfirmQrPayment merges an out-of-band confirmation into the order. The
// confirming channel may retry, the engine keeps the merge idempotent.
func (ph *PaymentHandler) ConfirmQrPayment(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	req := paymentRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, err := ph.service.MergeQrPaymentConfirmation(ctx, ctx.Param("id"), userID, req.Payment)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}
	ph.handleSuccess(ctx, newOrderResponse(order))
}

func (ph *PaymentHandler) ListPayments(ctx *gin.Context) {
	history, err := ph.service.ListInstallmentPayments(ctx, ctx.Param("id"))
	if err != nil {
		ph.handleError(ctx, err)
		return
	}
	ph.handleSuccess(ctx, history)
}
