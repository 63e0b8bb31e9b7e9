package http

import (
	"net/http"

	"github.com/adiallo/orderflow/internal/core/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:        http.StatusInternalServerError,
	domain.ErrDataNotFound:    http.StatusNotFound,
	domain.ErrConflictingData: http.StatusConflict,

	domain.ErrUnauthorized:               http.StatusUnauthorized,
	domain.ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationType:   http.StatusUnauthorized,
	domain.ErrInvalidToken:               http.StatusUnauthorized,
	domain.ErrExpiredToken:               http.StatusUnauthorized,
	domain.ErrForbidden:                  http.StatusForbidden,

	domain.ErrNoUpdatedData: http.StatusBadRequest,
	domain.ErrBadRequest:    http.StatusBadRequest,

	domain.ErrCartNotFound:          http.StatusBadRequest,
	domain.ErrShippingRequired:      http.StatusBadRequest,
	domain.ErrPaymentRequired:       http.StatusBadRequest,
	domain.ErrPaymentAmountRequired: http.StatusBadRequest,
	domain.ErrPaymentMethodRequired: http.StatusBadRequest,
	domain.ErrUnknownPaymentMethod:  http.StatusBadRequest,
	domain.ErrCannotCancel:          http.StatusBadRequest,
	domain.ErrStatusRequired:        http.StatusBadRequest,
	domain.ErrInvalidStatus:         http.StatusBadRequest,
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleValidationError sends an error response for some specific request validation error
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func (h *Handler) handleError(ctx *gin.Context, err error) {
	statusCode, ok := errorStatusMap[err]
	if !ok {
		statusCode = http.StatusInternalServerError
		h.logger.Error("error processing request", zap.Error(err))
	}
	ctx.JSON(statusCode, errorResponse{Error: err.Error()})
}

// handleSuccess sends a success response with the specified status code and optional data
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(status, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}
