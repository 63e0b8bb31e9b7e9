package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrNoUpdatedData   = errors.New("no data to update")
	ErrConflictingData = errors.New("data conflicts with existing data")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")

	// * Business errors.
	ErrCartNotFound          = errors.New("no cart or list to order found")
	ErrShippingRequired      = errors.New("a shipping address is required")
	ErrPaymentRequired       = errors.New("payment is required")
	ErrPaymentAmountRequired = errors.New("payment amount is required")
	ErrPaymentMethodRequired = errors.New("payment method is required")
	ErrUnknownPaymentMethod  = errors.New("unknown payment method")
	ErrCannotCancel          = errors.New("cannot cancel this order anymore")
	ErrStatusRequired        = errors.New("a status must be specified")
	ErrInvalidStatus         = errors.New("invalid status")
)
