package qrcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/adiallo/orderflow/internal/adapter/config"
	"github.com/adiallo/orderflow/internal/core/domain"
	"go.uber.org/zap"
)

// Client obtains out-of-band payment codes from the QR code system. Callers
// treat every failure here as non-fatal: an order without a code is still a
// valid order.
type Client struct {
	logger *zap.Logger
	host   string
	http   *http.Client
}

func NewClient(cfg *config.QRCode, log *zap.Logger) (*Client, error) {
	return &Client{
		host:   cfg.HostString,
		logger: log,
		http:   &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type generateRequest struct {
	OrderID   string `json:"order"`
	PaymentID string `json:"payment"`
	UserID    string `json:"user"`
	Amount    string `json:"amount"`
}

type generateResponse struct {
	Code       string    `json:"code"`
	Amount     float64   `json:"amount"`
	DateExpire time.Time `json:"dateExpire"`
}

func (c *Client) Generate(ctx context.Context, payment *domain.PaymentRecord,
	order *domain.Order, userID string) (*domain.PaymentCode, error) {
	body, err := json.Marshal(generateRequest{
		OrderID:   order.ID,
		PaymentID: payment.ID,
		UserID:    userID,
		Amount:    payment.Amount.String(),
	})
	if err != nil {
		return nil, err
	}

	requestStr := "http://" + c.host + "/api/qrcodes"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestStr, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error on %s : %w", requestStr, err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Fire request for payment code",
		zap.String("order", order.ID))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request error %s : %w", requestStr, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Error("unexpected status for code request",
			zap.String("order", order.ID), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("bad response %v for request %s", resp.StatusCode, requestStr)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error on response decode: %w", err)
	}

	return &domain.PaymentCode{
		Code:       result.Code,
		Amount:     domain.NormalizeAmount(result.Amount),
		DateExpire: result.DateExpire,
	}, nil
}
