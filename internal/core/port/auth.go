package port

import "github.com/adiallo/orderflow/internal/core/domain"

type TokenPayload struct {
	UserID string
}

//go:generate mockgen -source=auth.go -destination=mock/auth.go -package=mock
type TokenService interface {
	CreateToken(profile *domain.Profile) (string, error)
	VerifyToken(token string) (*TokenPayload, error)
}
