package http

import (
	"net/http"
	"strings"

	"github.com/adiallo/orderflow/internal/core/domain"
	"github.com/adiallo/orderflow/internal/core/port"
	"github.com/gin-gonic/gin"
)

const authHeaderKey = "Authorization"
const authType = "Bearer"
const userPayloadKey = "user_payload"

func authCheck(tokenService port.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.Request.Header.Get(authHeaderKey)
		if len(header) == 0 {
			abortWith(ctx, domain.ErrEmptyAuthorizationHeader)
			return
		}

		words := strings.Split(header, " ")
		if len(words) != 2 {
			abortWith(ctx, domain.ErrInvalidAuthorizationHeader)
			return
		}
		if words[0] != authType {
			abortWith(ctx, domain.ErrInvalidAuthorizationType)
			return
		}
		token := words[1]
		payload, err := tokenService.VerifyToken(token)
		if err != nil {
			abortWith(ctx, domain.ErrInvalidToken)
			return
		}

		ctx.Set(userPayloadKey, payload)

		ctx.Next()
	}
}

func abortWith(ctx *gin.Context, err error) {
	statusCode, ok := errorStatusMap[err]
	if !ok {
		statusCode = http.StatusInternalServerError
	}
	ctx.AbortWithStatusJSON(statusCode, errorResponse{Error: err.Error()})
}

func getAuthPayload(ctx *gin.Context) *port.TokenPayload {
	return ctx.MustGet(userPayloadKey).(*port.TokenPayload)
}
