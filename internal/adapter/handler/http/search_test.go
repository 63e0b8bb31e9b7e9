package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSearchRequestFromQuery_LocalStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name  string
		query string
		exp   string
	}{
		{name: "lowercase spelling", query: "localstatus=preparing", exp: "preparing"},
		{name: "camel case spelling", query: "localStatus=ready", exp: "ready"},
		{name: "lowercase wins over camel", query: "localstatus=preparing&localStatus=ready", exp: "preparing"},
		{name: "absent", query: "", exp: ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			ctx.Request = httptest.NewRequest("GET", "/orders/search?"+test.query+"&customerData.phone=770000000", nil)

			req := searchRequestFromQuery(ctx)

			assert.Equal(t, test.exp, req.LocalStatus)
			// either spelling is consumed, never forwarded as an extra filter
			assert.NotContains(t, req.Extra, "localstatus")
			assert.NotContains(t, req.Extra, "localStatus")
			assert.Equal(t, "770000000", req.Extra["customerData.phone"])
		})
	}
}
