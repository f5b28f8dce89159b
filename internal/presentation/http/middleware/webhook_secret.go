package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/presentation/http/dto/response"
)

// WebhookSecretHeader carries the shared secret of inbound provider callbacks
const WebhookSecretHeader = "X-Webhook-Secret"

// WebhookSecret rejects callbacks without the configured shared secret. An
// empty secret rejects everything.
func WebhookSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(WebhookSecretHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			response.Unauthorized(c, "Invalid webhook secret")
			c.Abort()
			return
		}
		c.Next()
	}
}
