package cookie

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AccessTokenCookieName is shared with the storefront, which stores the token
// returned by checkout in this cookie.
const AccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

// SetAccessToken writes the token as an HttpOnly cookie living as long as the token.
func SetAccessToken(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookieName, token, int(ttl.Seconds()), "/", "", c.Request.TLS != nil, true)
}
