package cookie

import (
	"github.com/gin-gonic/gin"
)

// The session cookie is set by the external identity provider on a shared
// domain; this service only reads it.
const AccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
